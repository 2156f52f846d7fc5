package upload_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"

	"bbt.dev/bbt/internal/upload"
)

func writeArchive(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prj-1.0.0-01.tgz")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestFileUploader(t *testing.T) {
	ctx := context.Background()
	archive := writeArchive(t, "archive bytes")
	dir := t.TempDir()

	u, err := upload.New(ctx, "file://"+filepath.ToSlash(dir))
	require.NoError(t, err)

	location, err := u.Upload(ctx, archive, "PRJ/prj-1.0.0-01.tgz")
	require.NoError(t, err)
	require.Equal(t, "file://"+filepath.ToSlash(filepath.Join(dir, "PRJ", "prj-1.0.0-01.tgz")), location)

	data, err := os.ReadFile(filepath.Join(dir, "PRJ", "prj-1.0.0-01.tgz"))
	require.NoError(t, err)
	require.Equal(t, "archive bytes", string(data))

	_, err = u.Upload(ctx, filepath.Join(t.TempDir(), "missing.tgz"), "PRJ/missing.tgz")
	require.Error(t, err)
}

func TestNewRejectsUnknownScheme(t *testing.T) {
	_, err := upload.New(context.Background(), "ftp://host/dir")
	require.Error(t, err)
	require.Contains(t, err.Error(), "scheme must be s3, gs or file")
}

type fakeS3 struct {
	inputs []*s3.PutObjectInput
	bodies []string
	err    error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, params)
	f.bodies = append(f.bodies, string(body))
	return &s3.PutObjectOutput{}, nil
}

func TestS3Uploader(t *testing.T) {
	ctx := context.Background()
	archive := writeArchive(t, "tgz")

	t.Run("puts object under prefix", func(t *testing.T) {
		client := &fakeS3{}
		u := upload.NewS3UploaderWithClient(client, "artifacts", "releases")

		location, err := u.Upload(ctx, archive, "PRJ/prj-1.0.0-01.tgz")
		require.NoError(t, err)
		require.Equal(t, "s3://artifacts/releases/PRJ/prj-1.0.0-01.tgz", location)

		require.Len(t, client.inputs, 1)
		require.Equal(t, "artifacts", aws.ToString(client.inputs[0].Bucket))
		require.Equal(t, "releases/PRJ/prj-1.0.0-01.tgz", aws.ToString(client.inputs[0].Key))
		require.Equal(t, int64(3), aws.ToInt64(client.inputs[0].ContentLength))
		require.Equal(t, "tgz", client.bodies[0])
	})

	t.Run("bucket root", func(t *testing.T) {
		client := &fakeS3{}
		u := upload.NewS3UploaderWithClient(client, "artifacts", "")

		location, err := u.Upload(ctx, archive, "PRJ/prj-1.0.0-01.tgz")
		require.NoError(t, err)
		require.Equal(t, "s3://artifacts/PRJ/prj-1.0.0-01.tgz", location)
	})

	t.Run("surfaces client errors", func(t *testing.T) {
		client := &fakeS3{err: errors.New("access denied")}
		u := upload.NewS3UploaderWithClient(client, "artifacts", "releases")

		_, err := u.Upload(ctx, archive, "PRJ/prj-1.0.0-01.tgz")
		require.Error(t, err)
		require.Contains(t, err.Error(), "access denied")
	})
}

type fakeGCSWriter struct {
	ctx         context.Context
	store       *fakeGCS
	object      string
	contentType string
	buf         bytes.Buffer
	closed      bool
}

func (w *fakeGCSWriter) Write(p []byte) (int, error) {
	if w.store.writeErr != nil {
		return 0, w.store.writeErr
	}
	return w.buf.Write(p)
}

func (w *fakeGCSWriter) Close() error {
	w.closed = true
	if err := w.ctx.Err(); err != nil {
		return err
	}
	w.store.objects[w.object] = w.buf.String()
	return nil
}

// fakeGCS commits an object only when its writer is closed before the
// writer's context is canceled
type fakeGCS struct {
	objects  map[string]string
	writers  []*fakeGCSWriter
	writeErr error
}

func (f *fakeGCS) NewWriter(ctx context.Context, bucket, object, contentType string) io.WriteCloser {
	w := &fakeGCSWriter{ctx: ctx, store: f, object: bucket + "/" + object, contentType: contentType}
	f.writers = append(f.writers, w)
	return w
}

func TestGCSUploader(t *testing.T) {
	ctx := context.Background()
	archive := writeArchive(t, "tgz")

	t.Run("writes object under prefix", func(t *testing.T) {
		store := &fakeGCS{objects: map[string]string{}}
		u := upload.NewGCSUploaderWithClient(store, "artifacts", "releases")

		location, err := u.Upload(ctx, archive, "PRJ/prj-1.0.0-01.tgz")
		require.NoError(t, err)
		require.Equal(t, "gs://artifacts/releases/PRJ/prj-1.0.0-01.tgz", location)
		require.Equal(t, map[string]string{"artifacts/releases/PRJ/prj-1.0.0-01.tgz": "tgz"}, store.objects)
		require.Equal(t, "application/gzip", store.writers[0].contentType)
		require.NoError(t, u.Close())
	})

	t.Run("failed copy discards the object", func(t *testing.T) {
		store := &fakeGCS{objects: map[string]string{}, writeErr: errors.New("connection reset")}
		u := upload.NewGCSUploaderWithClient(store, "artifacts", "releases")

		_, err := u.Upload(ctx, archive, "PRJ/prj-1.0.0-01.tgz")
		require.Error(t, err)
		require.Contains(t, err.Error(), "connection reset")
		require.Empty(t, store.objects)
		require.Len(t, store.writers, 1)
		require.False(t, store.writers[0].closed)
		require.ErrorIs(t, store.writers[0].ctx.Err(), context.Canceled)
	})

	t.Run("missing local file", func(t *testing.T) {
		store := &fakeGCS{objects: map[string]string{}}
		u := upload.NewGCSUploaderWithClient(store, "artifacts", "")

		_, err := u.Upload(ctx, filepath.Join(t.TempDir(), "missing.tgz"), "PRJ/missing.tgz")
		require.Error(t, err)
		require.Empty(t, store.writers)
	})
}
