package upload

import (
	"context"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"
)

// ObjectWriterAPI opens a writer for a GCS object. The object is committed
// when the writer is closed; canceling ctx discards it.
type ObjectWriterAPI interface {
	NewWriter(ctx context.Context, bucket, object, contentType string) io.WriteCloser
}

type storageObjects struct {
	client *storage.Client
}

func (s storageObjects) NewWriter(ctx context.Context, bucket, object, contentType string) io.WriteCloser {
	w := s.client.Bucket(bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	return w
}

// GCSUploader uploads archives to a Google Cloud Storage bucket
type GCSUploader struct {
	client  *storage.Client
	objects ObjectWriterAPI
	bucket  string
	prefix  string
}

// NewGCSUploader creates an uploader using application default credentials
func NewGCSUploader(ctx context.Context, bucket, prefix string) (*GCSUploader, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS storage client: %w", err)
	}
	return &GCSUploader{client: client, objects: storageObjects{client: client}, bucket: bucket, prefix: prefix}, nil
}

// NewGCSUploaderWithClient creates an uploader writing through objects
func NewGCSUploaderWithClient(objects ObjectWriterAPI, bucket, prefix string) *GCSUploader {
	return &GCSUploader{objects: objects, bucket: bucket, prefix: prefix}
}

// Upload writes the file to gs://bucket/prefix/name. A failed copy cancels
// the write so no partial object is left under the final name.
func (u *GCSUploader) Upload(ctx context.Context, localPath, name string) (string, error) {
	localFile, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open the local file: %s: %w", localPath, err)
	}
	defer localFile.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	objectPath := objectKey(u.prefix, name)
	writer := u.objects.NewWriter(ctx, u.bucket, objectPath, "application/gzip")

	if _, err := io.Copy(writer, localFile); err != nil {
		cancel()
		return "", fmt.Errorf("failed to copy local file %s to GCS object %s: %w", localPath, objectPath, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer for %s: %w", objectPath, err)
	}
	return fmt.Sprintf("gs://%s/%s", u.bucket, objectPath), nil
}

// Close releases the storage client
func (u *GCSUploader) Close() error {
	if u.client == nil {
		return nil
	}
	return u.client.Close()
}
