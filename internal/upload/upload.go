// Package upload sends build archives to the package store. The store is
// chosen by the scheme of the configured upload URL:
//
//	s3://bucket/prefix   Amazon S3 (default AWS credential chain)
//	gs://bucket/prefix   Google Cloud Storage (application default credentials)
//	file:///dir          a local or mounted directory
package upload

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Uploader stores a local file under a slash separated name relative to the
// store's base location and returns where it ended up.
type Uploader interface {
	Upload(ctx context.Context, localPath, name string) (string, error)
}

// New returns the uploader for baseURL
func New(ctx context.Context, baseURL string) (Uploader, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upload url %q: %w", baseURL, err)
	}

	prefix := strings.Trim(u.Path, "/")
	switch u.Scheme {
	case "s3":
		return NewS3Uploader(ctx, u.Host, prefix)
	case "gs":
		return NewGCSUploader(ctx, u.Host, prefix)
	case "file":
		return NewFileUploader(u.Path), nil
	default:
		return nil, fmt.Errorf("unsupported upload url %q: scheme must be s3, gs or file", baseURL)
	}
}

// objectKey joins a key prefix and a name
func objectKey(prefix, name string) string {
	if prefix == "" {
		return strings.TrimPrefix(name, "/")
	}
	return path.Join(prefix, name)
}
