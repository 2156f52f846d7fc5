package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileUploader copies archives into a directory, typically a mounted share
type FileUploader struct {
	dir string
}

// NewFileUploader creates an uploader rooted at dir
func NewFileUploader(dir string) *FileUploader {
	return &FileUploader{dir: dir}
}

// Upload copies the file to dir/name, creating parent directories
func (u *FileUploader) Upload(ctx context.Context, localPath, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dest := filepath.Join(u.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dest), 0750); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", filepath.Dir(dest), err)
	}

	src, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer src.Close()

	dst, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dest, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return "", fmt.Errorf("failed to copy %s to %s: %w", localPath, dest, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", dest, err)
	}
	return "file://" + filepath.ToSlash(dest), nil
}
