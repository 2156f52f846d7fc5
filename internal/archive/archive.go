// Package archive packs a build directory into a .tgz.
package archive

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
)

// TarGz writes baseDir/name, recursively, to archivePath as a gzip
// compressed tarball. Entries are stored relative to baseDir so the archive
// unpacks into a single "name" directory. The .git directory of a clone is skipped.
func TarGz(ctx context.Context, archivePath, baseDir, name string) (err error) {
	out, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("failed to create archive %s: %w", archivePath, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close archive %s: %w", archivePath, cerr)
		}
		if err != nil {
			_ = os.Remove(archivePath)
		}
	}()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	root := filepath.Join(baseDir, name)
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() && d.Name() == ".git" {
			return filepath.SkipDir
		}
		return addEntry(tw, baseDir, path, d)
	})
	if walkErr != nil {
		return fmt.Errorf("failed to archive %s: %w", root, walkErr)
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to finish tar stream: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to finish gzip stream: %w", err)
	}
	return nil
}

func addEntry(tw *tar.Writer, baseDir, path string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}

	link := ""
	if info.Mode()&os.ModeSymlink != 0 {
		if link, err = os.Readlink(path); err != nil {
			return err
		}
	}

	header, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(baseDir, path)
	if err != nil {
		return err
	}
	header.Name = filepath.ToSlash(rel)
	if d.IsDir() {
		header.Name += "/"
	}

	if err := tw.WriteHeader(header); err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(tw, f)
	return err
}
