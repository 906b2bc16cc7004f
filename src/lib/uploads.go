package lib

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskBlobStore keeps uploaded files in a local directory and hands back the stored filename
type DiskBlobStore struct {
	dir string
}

func NewDiskBlobStore(dir string) (*DiskBlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &DiskBlobStore{dir: dir}, nil
}

func (s *DiskBlobStore) Dir() string {
	return s.dir
}

// Save copies the uploaded file to disk under a unique name
func (s *DiskBlobStore) Save(_ context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + "-" + sanitizeFilename(file.Filename)
	if err := writeBlob(filepath.Join(s.dir, name), src); err != nil {
		return "", err
	}
	return name, nil
}

// writeBlob creates path from src. A failed write leaves no file behind.
func writeBlob(path string, src io.Reader) error {
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create blob: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return fmt.Errorf("write blob: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close blob: %w", err)
	}
	return nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		if r == ' ' || r == '/' || r == 0 {
			return '_'
		}
		return r
	}, name)
	if name == "." || name == "" {
		return "upload"
	}
	return name
}
