package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Files keeps uploaded images and videos in a directory.
type Files struct {
	dir string
}

// NewFiles makes the upload directory if needed.
func NewFiles(dir string) (*Files, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &Files{dir: dir}, nil
}

// Dir returns the upload directory.
func (f *Files) Dir() string { return f.dir }

// Save writes src under a unique name derived from the sanitized name and returns the stored name.
func (f *Files) Save(name string, src io.Reader) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	stored := uuid.NewString() + "_" + name
	dst, err := os.OpenFile(filepath.Join(f.dir, stored), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640) //nolint:gosec // name is checked
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", stored, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write %s: %w", stored, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", stored, err)
	}
	return stored, nil
}

// Remove deletes a stored file. A missing file is not an error.
func (f *Files) Remove(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(f.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	return nil
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return fmt.Errorf("invalid file name %q", name)
	}
	return nil
}
