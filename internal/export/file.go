package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"islandgen/internal/meshing"
)

// TempPath returns the sibling file a write to path is staged in.
func TempPath(path string) string {
	return path + ".tmp"
}

// WriteFile exports the mesh to path as OBJ text.
func WriteFile(path string, m *meshing.Mesh) error {
	return Atomic(path, func(w io.Writer) error {
		return WriteOBJ(w, m)
	})
}

// Atomic stages the output of write in TempPath(path), syncs it and renames
// it over path. On failure the temp file is removed and path is left as it
// was. Every error wraps ErrWrite.
func Atomic(path string, write func(w io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create directory: %w", ErrWrite, err)
		}
	}

	tmpPath := TempPath(path)
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrWrite, err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("%w: sync: %w", ErrWrite, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close: %w", ErrWrite, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: replace %s: %w", ErrWrite, path, err)
	}
	return nil
}
