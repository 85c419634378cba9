package gen

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrCheckFailed = errors.New("generated files are not up to date")

type WriteOptions struct {
	// Check reports files that would change instead of writing them.
	Check bool
}

// WriteFile writes `data` to `path` through a temporary file so that a
// failed write never leaves a truncated file behind. Unchanged files are not
// touched. The returned bool tells whether the file was written.
func WriteFile(path string, data []byte, opt WriteOptions) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, data) {
		return false, nil
	}

	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf(`failed to read existing file "%s": %w`, path, err)
	}

	if opt.Check {
		if err != nil {
			return false, fmt.Errorf(`%w: "%s" would be created`, ErrCheckFailed, path)
		}

		return false, fmt.Errorf(`%w: "%s" differs`, ErrCheckFailed, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf(`failed to create directory for "%s": %w`, path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return false, fmt.Errorf(`failed to write "%s": %w`, tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return false, fmt.Errorf(`failed to rename "%s": %w`, tmp, err)
	}

	return true, nil
}

// WriteAll writes every file and stops at the first error.
func WriteAll(files []File, opt WriteOptions) (int, error) {
	wrote := 0

	for _, f := range files {
		ok, err := WriteFile(f.Path, f.Data, opt)
		if err != nil {
			return wrote, err
		}

		if ok {
			wrote += 1
		}
	}

	return wrote, nil
}
