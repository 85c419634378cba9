package gen

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	assert "github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.go")

	wrote, err := WriteFile(path, []byte("a"), WriteOptions{})
	assert.NoError(t, err)
	assert.True(t, wrote)

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "a", string(data))

	wrote, err = WriteFile(path, []byte("a"), WriteOptions{})
	assert.NoError(t, err)
	assert.False(t, wrote)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWriteFileCheck(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.go")

	_, err := WriteFile(path, []byte("a"), WriteOptions{Check: true})
	assert.True(t, errors.Is(err, ErrCheckFailed))
	assert.ErrorContains(t, err, "would be created")

	_, err = os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	assert.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	wrote, err := WriteFile(path, []byte("a"), WriteOptions{Check: true})
	assert.NoError(t, err)
	assert.False(t, wrote)

	_, err = WriteFile(path, []byte("b"), WriteOptions{Check: true})
	assert.ErrorContains(t, err, "differs")

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "a", string(data))
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()

	files := []File{
		{Path: filepath.Join(dir, "a.go"), Data: []byte("a")},
		{Path: filepath.Join(dir, "b", "b.sql"), Data: []byte("b")},
	}

	wrote, err := WriteAll(files, WriteOptions{})
	assert.NoError(t, err)
	assert.Equal(t, 2, wrote)

	files[1].Data = []byte("c")

	wrote, err = WriteAll(files, WriteOptions{})
	assert.NoError(t, err)
	assert.Equal(t, 1, wrote)
}
