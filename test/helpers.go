package test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	assert "github.com/stretchr/testify/require"
)

func getWd(t *testing.T, folder string) string {
	wd, err := os.Getwd()
	assert.NoError(t, err, "failed to get working directory")
	return filepath.Join(wd, folder)
}

// copyFixture copies a fixture folder into a temporary directory so that the
// generated files don't end up in the source tree.
func copyFixture(t *testing.T, folder string) string {
	dir := t.TempDir()
	assert.NoError(t, os.CopyFS(dir, os.DirFS(getWd(t, folder))), "failed to copy fixture")
	return dir
}

func readFile(t *testing.T, path ...string) string {
	data, err := os.ReadFile(filepath.Join(path...))
	assert.NoError(t, err)
	return string(data)
}

func discard() *bytes.Buffer {
	return &bytes.Buffer{}
}
