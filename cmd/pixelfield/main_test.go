package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSourceDemo(t *testing.T) {
	pal, g, err := loadSource("", "", "")
	require.NoError(t, err)
	assert.Equal(t, len(defaultPalette), pal.Len())
	assert.Equal(t, 256, g.Rows())
	assert.Equal(t, 256, g.Cols())
}

func TestLoadSourceGridFile(t *testing.T) {
	dir := t.TempDir()
	gridPath := filepath.Join(dir, "tiny.grid")
	require.NoError(t, os.WriteFile(gridPath, []byte("012\n210\n"), 0o644))
	palPath := filepath.Join(dir, "palette.yaml")
	require.NoError(t, os.WriteFile(palPath, []byte("colors: [\"#000000\", \"#ff0000\", \"#00ff00\"]\n"), 0o644))

	pal, g, err := loadSource(gridPath, "", palPath)
	require.NoError(t, err)
	assert.Equal(t, 3, pal.Len())
	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 3, g.Cols())
}

func TestLoadSourceExclusiveInputs(t *testing.T) {
	_, _, err := loadSource("a.grid", "b.png", "")
	assert.Error(t, err)
}
