package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExtension(t *testing.T) {
	assert.Equal(t, "jpg", FileExtension("photo.JPG"))
	assert.Equal(t, "xlsx", FileExtension("report.xlsx"))
	assert.Equal(t, "", FileExtension("README"))
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("photo.jpg"))
	assert.True(t, IsImageFile("photo.PNG"))
	assert.True(t, IsImageFile("anim.webp"))
	assert.False(t, IsImageFile("report.pdf"))
	assert.False(t, IsImageFile("noext"))
}

func TestSaveFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := SaveFile(dir, "out.csv", []byte("a,b\n1,2\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))
}
