package utils

import (
	"os"
	"path/filepath"
	"strings"
)

var imageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".bmp": {}, ".webp": {},
}

// FileExtension returns the lower-cased extension of name without the dot,
// or "" when there is none.
func FileExtension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return strings.ToLower(ext[1:])
}

// IsImageFile reports whether name has a recognized image extension.
func IsImageFile(name string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// SaveFile writes data to dir/filename, creating dir if needed, and returns
// the full path. The CLI analogue of the browser's blob download.
func SaveFile(dir, filename string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", err
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o660); err != nil {
		return "", err
	}
	return path, nil
}
