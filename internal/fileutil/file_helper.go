package fileutil

import (
	"os"
	"path/filepath"
)

// FileExists reports whether a regular file is present at path. The
// ticket materializer uses it to decide whether to render.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// EnsureDir creates the parent directory of path if needed.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), os.ModePerm)
}

func DeleteFile(filePath string) error {
	return os.Remove(filePath)
}
