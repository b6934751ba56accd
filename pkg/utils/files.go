package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var ErrSourceNotFound = errors.New("source file not found")

func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}

	// Get the directory containing the file
	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// ReadSource loads an LSI source file. A missing file is reported as
// ErrSourceNotFound; directories are rejected.
func ReadSource(relPath string) (src string, fullPath string, err error) {
	fullPath, _, err = GetPathInfo(relPath)
	if err != nil {
		return "", "", fmt.Errorf("resolving %s: %w", relPath, err)
	}

	info, err := os.Stat(fullPath)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fullPath, fmt.Errorf("%w: %s", ErrSourceNotFound, relPath)
	}
	if err != nil {
		return "", fullPath, err
	}
	if info.IsDir() {
		return "", fullPath, fmt.Errorf("%s is a directory", relPath)
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return "", fullPath, fmt.Errorf("reading %s: %w", relPath, err)
	}
	return string(data), fullPath, nil
}
