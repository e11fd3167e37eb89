package util

import (
	"bytes"
	"errors"
	"github.com/mitchellh/go-homedir"
	"github.com/natefinch/atomic"
	"os"
	"path/filepath"
)

// ExpandPath resolves a leading ~ to the home directory of the current user
func ExpandPath(path string) (string, error) {
	return homedir.Expand(path)
}

// EnsureParentDir creates the parent directory of the given file path, if it doesn't exist yet
func EnsureParentDir(path string) (created bool, err error) {
	parentDir := filepath.Dir(path)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		return true, os.MkdirAll(parentDir, 0755)
	}
	return false, err
}

// WriteFileAtomic writes data to path, so that readers either see the old
// or the complete new file content.
func WriteFileAtomic(path string, data []byte) error {
	if _, err := EnsureParentDir(path); err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}
