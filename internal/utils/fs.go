package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates dirPath and its parents if missing.
func EnsureDir(dirPath string) error {
	return os.MkdirAll(dirPath, 0755)
}

// ExecutableDir returns the directory of the running binary with symlinks resolved.
func ExecutableDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}
	return filepath.Dir(execPath), nil
}

// Writable creates dir if needed and reports whether a file can be created in it.
func Writable(dir string) bool {
	if err := EnsureDir(dir); err != nil {
		log.Warnf("Cannot create directory %s: %v", dir, err)
		return false
	}
	scratch, err := os.CreateTemp(dir, ".wordsim-*")
	if err != nil {
		log.Warnf("Cannot write to directory %s: %v", dir, err)
		return false
	}
	name := scratch.Name()
	scratch.Close()
	os.Remove(name)
	return true
}
