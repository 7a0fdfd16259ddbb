package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// wordFilePatterns are the file names a data directory is expected to hold
var wordFilePatterns = []string{"*.txt", "*.csv", "*.bin", "*.msgpack"}

// PathResolver resolves data locations relative to the executable and config dir
type PathResolver struct {
	executableDir string
	configDir     string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execDir, err := ExecutableDir()
	if err != nil {
		return nil, err
	}
	configDir, err := ConfigDir()
	if err != nil {
		log.Warnf("Could not determine config directory: %v", err)
		configDir = execDir
	}

	pr := &PathResolver{
		executableDir: execDir,
		configDir:     configDir,
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

// ConfigDir returns the wordsim config directory. The platform location is used when it
// is writable, otherwise the executable directory. Config files and the fallback data
// directory both live under it.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		return ExecutableDir()
	}
	dir := platformConfigDir(homeDir)
	if Writable(dir) {
		return dir, nil
	}
	log.Warnf("Config directory %s is not writable, using executable directory", dir)
	return ExecutableDir()
}

func platformConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", "wordsim")
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "wordsim")
		}
		return filepath.Join(homeDir, ".config", "wordsim")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "wordsim")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "wordsim")
	default:
		return filepath.Join(homeDir, ".wordsim")
	}
}

// GetDataDir resolves the directory holding word files.
// It tries multiple locations in order of preference:
// 1. User-specified path (if absolute)
// 2. Relative to current working directory
// 3. Relative to executable directory
// 4. data/ under the config directory
func (pr *PathResolver) GetDataDir(userSpecifiedPath string) (string, error) {
	candidates := pr.dataDirCandidates(userSpecifiedPath)
	for _, path := range candidates {
		if isValidDataDir(path) {
			log.Debugf("Found valid data directory: %s", path)
			return path, nil
		}
		log.Debugf("Data directory candidate not valid: %s", path)
	}
	// nothing matched, report the most likely path
	if len(candidates) > 0 {
		return candidates[0], nil
	}
	return userSpecifiedPath, nil
}

func (pr *PathResolver) dataDirCandidates(userSpecifiedPath string) []string {
	if filepath.IsAbs(userSpecifiedPath) {
		return []string{userSpecifiedPath}
	}
	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userSpecifiedPath))
	}
	candidates = append(candidates,
		filepath.Join(pr.executableDir, userSpecifiedPath),
		filepath.Join(pr.configDir, "data"),
	)
	return candidates
}

// isValidDataDir checks if a directory contains at least one word file
func isValidDataDir(path string) bool {
	if stat, err := os.Stat(path); err != nil || !stat.IsDir() {
		return false
	}
	for _, pattern := range wordFilePatterns {
		matches, err := filepath.Glob(filepath.Join(path, pattern))
		if err == nil && len(matches) > 0 {
			return true
		}
	}
	return false
}
