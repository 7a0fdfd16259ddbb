package corpus

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Loader resolves word files under a data directory and keeps the most recently loaded Dataset.
// Swapping the Dataset never mutates the previous one, so queries running against it stay valid.
type Loader struct {
	dirPath string
	current *Dataset
	stats   LoaderStats
	mu      sync.RWMutex
}

// LoaderStats describes the currently loaded Dataset
type LoaderStats struct {
	File     string
	Format   FileFormat
	Words    int
	Years    int
	LoadedAt time.Time
	Duration time.Duration
}

// NewLoader creates a loader rooted at dirPath. Relative file names are resolved against it.
func NewLoader(dirPath string) *Loader {
	return &Loader{
		dirPath: dirPath,
		current: New(nil),
	}
}

// Resolve returns the path a file name refers to. Bare names live in the data directory,
// anything with a directory component is used as is.
func (l *Loader) Resolve(name string) string {
	if filepath.IsAbs(name) || filepath.Base(name) != name || l.dirPath == "" {
		return name
	}
	return filepath.Join(l.dirPath, name)
}

// Load reads name, makes it the current Dataset and returns it.
func (l *Loader) Load(name string) (*Dataset, error) {
	path := l.Resolve(name)
	start := time.Now()

	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}
	ds, err := LoadFile(path, format)
	if err != nil {
		return nil, err
	}

	stats := LoaderStats{
		File:     path,
		Format:   format,
		Words:    ds.Len(),
		Years:    len(ds.Years()),
		LoadedAt: time.Now(),
		Duration: time.Since(start),
	}

	l.mu.Lock()
	l.current = ds
	l.stats = stats
	l.mu.Unlock()

	log.Debugf("Loaded %s (%s): %d words over %d years in %v", path, format, stats.Words, stats.Years, stats.Duration)
	return ds, nil
}

// Current returns the most recently loaded Dataset, empty before the first Load.
func (l *Loader) Current() *Dataset {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Stats returns statistics about the current Dataset
func (l *Loader) Stats() LoaderStats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.stats
}

// LoadFile reads a Dataset from path in the given format
func LoadFile(path string, format FileFormat) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word file %s: %w", path, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	var ds *Dataset
	switch format {
	case FormatText:
		ds, err = ReadText(reader)
	case FormatSnapshot:
		ds, err = ReadSnapshot(reader)
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return ds, nil
}

// SaveSnapshot writes ds as a msgpack snapshot to path
func SaveSnapshot(path string, ds *Dataset) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot %s: %w", path, err)
	}
	writer := bufio.NewWriter(file)
	if err := WriteSnapshot(writer, ds); err != nil {
		file.Close()
		return err
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to write snapshot %s: %w", path, err)
	}
	return file.Close()
}
