package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// FileFormat represents the word data file formats
type FileFormat int

const (
	FormatUnknown  FileFormat = iota
	FormatText                // year,count text format
	FormatSnapshot            // msgpack snapshot
)

// FormatInfo contains metadata about a word data file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Word Counts",
		Extensions:  []string{".txt", ".csv"},
		MinSize:     0,
	},
	FormatSnapshot: {
		Format:      FormatSnapshot,
		Description: "Msgpack Word Snapshot",
		Extensions:  []string{".bin", ".msgpack"},
		MinSize:     1,
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "Unknown"
}

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("%s is a directory", filename)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("unknown format: %v", expectedFormat)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	if !hasExtension(filename, formatInfo.Extensions) {
		return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
			filename, filepath.Ext(filename), formatInfo.Description, formatInfo.Extensions)
	}

	if expectedFormat == FormatSnapshot {
		return validateSnapshotHeader(filename)
	}
	return nil
}

// validateSnapshotHeader checks that the file starts with a msgpack map
func validateSnapshotHeader(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	code, err := msgpack.NewDecoder(file).PeekCode()
	if err != nil {
		return fmt.Errorf("failed to read header from %s: %w", filename, err)
	}
	if !msgpcode.IsFixedMap(code) && code != msgpcode.Map16 && code != msgpcode.Map32 {
		return fmt.Errorf("file %s does not start with a msgpack map (0x%02x)", filename, code)
	}

	log.Debugf("Snapshot file %s validated", filename)
	return nil
}

// DetectFileFormat detects the format of a file from its extension and validates it
func DetectFileFormat(filename string) (FileFormat, error) {
	for _, format := range []FileFormat{FormatText, FormatSnapshot} {
		if !hasExtension(filename, supportedFormats[format].Extensions) {
			continue
		}
		if err := ValidateFileFormat(filename, format); err != nil {
			return FormatUnknown, err
		}
		return format, nil
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
}

func hasExtension(filename string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, valid := range extensions {
		if ext == valid {
			return true
		}
	}
	return false
}
