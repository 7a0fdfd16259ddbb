package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Table is a loosely decoded TOML table, used when a file does not match its struct.
type Table map[string]any

// Table returns the nested table stored under name.
func (t Table) Table(name string) (Table, bool) {
	sub, ok := t[name].(map[string]any)
	return Table(sub), ok
}

// Int returns an integer value. TOML integers decode as int64.
func (t Table) Int(key string) (int, bool) {
	val, ok := t[key].(int64)
	return int(val), ok
}

func (t Table) Bool(key string) (bool, bool) {
	val, ok := t[key].(bool)
	return val, ok
}

func (t Table) String(key string) (string, bool) {
	val, ok := t[key].(string)
	return val, ok
}

// DecodeTOMLFile decodes path into v and returns the keys that v has no field for.
func DecodeTOMLFile(path string, v any) ([]string, error) {
	meta, err := toml.DecodeFile(path, v)
	if err != nil {
		return nil, err
	}
	var unknown []string
	for _, key := range meta.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return unknown, nil
}

// ReadTOMLTable decodes path without a target struct.
func ReadTOMLTable(path string) (Table, error) {
	table := make(Table)
	if _, err := toml.DecodeFile(path, &table); err != nil {
		return nil, err
	}
	return table, nil
}

// WriteTOMLFile encodes v to a temp file next to path and renames it into place,
// so readers never see a half written file.
func WriteTOMLFile(path string, v any) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if err := toml.NewEncoder(tmp).Encode(v); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
