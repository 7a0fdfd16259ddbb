package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestTable(t *testing.T) {
	table := Table{
		"count": int64(12),
		"flag":  true,
		"name":  "words.txt",
		"wrong": 1.5,
		"engine": map[string]any{
			"top_k": int64(3),
		},
	}

	if v, ok := table.Int("count"); !ok || v != 12 {
		t.Errorf("Int(count) = %d, %v", v, ok)
	}
	if _, ok := table.Int("wrong"); ok {
		t.Error("float should not read as int")
	}
	if v, ok := table.Bool("flag"); !ok || !v {
		t.Errorf("Bool(flag) = %v, %v", v, ok)
	}
	if v, ok := table.String("name"); !ok || v != "words.txt" {
		t.Errorf("String(name) = %q, %v", v, ok)
	}
	if _, ok := table.String("missing"); ok {
		t.Error("missing key should not be found")
	}
	engine, ok := table.Table("engine")
	if !ok {
		t.Fatal("engine table missing")
	}
	if v, _ := engine.Int("top_k"); v != 3 {
		t.Errorf("expected top_k 3, got %d", v)
	}
	if _, ok := table.Table("name"); ok {
		t.Error("a string is not a table")
	}
}

func TestReadTOMLTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.toml")
	if err := os.WriteFile(path, []byte("[engine]\ntop_k = \"many\"\ncache_size = 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	table, err := ReadTOMLTable(path)
	if err != nil {
		t.Fatalf("ReadTOMLTable failed: %v", err)
	}
	engine, _ := table.Table("engine")
	if v, ok := engine.Int("cache_size"); !ok || v != 2 {
		t.Errorf("expected cache_size 2, got %d, %v", v, ok)
	}
	if _, ok := engine.Int("top_k"); ok {
		t.Error("string top_k should not read as int")
	}
}

func TestWriteTOMLFile(t *testing.T) {
	type sample struct {
		Name  string `toml:"name"`
		Count int    `toml:"count"`
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "s.toml")
	if err := os.WriteFile(path, []byte("old = true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := WriteTOMLFile(path, sample{Name: "x", Count: 2}); err != nil {
		t.Fatalf("WriteTOMLFile failed: %v", err)
	}

	var back sample
	unknown, err := DecodeTOMLFile(path, &back)
	if err != nil {
		t.Fatalf("DecodeTOMLFile failed: %v", err)
	}
	if back != (sample{Name: "x", Count: 2}) || len(unknown) != 0 {
		t.Errorf("read back %+v, unknown keys %v", back, unknown)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestDecodeTOMLFileUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.toml")
	if err := os.WriteFile(path, []byte("name = \"x\"\nextra = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	var v struct {
		Name string `toml:"name"`
	}
	unknown, err := DecodeTOMLFile(path, &v)
	if err != nil {
		t.Fatalf("DecodeTOMLFile failed: %v", err)
	}
	if !reflect.DeepEqual(unknown, []string{"extra"}) {
		t.Errorf("expected [extra], got %v", unknown)
	}
}

func TestConfigDirSharedWithDataFallback(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only read on linux")
	}
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir failed: %v", err)
	}
	if want := filepath.Join(base, "wordsim"); dir != want {
		t.Fatalf("ConfigDir = %s, expected %s", dir, want)
	}

	dataDir := filepath.Join(dir, "data")
	if err := EnsureDir(dataDir); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "words.txt"), []byte("cat\n"), 0644); err != nil {
		t.Fatal(err)
	}
	pr, err := NewPathResolver()
	if err != nil {
		t.Fatalf("NewPathResolver failed: %v", err)
	}
	got, err := pr.GetDataDir("no-such-data-dir")
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if got != dataDir {
		t.Errorf("GetDataDir = %s, expected %s", got, dataDir)
	}
}

func TestWritable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if !Writable(dir) {
		t.Fatalf("%s should be writable", dir)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("scratch file left behind: %v", entries)
	}
}

func TestIsValidDataDir(t *testing.T) {
	dir := t.TempDir()
	if isValidDataDir(dir) {
		t.Error("empty dir should not be a data dir")
	}
	if err := os.WriteFile(filepath.Join(dir, "words.txt"), []byte("cat\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if !isValidDataDir(dir) {
		t.Error("dir with a word file should be a data dir")
	}
	if isValidDataDir(filepath.Join(dir, "words.txt")) {
		t.Error("a file is not a data dir")
	}
}

func TestCreateRankList(t *testing.T) {
	if got := CreateRankList(3); !reflect.DeepEqual(got, []uint16{1, 2, 3}) {
		t.Errorf("CreateRankList(3) = %v", got)
	}
	if got := CreateRankList(0); len(got) != 0 {
		t.Errorf("CreateRankList(0) = %v", got)
	}
}
