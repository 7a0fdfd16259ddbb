package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if *reloaded != *cfg {
		t.Errorf("saved config reads back as %+v", reloaded)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[engine]
top_k = 6
cache_size = 0

[data]
dir = "/srv/words"
file = "ngrams.txt"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Engine.TopK != 6 || cfg.Engine.CacheSize != 0 {
		t.Errorf("engine section not applied: %+v", cfg.Engine)
	}
	if cfg.Data.Dir != "/srv/words" || cfg.Data.File != "ngrams.txt" {
		t.Errorf("data section not applied: %+v", cfg.Data)
	}
	if cfg.Server != DefaultConfig().Server {
		t.Errorf("missing section should keep defaults: %+v", cfg.Server)
	}
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	// top_k has the wrong type, so strict decoding fails and values are pulled per key
	path := writeConfig(t, `
[engine]
top_k = "many"
cache_size = 9

[server]
max_limit = 10
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Engine.TopK != 4 {
		t.Errorf("bad top_k should fall back to 4, got %d", cfg.Engine.TopK)
	}
	if cfg.Engine.CacheSize != 9 {
		t.Errorf("expected cache_size 9, got %d", cfg.Engine.CacheSize)
	}
	if cfg.Server.MaxLimit != 10 {
		t.Errorf("expected max_limit 10, got %d", cfg.Server.MaxLimit)
	}
}

func TestLoadConfigGarbage(t *testing.T) {
	path := writeConfig(t, "this is [[ not toml")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestSanitize(t *testing.T) {
	path := writeConfig(t, `
[engine]
top_k = 0
cache_size = -2

[server]
max_word_len = -1
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Engine.TopK != 4 || cfg.Engine.CacheSize != 0 || cfg.Server.MaxWordLen != 128 {
		t.Errorf("out of range values not sanitized: %+v", cfg)
	}
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	topK := 2
	if err := cfg.Update(path, &topK, nil); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if reloaded.Engine.TopK != 2 {
		t.Errorf("expected saved top_k 2, got %d", reloaded.Engine.TopK)
	}
	if reloaded.Engine.CacheSize != DefaultConfig().Engine.CacheSize {
		t.Errorf("cache_size should be unchanged, got %d", reloaded.Engine.CacheSize)
	}
}

func TestLoadConfigIgnoresUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
[engine]
top_k = 7
fuzzy = true
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Engine.TopK != 7 {
		t.Errorf("known keys should still apply, got top_k %d", cfg.Engine.TopK)
	}
}

func TestDefaultConfigPathFollowsXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only read on linux")
	}
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	path, err := GetDefaultConfigPath()
	if err != nil {
		t.Fatalf("GetDefaultConfigPath failed: %v", err)
	}
	if want := filepath.Join(base, "wordsim", "config.toml"); path != want {
		t.Errorf("GetDefaultConfigPath = %s, expected %s", path, want)
	}
}
