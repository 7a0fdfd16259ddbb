/*
Package config manages TOML config for wordsim.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/wordsim/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Data   DataConfig   `toml:"data"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// EngineConfig has similarity engine options.
type EngineConfig struct {
	TopK      int `toml:"top_k"`
	CacheSize int `toml:"cache_size"`
}

// DataConfig holds word data locations.
type DataConfig struct {
	Dir  string `toml:"dir"`
	File string `toml:"file"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxLimit   int `toml:"max_limit"`
	MaxWordLen int `toml:"max_word_len"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	ShowScores  bool `toml:"show_scores"`
	PrefixLimit int  `toml:"prefix_limit"`
}

// GetConfigDir returns the directory holding config.toml, see utils.ConfigDir.
func GetConfigDir() (string, error) {
	return utils.ConfigDir()
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordsim/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			TopK:      4,
			CacheSize: 4,
		},
		Data: DataConfig{
			Dir:  "data/",
			File: "",
		},
		Server: ServerConfig{
			MaxLimit:   64,
			MaxWordLen: 128,
		},
		CLI: CliConfig{
			ShowScores:  true,
			PrefixLimit: 8,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Sections that fail to parse fall back to defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	unknown, err := utils.DecodeTOMLFile(configPath, config)
	if err != nil {
		log.Warnf("TOML parsing error in config file %s: %v. Attempting partial recovery...", configPath, err)
		return tryPartialParse(configPath), nil
	}
	for _, key := range unknown {
		log.Warnf("Ignoring unknown config key %q in %s", key, configPath)
	}
	config.sanitize()
	return config, nil
}

// tryPartialParse recovers whatever values a broken TOML file still yields
func tryPartialParse(configPath string) *Config {
	config := DefaultConfig()

	table, err := utils.ReadTOMLTable(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config
	}

	if section, ok := table.Table("engine"); ok {
		extractEngineConfig(section, &config.Engine)
	}
	if section, ok := table.Table("data"); ok {
		extractDataConfig(section, &config.Data)
	}
	if section, ok := table.Table("server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := table.Table("cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	config.sanitize()
	return config
}

func extractEngineConfig(section utils.Table, engine *EngineConfig) {
	if val, ok := section.Int("top_k"); ok {
		engine.TopK = val
	}
	if val, ok := section.Int("cache_size"); ok {
		engine.CacheSize = val
	}
}

func extractDataConfig(section utils.Table, data *DataConfig) {
	if val, ok := section.String("dir"); ok {
		data.Dir = val
	}
	if val, ok := section.String("file"); ok {
		data.File = val
	}
}

func extractServerConfig(section utils.Table, server *ServerConfig) {
	if val, ok := section.Int("max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := section.Int("max_word_len"); ok {
		server.MaxWordLen = val
	}
}

func extractCliConfig(section utils.Table, cli *CliConfig) {
	if val, ok := section.Bool("show_scores"); ok {
		cli.ShowScores = val
	}
	if val, ok := section.Int("prefix_limit"); ok {
		cli.PrefixLimit = val
	}
}

// sanitize replaces out of range values with defaults
func (c *Config) sanitize() {
	defaults := DefaultConfig()
	if c.Engine.TopK < 1 {
		log.Warnf("Invalid top_k %d, using %d", c.Engine.TopK, defaults.Engine.TopK)
		c.Engine.TopK = defaults.Engine.TopK
	}
	if c.Engine.CacheSize < 0 {
		c.Engine.CacheSize = 0
	}
	if c.Server.MaxLimit < 1 {
		c.Server.MaxLimit = defaults.Server.MaxLimit
	}
	if c.Server.MaxWordLen < 1 {
		c.Server.MaxWordLen = defaults.Server.MaxWordLen
	}
	if c.CLI.PrefixLimit < 0 {
		c.CLI.PrefixLimit = 0
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.WriteTOMLFile(configPath, config)
}

// Update changes the engine values and saves to file. An empty configPath only updates memory.
func (c *Config) Update(configPath string, topK, cacheSize *int) error {
	if topK != nil {
		c.Engine.TopK = *topK
	}
	if cacheSize != nil {
		c.Engine.CacheSize = *cacheSize
	}
	c.sanitize()
	if configPath == "" {
		return nil
	}
	return SaveConfig(c, configPath)
}
