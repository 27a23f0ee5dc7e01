/*
Package config manages TOML config for the spellsuggest engine.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/oldhand-spell/spellsuggest/internal/utils"
)

// Config holds the entire config structure.
type Config struct {
	Suggest SuggestConfig `toml:"suggest"`
	Walker  WalkerConfig  `toml:"walker"`
	Server  ServerConfig  `toml:"server"`
}

// SuggestConfig carries the 'spellsuggest' option grammar's defaults
// (spec.md §6) as struct fields, so a host can override them from a file
// instead of only via the inline option string.
type SuggestConfig struct {
	Strategy        string `toml:"strategy"` // "best", "fast", or "double"
	TimeoutMS       int    `toml:"timeout_ms"`
	MaxCount        int    `toml:"max_count"`
	EnableSoundFold bool   `toml:"enable_soundfold"`
}

// WalkerConfig tunes the TrieWalker/SoundFoldSearch internals.
type WalkerConfig struct {
	MaxWordLen    int `toml:"max_word_len"`
	CheckEvery    int `toml:"check_every"` // context cancellation poll interval, in iterations
	ScoreLimitMax int `toml:"score_limit_max"`
}

// ServerConfig has IPC listener related options (pkg/ipc's host boundary).
type ServerConfig struct {
	SocketPath     string `toml:"socket_path"`
	ReadTimeoutMS  int    `toml:"read_timeout_ms"`
	WriteTimeoutMS int    `toml:"write_timeout_ms"`
	MaxRequestSize int    `toml:"max_request_size"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "spellsuggest")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "spellsuggest")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/spellsuggest/config.toml
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

// DefaultConfig returns a Config with the 'spellsuggest' option grammar's
// defaults (§6: best / 9999 / 5000ms).
func DefaultConfig() *Config {
	return &Config{
		Suggest: SuggestConfig{
			Strategy:        "best",
			TimeoutMS:       5000,
			MaxCount:        9999,
			EnableSoundFold: true,
		},
		Walker: WalkerConfig{
			MaxWordLen:    250,
			CheckEvery:    1000,
			ScoreLimitMax: 350,
		},
		Server: ServerConfig{
			SocketPath:     "",
			ReadTimeoutMS:  5000,
			WriteTimeoutMS: 5000,
			MaxRequestSize: 1 << 20,
		},
	}
}

// InitConfig loads config from file or creates a default one if missing.
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

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse recovers what it can from a malformed TOML file rather
// than failing the whole load (§A's "tolerant partial-parse recovery").
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if suggestSection, ok := utils.ExtractSection(tempConfig, "suggest"); ok {
		extractSuggestConfig(suggestSection, &config.Suggest)
	}
	if walkerSection, ok := utils.ExtractSection(tempConfig, "walker"); ok {
		extractWalkerConfig(walkerSection, &config.Walker)
	}
	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	return config, nil
}

func extractSuggestConfig(data map[string]any, suggest *SuggestConfig) {
	if val, ok := data["strategy"].(string); ok {
		suggest.Strategy = val
	}
	if val, ok := utils.ExtractInt64(data, "timeout_ms"); ok {
		suggest.TimeoutMS = val
	}
	if val, ok := utils.ExtractInt64(data, "max_count"); ok {
		suggest.MaxCount = val
	}
	if val, ok := utils.ExtractBool(data, "enable_soundfold"); ok {
		suggest.EnableSoundFold = val
	}
}

func extractWalkerConfig(data map[string]any, walker *WalkerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_word_len"); ok {
		walker.MaxWordLen = val
	}
	if val, ok := utils.ExtractInt64(data, "check_every"); ok {
		walker.CheckEvery = val
	}
	if val, ok := utils.ExtractInt64(data, "score_limit_max"); ok {
		walker.ScoreLimitMax = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := data["socket_path"].(string); ok {
		server.SocketPath = val
	}
	if val, ok := utils.ExtractInt64(data, "read_timeout_ms"); ok {
		server.ReadTimeoutMS = val
	}
	if val, ok := utils.ExtractInt64(data, "write_timeout_ms"); ok {
		server.WriteTimeoutMS = val
	}
	if val, ok := utils.ExtractInt64(data, "max_request_size"); ok {
		server.MaxRequestSize = val
	}
}

// RebuildConfigFile force-creates a new config.toml at the default path.
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(defaultPath)
	if err := utils.EnsureDir(configDir); err != nil {
		return err
	}
	config := DefaultConfig()
	return utils.SaveTOMLFile(config, defaultPath)
}

// GetActiveConfigPath returns the absolute path of the loaded config file.
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves config into a TOML file.
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// ToMode adapts the loaded Suggest section into an orchestrator.Mode-shaped
// value; kept here rather than importing pkg/orchestrator to avoid a
// config->orchestrator dependency cycle risk as the two packages evolve.
func (c *Config) ToMode() (strategy string, timeoutMS, maxCount int) {
	return c.Suggest.Strategy, c.Suggest.TimeoutMS, c.Suggest.MaxCount
}
