package config

import (
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rhythm00111/capella-notes/pkg/errors"
)

// Config holds application configuration.
type Config struct {
	DataDir         string `yaml:"dataDir"`
	ListenAddr      string `yaml:"listenAddr"`
	AutoSaveDelayMS int    `yaml:"autoSaveDelayMs"`
	MaxSubPageDepth int    `yaml:"maxSubPageDepth"`
	LogLevel        string `yaml:"logLevel"`
}

// SnapshotPath returns the path of the snapshot blob inside DataDir.
func (c *Config) SnapshotPath() string {
	return filepath.Join(c.DataDir, "notes.json")
}

// AutoSaveDelay returns the persistence debounce as a duration.
func (c *Config) AutoSaveDelay() time.Duration {
	return time.Duration(c.AutoSaveDelayMS) * time.Millisecond
}

// GetDefaultDataDir returns the default directory for storing the
// snapshot.
func GetDefaultDataDir() string {
	currentUser, err := user.Current()
	if err != nil {
		return "./data"
	}
	return filepath.Join(currentUser.HomeDir, "Documents", "Capella", "Notes")
}

// GetConfigFilePath returns where the config file is looked up.
func GetConfigFilePath() string {
	currentUser, err := user.Current()
	if err != nil {
		return "./config.yaml"
	}
	return filepath.Join(currentUser.HomeDir, ".config", "capella", "config.yaml")
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		DataDir:         GetDefaultDataDir(),
		ListenAddr:      ":8484",
		AutoSaveDelayMS: 500,
		MaxSubPageDepth: 3,
		LogLevel:        "info",
	}
}

// Load reads configuration from the YAML file at path (the default
// location when path is empty), then applies environment overrides. A
// missing file is not an error; defaults apply. A .env file in the
// working directory is honored.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()

	if path == "" {
		path = GetConfigFilePath()
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.ErrConfigLoadFailed.WithContext("path", path).
				WithContext("cause", err.Error())
		}
	}

	applyEnv(cfg)

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeConfig, "DATA_DIR_CREATE_FAILED",
			"failed to create data directory").WithContext("dir", cfg.DataDir)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CAPELLA_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("CAPELLA_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("CAPELLA_AUTOSAVE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.AutoSaveDelayMS = ms
		}
	}
	if v := os.Getenv("CAPELLA_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// Save writes the configuration to the default config file location.
func (c *Config) Save() error {
	path := GetConfigFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
