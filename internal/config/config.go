package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variables that override values from the config file.
const (
	EnvDataset = "MATERIA_DATASET"
	EnvLogFile = "MATERIA_LOG_FILE"
)

// DatasetConfig locates the reference material table.
type DatasetConfig struct {
	Path       string `yaml:"path"`
	Sheet      string `yaml:"sheet,omitempty"`
	NameColumn string `yaml:"name_column,omitempty"`
}

// MatchingConfig configures similarity ranking.
type MatchingConfig struct {
	TopK int `yaml:"top_k"`
}

// LogConfig configures the file logger. An empty File disables logging.
type LogConfig struct {
	File   string `yaml:"file"`
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// UIConfig configures the terminal interface.
type UIConfig struct {
	Title string `yaml:"title"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Dataset  DatasetConfig  `yaml:"dataset"`
	Matching MatchingConfig `yaml:"matching"`
	Log      LogConfig      `yaml:"log"`
	UI       UIConfig       `yaml:"ui"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	applyEnv(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/materia/config.yaml.
// If neither exists, it writes defaults to ~/.config/materia/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnv(cfg)
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "materia", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Dataset:  DatasetConfig{Path: "data/materiais.csv"},
		Matching: MatchingConfig{TopK: 3},
		Log:      LogConfig{Level: "info", Format: "json"},
		UI:       UIConfig{Title: "Discover your material"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Dataset.Path == "" {
		cfg.Dataset.Path = def.Dataset.Path
	}
	if cfg.Matching.TopK <= 0 {
		cfg.Matching.TopK = def.Matching.TopK
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
	if cfg.UI.Title == "" {
		cfg.UI.Title = def.UI.Title
	}
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv(EnvDataset); v != "" {
		cfg.Dataset.Path = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Log.File = v
	}
}
