package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// OpenAIOracleConfig holds configuration for the OpenAI-compatible embedder
// backing the remote similarity oracle.
type OpenAIOracleConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// OracleConfig selects and configures the similarity oracle implementation.
type OracleConfig struct {
	Type   string              `yaml:"type"`
	OpenAI *OpenAIOracleConfig `yaml:"openai,omitempty"`
}

// RubricConfig points at the rubric table consumed at startup.
type RubricConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig configures the HTTP scoring API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Oracle OracleConfig `yaml:"oracle"`
	Rubric RubricConfig `yaml:"rubric"`
	Server ServerConfig `yaml:"server"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/introscore/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
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
	return filepath.Join(home, ".config", "introscore", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Oracle: OracleConfig{Type: "tfidf"},
		Rubric: RubricConfig{Path: "rubric.yaml"},
		Server: ServerConfig{Addr: ":8080"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Oracle.Type == "" {
		cfg.Oracle.Type = "tfidf"
	}
	if cfg.Rubric.Path == "" {
		cfg.Rubric.Path = "rubric.yaml"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Oracle.Type == "openai" && cfg.Oracle.OpenAI != nil {
		if cfg.Oracle.OpenAI.BaseURL == "" {
			cfg.Oracle.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Oracle.OpenAI.APIKeyEnv == "" {
			cfg.Oracle.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Oracle.OpenAI.Model == "" {
			cfg.Oracle.OpenAI.Model = "text-embedding-3-small"
		}
		if cfg.Oracle.OpenAI.TimeoutSecs == 0 {
			cfg.Oracle.OpenAI.TimeoutSecs = 30
		}
	}
}
