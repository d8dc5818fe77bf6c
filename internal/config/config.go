package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultDirName     = ".agentflow"
	defaultDataFile    = "data.json"
	defaultContextFile = "config.yaml"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Home        string `envconfig:"AGENTFLOW_HOME" default:""`
	DataFile    string `envconfig:"AGENTFLOW_DATA_FILE" default:""`
	ContextFile string `envconfig:"AGENTFLOW_CONTEXT_FILE" default:""`
	LogLevel    string `envconfig:"AGENTFLOW_LOG_LEVEL" default:"warn"`
	LogFormat   string `envconfig:"AGENTFLOW_LOG_FORMAT" default:""`
	BcryptCost  int    `envconfig:"AGENTFLOW_BCRYPT_COST" default:"12"`
	Version     string `envconfig:"AGENTFLOW_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables into a Config struct
// and resolves the data and context file paths against the home directory.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("AGENTFLOW_BCRYPT_COST must be between %d and %d, got %d",
			bcrypt.MinCost, bcrypt.MaxCost, cfg.BcryptCost)
	}

	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("AGENTFLOW_LOG_FORMAT must be \"text\" or \"json\", got %q", cfg.LogFormat)
	}

	if cfg.Home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory (set AGENTFLOW_HOME): %w", err)
		}
		cfg.Home = filepath.Join(homeDir, defaultDirName)
	}
	if cfg.DataFile == "" {
		cfg.DataFile = filepath.Join(cfg.Home, defaultDataFile)
	}
	if cfg.ContextFile == "" {
		cfg.ContextFile = filepath.Join(cfg.Home, defaultContextFile)
	}

	return &cfg, nil
}
