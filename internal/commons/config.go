package commons

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"warung/internal/config"
)

// LoadConfig reads a YAML config file. Callers fall back to the env-based
// loader in internal/config when the file is absent. Operational fields the
// file leaves unset get the same defaults the env loader applies; a partial
// file must not produce a zero transaction timeout.
func LoadConfig(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *config.Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 3306
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 5 * time.Minute
	}
	if cfg.Order.TxTimeout == 0 {
		cfg.Order.TxTimeout = 5 * time.Second
	}
	if cfg.Order.MaxRetryAttempts == 0 {
		cfg.Order.MaxRetryAttempts = 3
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
