// Package config holds runtime settings for the authd CLI.
package config

import (
	"log"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings the CLI needs to reach the server.
type Config struct {
	ServerURL string
}

// envConfig mirrors Config with env tags for the environment overlay.
type envConfig struct {
	ServerURL string `env:"SERVER_URL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8000"
}

func parseEnv(cfg *Config) {
	ec := envConfig{}
	if err := env.Parse(&ec); err != nil {
		log.Println(err)
		return
	}

	if ec.ServerURL != "" {
		cfg.ServerURL = ec.ServerURL
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
