package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvConfig is an intermediate DTO for environment parsing. Variable names
// follow the deployment's conventions (ACCESS_TOKEN_EXPIRE_MINUTES is an
// integer number of minutes). Unset variables leave the corresponding Config
// field untouched.
type EnvConfig struct {
	Address                  string `env:"ADDRESS"`
	Environment              string `env:"ENVIRONMENT"`
	DatabaseDSN              string `env:"DATABASE_DSN"`
	SecretKey                string `env:"JWT_SECRET_KEY"`
	SigningAlgorithm         string `env:"HASHING_ALGORITHM"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES"`
	AdminUsername            string `env:"ADMIN_USERNAME"`
	AdminPassword            string `env:"ADMIN_PASSWORD"`
}

// parseEnv overlays environment variables onto the provided Config.
// Parsing failures panic: a malformed environment is a deployment error.
func parseEnv(config *Config) {
	c := &EnvConfig{}
	if err := env.Parse(c); err != nil {
		panic(err)
	}

	if c.Address != "" {
		config.Address = c.Address
	}
	if c.Environment != "" {
		config.Environment = c.Environment
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.SigningAlgorithm != "" {
		config.SigningAlgorithm = c.SigningAlgorithm
	}
	if c.AccessTokenExpireMinutes > 0 {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenExpireMinutes) * time.Minute
	}
	if c.AdminUsername != "" {
		config.AdminUsername = c.AdminUsername
	}
	if c.AdminPassword != "" {
		config.AdminPassword = c.AdminPassword
	}
}
