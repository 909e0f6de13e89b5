package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, ":8000", cfg.Address)
	require.Equal(t, "dev", cfg.Environment)
	require.Equal(t, "HS256", cfg.SigningAlgorithm)
	require.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
	require.NotEmpty(t, cfg.DatabaseDSN)
	require.NotEmpty(t, cfg.AdminUsername)
}

func TestParseEnv_OverridesDefaults(t *testing.T) {
	t.Setenv("ADDRESS", ":9000")
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("DATABASE_DSN", "postgres://env/db")
	t.Setenv("JWT_SECRET_KEY", "env-secret")
	t.Setenv("HASHING_ALGORITHM", "HS512")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "45")
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("ADMIN_PASSWORD", "hunter2")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	require.Equal(t, ":9000", cfg.Address)
	require.Equal(t, "prod", cfg.Environment)
	require.Equal(t, "postgres://env/db", cfg.DatabaseDSN)
	require.Equal(t, "env-secret", cfg.SecretKey)
	require.Equal(t, "HS512", cfg.SigningAlgorithm)
	require.Equal(t, 45*time.Minute, cfg.AccessTokenValidityDuration)
	require.Equal(t, "root", cfg.AdminUsername)
	require.Equal(t, "hunter2", cfg.AdminPassword)
}

func TestParseEnv_UnsetKeepsDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()
	want := *cfg

	parseEnv(cfg)

	require.Equal(t, want, *cfg)
}
