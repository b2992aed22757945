package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr)
	assert.Equal(t, "data/ethics.db", cfg.Database.Path)
	assert.Equal(t, 5, cfg.Database.MaxOpenConns)
	assert.Equal(t, 60, cfg.Auth.TokenTTLMinutes)
	assert.Empty(t, cfg.Auth.JWTSecret, "no secret ships by default; startup must refuse to run without one")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ETHICS_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("ETHICS_AUTH_JWTSECRET", "from-env")
	t.Setenv("ETHICS_AUTH_TOKENTTLMINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 15, cfg.Auth.TokenTTLMinutes)
}
