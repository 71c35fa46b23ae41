package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	require.Equal(t, "data/citysafe.db", cfg.Database.Path)
	require.Equal(t, ".keys/private.pem", cfg.Auth.PrivateKeyPath)
	require.Equal(t, ".keys/public.pem", cfg.Auth.PublicKeyPath)
	require.Equal(t, 60, cfg.Auth.TokenTTLMinutes)
	require.Equal(t, "profile-pictures", cfg.Storage.KeyPrefix)
	require.True(t, cfg.Seed.Contacts)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CITYSAFE_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("CITYSAFE_AUTH_TOKENTTLMINUTES", "15")
	t.Setenv("CITYSAFE_STORAGE_BUCKET", "avatars")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	require.Equal(t, 15, cfg.Auth.TokenTTLMinutes)
	require.Equal(t, "avatars", cfg.Storage.Bucket)
}
