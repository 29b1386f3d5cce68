package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	Defaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := FromViper(newViper(map[string]any{"auth_secret": "s3cr3t"}))
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, ":8080", cfg.Server.RunAddress)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, BackendJSON, cfg.Store.Backend)
	assert.Equal(t, "data/db.json", cfg.Store.Path)
	assert.True(t, cfg.Store.Create)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Empty(t, cfg.Logger.LogLevel)
}

func TestFromViper_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]any
		wantErr string
	}{
		{
			name:    "missing secret",
			values:  map[string]any{},
			wantErr: ErrMissingSecret.Error(),
		},
		{
			name:    "unknown backend",
			values:  map[string]any{"auth_secret": "x", "store_backend": "redis"},
			wantErr: "unknown store backend",
		},
		{
			name:    "postgres without uri",
			values:  map[string]any{"auth_secret": "x", "store_backend": BackendPostgres},
			wantErr: "DATABASE_URI",
		},
		{
			name:    "json without path",
			values:  map[string]any{"auth_secret": "x", "store_path": ""},
			wantErr: "STORE_PATH",
		},
		{
			name:    "non positive ttl",
			values:  map[string]any{"auth_secret": "x", "token_ttl": "0s"},
			wantErr: "TOKEN_TTL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromViper(newViper(tt.values))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("AUTH_SECRET", "from-env")
	t.Setenv("STORE_BACKEND", BackendMemory)
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("TOKEN_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.Secret)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, EnvProd, cfg.Env)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
}
