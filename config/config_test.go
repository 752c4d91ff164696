package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServerKey(t *testing.T) {
	tests := []struct {
		name         string
		cfg          Config
		wantKey      string
		wantFallback bool
	}{
		{
			name:    "service role configured",
			cfg:     Config{AppEnv: "production", IdentityServiceRole: "svc", IdentityAnonKey: "anon"},
			wantKey: "svc",
		},
		{
			name:    "missing in production yields nothing",
			cfg:     Config{AppEnv: "production", IdentityAnonKey: "anon"},
			wantKey: "",
		},
		{
			name:         "missing in development falls back to anon key",
			cfg:          Config{AppEnv: "development", IdentityAnonKey: "anon"},
			wantKey:      "anon",
			wantFallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, fallback := tt.cfg.ServerKey()
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantFallback, fallback)
		})
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/clinic")
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.False(t, cfg.IsProduction())
}
