package config_test

import (
	"testing"

	"app/internal/config"

	"github.com/stretchr/testify/assert"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	t.Setenv("AZURE_STORAGE_CONNECTION_STRING", "UseDevelopmentStorage=true")
	t.Setenv("JWT_SECRET", "secret")
}

// PORTは無くても8080で起動できる
func TestLoad_DefaultsPort(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoad_ExplicitPort(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
}

func TestLoad_MissingRequired(t *testing.T) {
	cases := []string{"DATABASE_URL", "AZURE_STORAGE_CONNECTION_STRING", "JWT_SECRET"}

	for _, key := range cases {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, "")

			_, err := config.Load()
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), key)
			}
		})
	}
}
