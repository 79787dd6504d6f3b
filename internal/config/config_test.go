package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProdConfig() *Config {
	return &Config{
		JWTSecret:  "a-very-long-production-secret-0123456789",
		Port:       "8480",
		DBPassword: "s0meth1ng-strong",
		DBSSLMode:  "require",
		Env:        "production",
	}
}

func TestValidate(t *testing.T) {
	t.Run("Valid production config", func(t *testing.T) {
		require.NoError(t, validProdConfig().Validate())
	})

	t.Run("Missing port", func(t *testing.T) {
		cfg := validProdConfig()
		cfg.Port = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("Missing JWT secret", func(t *testing.T) {
		cfg := validProdConfig()
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("Default JWT secret rejected in production", func(t *testing.T) {
		cfg := validProdConfig()
		cfg.JWTSecret = "your-secret-key-change-in-production"
		assert.Error(t, cfg.Validate())
	})

	t.Run("Short JWT secret rejected in production", func(t *testing.T) {
		cfg := validProdConfig()
		cfg.JWTSecret = "short"
		assert.Error(t, cfg.Validate())
	})

	t.Run("Weak DB password rejected in production", func(t *testing.T) {
		cfg := validProdConfig()
		cfg.DBPassword = "password"
		assert.Error(t, cfg.Validate())
	})

	t.Run("Development tolerates defaults", func(t *testing.T) {
		cfg := &Config{
			JWTSecret: "your-secret-key-change-in-production",
			Port:      "8480",
			Env:       "development",
		}
		assert.NoError(t, cfg.Validate())
	})
}
