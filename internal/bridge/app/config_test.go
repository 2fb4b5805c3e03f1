package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("APP_API_SECRET", "test-secret")
	t.Setenv("APP_SITE_ID", "site1")
	t.Setenv("APP_IDENTITY_API_HOST", "https://identity.example.com")
	t.Setenv("APP_ENTITLEMENT_API_HOST", "https://entitlements.example.com")
	t.Setenv("APP_ACCESS_CONTROL_API_HOST", "https://ac.example.com")
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults apply when only required vars are set", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := LoadConfig()
		require.NoError(t, err)

		require.Equal(t, "test-secret", cfg.APISecret)
		require.Equal(t, "site1", cfg.SiteID)
		require.Equal(t, "0.0.0.0", cfg.BindAddr)
		require.Equal(t, 8080, cfg.Port)
		require.Equal(t, "dev", cfg.Env)
		require.Equal(t, "info", cfg.LogLevel)
		require.Equal(t, "json", cfg.LogFormat)
		require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	})

	t.Run("overrides are honoured", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("APP_BIND_PORT", "9090")
		t.Setenv("LOG_FORMAT", "text")
		t.Setenv("SHUTDOWN_GRACE_PERIOD", "30s")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		require.Equal(t, 9090, cfg.Port)
		require.Equal(t, "text", cfg.LogFormat)
		require.Equal(t, 30*time.Second, cfg.ShutdownGracePeriod)
	})

	t.Run("each required var is enforced", func(t *testing.T) {
		required := []string{
			"APP_API_SECRET",
			"APP_SITE_ID",
			"APP_IDENTITY_API_HOST",
			"APP_ENTITLEMENT_API_HOST",
			"APP_ACCESS_CONTROL_API_HOST",
		}

		for _, missing := range required {
			t.Run(missing, func(t *testing.T) {
				setRequiredEnv(t)
				t.Setenv(missing, "")

				_, err := LoadConfig()
				require.Error(t, err)
				require.Contains(t, err.Error(), missing)
			})
		}
	})
}
