package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "Asia/Kolkata", cfg.Server.Timezone)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 7, cfg.Subscription.DefaultTotalDays)
	assert.False(t, cfg.Redis.Enabled)
	assert.Same(t, cfg, Get())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MEALSUB_DATABASE_DRIVER", "sqlite")
	t.Setenv("MEALSUB_DATABASE_DATABASE", ":memory:")
	t.Setenv("MEALSUB_SUBSCRIPTION_DEFAULT_TOTAL_DAYS", "14")

	cfg, err := Load("release")

	require.NoError(t, err)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, ":memory:", cfg.Database.GetDSN())
	assert.Equal(t, 14, cfg.Subscription.DefaultTotalDays)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MEALSUB_DATABASE_DRIVER", "postgres")

	_, err := Load("")

	assert.Error(t, err)
}
