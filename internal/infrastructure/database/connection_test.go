package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealsub/internal/shared/config"
)

func TestOpen_SQLiteInMemory(t *testing.T) {
	gdb, err := Open(&config.DatabaseConfig{Driver: config.DriverSQLite, Database: ":memory:"})
	require.NoError(t, err)

	var one int
	require.NoError(t, gdb.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "postgres", Database: "x"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestInitGetClose(t *testing.T) {
	require.NoError(t, Init(&config.DatabaseConfig{Driver: config.DriverSQLite, Database: ":memory:"}))
	assert.NotNil(t, Get())
	assert.NoError(t, Close())
}
