package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type counter struct {
	ID    uint `gorm:"primaryKey"`
	Value int
}

func setupDB(t *testing.T) *gorm.DB {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// every pooled connection would otherwise open its own empty database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(&counter{}))
	return gdb
}

func TestRunInTransaction_RollbackOnError(t *testing.T) {
	gdb := setupDB(t)
	tm := NewTransactionManager(gdb)
	boom := errors.New("boom")

	err := tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
		require.NoError(t, GetTxFromContext(ctx, gdb).Create(&counter{Value: 1}).Error)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var n int64
	require.NoError(t, gdb.Model(&counter{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestRunInTransaction_CommitAndNested(t *testing.T) {
	gdb := setupDB(t)
	tm := NewTransactionManager(gdb)

	err := tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
		outer := GetTxFromContext(ctx, gdb)
		return tm.RunInTransaction(ctx, func(inner context.Context) error {
			assert.Same(t, outer, GetTxFromContext(inner, gdb))
			return GetTxFromContext(inner, gdb).Create(&counter{Value: 2}).Error
		})
	})
	require.NoError(t, err)

	var n int64
	require.NoError(t, gdb.Model(&counter{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestPaginateAndNewestFirst(t *testing.T) {
	gdb := setupDB(t)
	for i := 1; i <= 5; i++ {
		require.NoError(t, gdb.Create(&counter{Value: i}).Error)
	}

	var rows []counter
	require.NoError(t, gdb.Order("id DESC").Scopes(Paginate(2, 2)).Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, 3, rows[0].Value)
	assert.Equal(t, 2, rows[1].Value)

	rows = nil
	require.NoError(t, gdb.Scopes(Paginate(1, 0)).Find(&rows).Error)
	assert.Len(t, rows, 5)
}
