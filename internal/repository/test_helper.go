package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/swiftport/customs-dashboard/pkg/pg"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens an in-memory sqlite database with the containers table.
// It is exported so other packages can run against a real record store.
func NewTestDB(t testing.TB) *pg.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Every new connection to :memory: is a fresh database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	wrapped := pg.Wrap(db)
	require.NoError(t, AutoMigrate(wrapped))
	return wrapped
}
