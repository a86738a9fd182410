// Package testutils provides common testing utilities and infrastructure setup
package testutils

import (
	"testing"

	"github.com/alchemorsel/planner/internal/infrastructure/persistence/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDatabase provides a migrated in-memory database with cleanup
type TestDatabase struct {
	GormDB *gorm.DB
	t      *testing.T
}

// SetupTestDatabase opens a private in-memory SQLite database with every
// table migrated
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	db, err := sqlite.SetupDatabase(sqlite.MemoryPath, logger.Silent, true)
	require.NoError(t, err, "Failed to open test database")

	td := &TestDatabase{GormDB: db, t: t}
	t.Cleanup(td.Cleanup)
	return td
}

// CountRecords counts the rows of table
func (td *TestDatabase) CountRecords(table string) int64 {
	td.t.Helper()

	var count int64
	require.NoError(td.t, td.GormDB.Table(table).Count(&count).Error)
	return count
}

// Cleanup closes the database
func (td *TestDatabase) Cleanup() {
	if sqlDB, err := td.GormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
