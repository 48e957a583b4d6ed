package database

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestSeedSafeFiles_Idempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&models.SafeFile{}))

	require.NoError(t, SeedSafeFiles(db))

	var first int64
	db.Model(&models.SafeFile{}).Count(&first)
	require.Greater(t, first, int64(0))

	// Re-seeding must not duplicate the allow-list
	require.NoError(t, SeedSafeFiles(db))

	var second int64
	db.Model(&models.SafeFile{}).Count(&second)
	require.Equal(t, first, second)
}
