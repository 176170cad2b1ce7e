package repository

import (
	"testing"

	"SellerLens/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试独立的内存库，单连接避免内存库随连接销毁
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.Keyword{},
		&model.Category{},
		&model.UploadFile{},
		&model.Subscriber{},
		&model.User{},
		&model.ActivityEvent{},
		&model.ActivityDailyMetric{},
	)
	require.NoError(t, err)

	return db
}
