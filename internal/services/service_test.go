package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"imovia/internal/config"
	"imovia/internal/models"
)

// newTestDB opens an isolated in-memory database with foreign keys
// enforced, so the favorite cascade behaves as it does in production.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Property{},
		&models.Favorite{},
		&models.Admin{},
		&models.AdminSession{},
	))

	return db
}

func newSeedConfig(name, email, password string) *config.Config {
	cfg := config.LoadTestConfig()
	cfg.Seed = config.SeedConfig{
		SuperAdminName:     name,
		SuperAdminEmail:    email,
		SuperAdminPassword: password,
	}
	return cfg
}
