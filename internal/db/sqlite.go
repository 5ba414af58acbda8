package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"minibank/internal/model"
)

// NewSQLite opens the single-file database at path and returns a connected
// GORM DB instance. Foreign keys are enabled and the pool is limited to one
// connection so SQLite sees serialized writes; ":memory:" works for tests.
func NewSQLite(path string) (*gorm.DB, error) {
	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&_foreign_keys=on"
	} else {
		dsn += "?_foreign_keys=on"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Migrate creates the users and accounts tables if they do not exist yet.
// It is safe to run on every startup.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Account{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
