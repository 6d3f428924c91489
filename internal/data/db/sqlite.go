package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/bloglist-backend/internal/platform/logger"
)

func openSQLite(cfg Config, log *logger.Logger) (*gorm.DB, error) {
	path := cfg.SQLite.Path
	if path == "" {
		path = "bloglist.db"
	}
	log.Info("Opening SQLite database", "path", path)
	db, err := gorm.Open(sqlite.Open(path), gormConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite %q: %w", path, err)
	}
	// SQLite allows a single writer; one connection avoids "database is locked".
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}
