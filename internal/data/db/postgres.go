package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yungbote/bloglist-backend/internal/platform/logger"
)

func (c PostgresConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Name,
		sslMode,
	)
}

func openPostgres(cfg Config, log *logger.Logger) (*gorm.DB, error) {
	log.Info("Connecting to Postgres", "host", cfg.Postgres.Host, "port", cfg.Postgres.Port, "name", cfg.Postgres.Name)
	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN()), gormConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	return db, nil
}
