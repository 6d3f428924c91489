package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/bloglist-backend/internal/platform/logger"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestPostgresDSN(t *testing.T) {
	cfg := PostgresConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "bloglist"}
	assert.Equal(t, "postgres://u:p@db:5432/bloglist?sslmode=disable", cfg.DSN())

	cfg.SSLMode = "require"
	assert.Equal(t, "postgres://u:p@db:5432/bloglist?sslmode=require", cfg.DSN())
}

func TestOpenSQLiteMigrates(t *testing.T) {
	log, err := logger.New("test")
	require.NoError(t, err)

	db, err := Open(Config{Driver: DriverSQLite, SQLite: SQLiteConfig{Path: "file::memory:"}}, log)
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable("blog"))
	assert.True(t, db.Migrator().HasTable("user"))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	log, err := logger.New("test")
	require.NoError(t, err)

	_, err = Open(Config{Driver: "mongodb"}, log)
	assert.Error(t, err)
}
