package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/bloglist-backend/internal/data/db"
	"github.com/yungbote/bloglist-backend/internal/platform/logger"
)

func TestAppLifecycle(t *testing.T) {
	t.Setenv("LOG_MODE", "test")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "bloglist.db"))
	t.Setenv("PORT", "0")
	t.Setenv("METRICS_ENABLED", "true")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := New(ctx)
	require.NoError(t, err)
	defer a.Close()

	require.NotNil(t, a.Clients.Metrics)
	require.NotNil(t, a.Services.Blog)

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestAppNewFailsOnBadConfig(t *testing.T) {
	t.Setenv("LOG_MODE", "test")
	t.Setenv("DB_DRIVER", "oracle")

	_, err := New(context.Background())
	assert.Error(t, err)
}

func TestAppNewFailsWhenRedisUnreachable(t *testing.T) {
	t.Setenv("LOG_MODE", "test")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "bloglist.db"))
	t.Setenv("REDIS_ADDR", "127.0.0.1:1")

	_, err := New(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestAppCloseReleasesPartialApp(t *testing.T) {
	log, err := logger.New("test")
	require.NoError(t, err)

	gdb, err := db.Open(db.Config{
		Driver: db.DriverSQLite,
		SQLite: db.SQLiteConfig{Path: filepath.Join(t.TempDir(), "bloglist.db")},
	}, log)
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)

	otelClosed := false
	a := &App{
		Log: log,
		DB:  gdb,
		Cfg: Config{ShutdownTimeout: time.Second},
		otelShutdown: func(context.Context) error {
			otelClosed = true
			return nil
		},
	}
	a.Close()

	assert.True(t, otelClosed)
	assert.Error(t, sqlDB.Ping())
}
