// Package testhelper wires a throwaway SQLite database and config for tests.
package testhelper

import (
	"path/filepath"
	"testing"

	"learnhub/backend/config"
	"learnhub/backend/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewConfig returns a config pointing at a fresh SQLite file and upload
// directory under t.TempDir().
func NewConfig(t testing.TB) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		ServerPort:       "8080",
		DBDriver:         config.DriverSQLite,
		DatabaseURL:      filepath.Join(dir, "learnhub_test.db"),
		JWTSecret:        "testsecret",
		BcryptCost:       4,
		VideoStoragePath: filepath.Join(dir, "videos"),
		VideoURLPrefix:   "/uploads/videos",
		MaxUploadSize:    config.DefaultMaxUploadSize,
		LogFormat:        "text",
	}
}

// SetupTestDB opens and migrates the database described by cfg.
// The connection is closed via t.Cleanup.
func SetupTestDB(t testing.TB, cfg *config.Config) *gorm.DB {
	t.Helper()

	db, err := utils.InitDB(cfg, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("testhelper: failed to setup test DB: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Logger discards everything.
func Logger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
