// Package repotest 为测试提供一个已建表的 SQLite 数据库（走真实的 gorm + 连接池）
package repotest

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"user-posts-api/internal/core/database"
	"user-posts-api/internal/repo"
)

func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(5000)"
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          dsn,
		MaxOpenConns: 4,
		MaxIdleConns: 4,
		LogLevel:     "silent",
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}
