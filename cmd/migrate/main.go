// migrate 建表后退出；生产环境可关掉 db.autoMigrate，改由发布流程执行
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"user-posts-api/internal/core/config"
	"user-posts-api/internal/core/database"
	"user-posts-api/internal/core/logger"
	"user-posts-api/internal/repo"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db, err := database.NewGorm(database.Opts{
		Driver:       cfg.DB.Driver,
		DSN:          cfg.DB.DSN,
		Username:     cfg.DB.Username,
		Password:     cfg.DB.Password,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     cfg.DB.LogLevel,
		Log:          log,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}
	log.Info("migrate done", zap.String("driver", cfg.DB.Driver), zap.Strings("tables", []string{"users", "posts"}))
}
