package main

import (
	"flag"
	"log/slog"
	"os"

	"projectlog/internal/config"
	"projectlog/internal/database"
	"projectlog/internal/handler"
	"projectlog/internal/logger"
	"projectlog/internal/middleware"
	"projectlog/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	godotenv.Load()
	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "err", err)
		os.Exit(1)
	}
	middleware.Init(cfg.Auth.Secret, cfg.TokenTTL())

	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	if err := database.Init(db); err != nil {
		slog.Error("db init failed", "err", err)
		os.Exit(1)
	}

	store := service.NewStorage(cfg.Storage.UploadDir)
	r := handler.NewRouter(db, store)

	slog.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}
