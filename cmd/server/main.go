package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/Thimira-N/todo-cabin/internal/config"
	"github.com/Thimira-N/todo-cabin/internal/handler"
	"github.com/Thimira-N/todo-cabin/internal/logger"
	"github.com/Thimira-N/todo-cabin/internal/middleware"
	"github.com/Thimira-N/todo-cabin/internal/service"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(logger.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		Console:    cfg.Log.Console,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if cfg.Auth.JWTSecret != "" {
		middleware.JWTSecret = []byte(cfg.Auth.JWTSecret)
	}

	st, err := cfg.OpenStore()
	if err != nil {
		slog.Error("store init failed", "driver", cfg.Storage.Driver, "err", err)
		os.Exit(1)
	}
	defer st.Close()
	slog.Info("store ready", "driver", cfg.Storage.Driver)

	authSvc := service.NewAuthService(st)
	registrySvc := service.NewRegistryService(st)
	memberSvc := service.NewMemberService(st, registrySvc)
	todoSvc := service.NewTodoService(st)
	trackerSvc := service.NewMinuteTrackerService(st)

	r := handler.NewRouter(
		handler.NewAuthHandler(authSvc),
		handler.NewMemberHandler(memberSvc),
		handler.NewRegistryHandler(registrySvc),
		handler.NewTodoHandler(todoSvc),
		handler.NewMinuteTrackerHandler(trackerSvc, memberSvc),
	)

	slog.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}
