// cmd/server/main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/Gajjar-Mohit/backend/internal/app"
	"github.com/Gajjar-Mohit/backend/internal/config"
	"github.com/Gajjar-Mohit/backend/internal/di"
	"github.com/Gajjar-Mohit/backend/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := utils.GetLogger()
	logger.SetLogLevel(utils.ParseLevel(cfg.LogLevel))
	if cfg.DebugMode {
		logger.SetLogLevel(utils.DEBUG)
	}
	if cfg.LogDir != "" {
		if err := utils.InitLogger(cfg.LogDir); err != nil {
			log.Fatalf("failed to init log file: %v", err)
		}
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container := di.GetContainer()
	server, err := app.New(ctx, cfg, container)
	if err != nil {
		logger.Fatal("failed to initialize services", utils.Fields{"error": err.Error()})
	}

	logger.Info("starting transcript service", utils.Fields{
		"port":       cfg.Port,
		"translator": cfg.TranslatorProvider,
		"debug":      cfg.DebugMode,
	})
	if err := server.Run(ctx); err != nil {
		logger.Error("server stopped with error", utils.Fields{"error": err.Error()})
	}
}
