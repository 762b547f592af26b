package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sales_bot/api"
	"sales_bot/internal/access"
	"sales_bot/internal/bot"
	"sales_bot/internal/config"
	"sales_bot/internal/digest"
	"sales_bot/internal/sales"
	"sales_bot/internal/telegram"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	// Storage initialization is the one fatal failure mode.
	storage, err := sales.NewSQLiteStorage(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open ledger storage", zap.Error(err))
	}
	defer storage.Close()

	client, err := telegram.NewClient(cfg.BotToken, logger)
	if err != nil {
		logger.Fatal("failed to connect to telegram", zap.Error(err))
	}

	gate := access.NewGate(cfg.AllowedUsers)
	dispatcher := bot.NewDispatcher(storage, gate, client, logger, cfg.HistoryLimit)
	scheduler := digest.New(storage, client, gate.Members(),
		cfg.DigestHour, cfg.DigestMinute, cfg.DigestLines, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go client.Run(ctx, dispatcher)
	go scheduler.Run(ctx)

	r := gin.Default()
	api.InitRoutes(r, storage, logger)

	if err := r.Run(cfg.HTTPAddr); err != nil {
		panic(fmt.Errorf("error trying to start server: %v", err))
	}
}
