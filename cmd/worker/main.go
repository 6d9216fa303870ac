package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/event-organizer/backend/config"
	"github.com/event-organizer/backend/internal/notifications"
	"github.com/event-organizer/backend/internal/worker"
	"github.com/event-organizer/backend/pkg/database"
	"github.com/event-organizer/backend/pkg/queue"
	"github.com/event-organizer/backend/pkg/redis"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	w := worker.New(
		queue.NewQueue(rdb.Client, logger),
		notifications.NewRepository(pool),
		logger,
	)
	w.Run(ctx)
}
