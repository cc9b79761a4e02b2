package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"activiti-query/config"
	"activiti-query/domain"
	"activiti-query/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	log.Info("query updater starting")

	store, err := storage.New(&cfg.StorageConfig)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	rc := redis.NewClient(redisOptions(cfg.RedisConnectionString))
	defer rc.Close()

	handlers, err := domain.NewEventHandlerContext(
		domain.NewProcessStartedEventHandler(store),
		domain.NewTaskCreatedEventHandler(store),
		domain.NewVariableCreatedEventHandler(
			domain.NewTaskVariableCreatedHandler(store),
			domain.NewProcessVariableCreatedHandler(store),
		),
	)
	if err != nil {
		log.Fatalf("handlers: %v", err)
	}
	log.WithField("eventTypes", handlers.HandledEventTypes()).Info("event handlers registered")

	cache := newCacheUpdater(store, rc, cfg.VariablesCacheLimit, cfg.VariablesCacheTTL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ops := newOpsServer(store, redisPinger{rc})
	go func() {
		if err := ops.Start(":" + cfg.OpsPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("ops server stopped")
		}
	}()

	c := newConsumer(store, func(ctx context.Context, payload string) error {
		return processMessage(ctx, handlers, cache, rc, cfg.UpdatesChannel, payload)
	}, cfg.PollInterval, cfg.MaxDequeueCount)
	c.run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ops.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("ops server shutdown")
	}
	log.Info("query updater stopped")
}
