package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"velowatch/internal/app"
	"velowatch/internal/config"
	"velowatch/internal/crawler"
	"velowatch/internal/fetcher"
	"velowatch/internal/rabbitmq"
	"velowatch/internal/sites"
	"velowatch/internal/storage/redis"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad("./config/config.yaml")

	log := setupLogger(cfg.Env)

	log.Info("starting velowatch", slog.String("env", cfg.Env))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Info("Shutdown signal received")
		cancel()
	}()

	// * Инициализация Redis
	redisStore, err := redis.New(ctx, cfg.Redis.Addr, cfg.Redis.Db)
	if err != nil {
		log.Error("failed to connect redis", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer redisStore.Close()

	// * Инициализация RabbitMQ: без уведомлений брокер не нужен,
	// цикл работает вхолостую (только отметки)
	var producer app.Publisher
	if cfg.Notifications {
		rabbitMQClient, err := rabbitmq.New(cfg.RabbitMQ.URL, cfg.RabbitMQ.QueueName)
		if err != nil {
			log.Error("failed to connect rabbitMQ", slog.String("err", err.Error()))
			os.Exit(1)
		}
		defer rabbitMQClient.Close()

		producer = rabbitmq.NewProducer(
			rabbitMQClient.Channel,
			cfg.RabbitMQ.QueueName,
		)
	}

	pageFetcher := fetcher.New(cfg.UserAgent, cfg.FetchTimeout)

	adapters := make([]sites.Adapter, 0, len(cfg.Sources))
	for _, name := range cfg.Sources {
		adapter, err := sites.New(name, pageFetcher)
		if err != nil {
			log.Error("failed to build adapter", slog.String("err", err.Error()))
			os.Exit(1)
		}
		adapters = append(adapters, adapter)
	}

	a := app.New(
		log,
		crawler.New(pageFetcher, log),
		redisStore,
		producer,
		adapters,
		cfg.Notifications,
		cfg.RunOnce,
		cfg.CrawlInterval,
	)

	if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("run failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("velowatch stopped")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
