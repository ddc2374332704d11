// Package app — оркестратор конвейера: по воркеру на источник, затем
// дедупликация и публикация результатов каждого воркера.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"velowatch/internal/models"
	"velowatch/internal/sites"
	"velowatch/internal/storage"

	"golang.org/x/sync/errgroup"
)

type Crawler interface {
	CrawlSource(ctx context.Context, adapter sites.Adapter) []models.Listing
}

type Publisher interface {
	PublishJSON(ctx context.Context, msg any) error
}

type App struct {
	log      *slog.Logger
	crawler  Crawler
	store    storage.SeenStore
	producer Publisher

	adapters []sites.Adapter

	notifications bool
	runOnce       bool
	interval      time.Duration
}

func New(
	log *slog.Logger,
	crawler Crawler,
	store storage.SeenStore,
	producer Publisher,
	adapters []sites.Adapter,
	notifications bool,
	runOnce bool,
	interval time.Duration,
) *App {
	return &App{
		log:           log,
		crawler:       crawler,
		store:         store,
		producer:      producer,
		adapters:      adapters,
		notifications: notifications,
		runOnce:       runOnce,
		interval:      interval,
	}
}

// Run крутит циклы обхода до отмены контекста (или ровно один в режиме
// run_once). Холодное хранилище означает первый запуск: первый цикл только
// помечает объявления, ничего не публикуя, иначе подписчик получил бы
// уведомление на каждое уже висящее на сайтах объявление.
func (a *App) Run(ctx context.Context) error {
	const op = "app.Run"

	size, err := a.store.Size(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	publish := size > 0
	if !publish {
		a.log.Info("seen store is cold, first cycle is dedup-only")
	}

	for {
		a.RunCycle(ctx, publish)
		publish = true

		if a.runOnce {
			return nil
		}

		if a.interval > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(a.interval):
			}
		} else if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// RunCycle — один полный проход по всем источникам. Воркеры независимы:
// ошибка одного источника не отменяет остальных, цикл завершается только
// после присоединения всех воркеров.
func (a *App) RunCycle(ctx context.Context, publish bool) {
	start := time.Now()
	a.log.Info("cycle started")

	var g errgroup.Group
	for _, adapter := range a.adapters {
		adapter := adapter
		g.Go(func() error {
			listings := a.crawler.CrawlSource(ctx, adapter)
			a.publishNew(ctx, adapter.Source(), listings, publish)
			return nil
		})
	}
	g.Wait()

	a.log.Info("cycle finished", slog.Duration("took", time.Since(start)))
}

func (a *App) publishNew(ctx context.Context, source string, listings []models.Listing, publish bool) {
	var newCount, published int

	for _, listing := range listings {
		isNew, err := a.store.CheckAndMark(ctx, listing.Key(), listing)
		if err != nil {
			a.log.Error("seen store failed, dropping rest of source results",
				slog.String("source", source),
				slog.String("err", err.Error()),
			)
			return
		}
		if !isNew {
			continue
		}
		newCount++

		if !publish || !a.notifications {
			continue
		}

		if err := a.producer.PublishJSON(ctx, models.EventFromListing(listing)); err != nil {
			// отметка не откатывается: пропущенное уведомление
			// лучше повторного
			a.log.Warn("publish failed, event dropped",
				slog.String("source", source),
				slog.String("id", listing.ID),
				slog.String("err", err.Error()),
			)
			continue
		}
		published++
	}

	a.log.Info("source processed",
		slog.String("source", source),
		slog.Int("extracted", len(listings)),
		slog.Int("new", newCount),
		slog.Int("published", published),
	)
}
