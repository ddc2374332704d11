// Package crawler реализует обход одного источника: обнаружение секций,
// определение пагинации по первой странице и пакетная загрузка остальных.
package crawler

import (
	"context"
	"log/slog"
	"strings"

	"velowatch/internal/fetcher"
	"velowatch/internal/models"
	"velowatch/internal/sites"

	"github.com/PuerkitoBio/goquery"
)

type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
	FetchAll(ctx context.Context, urls []string) []fetcher.Page
}

type Crawler struct {
	fetcher Fetcher
	log     *slog.Logger
}

func New(f Fetcher, log *slog.Logger) *Crawler {
	return &Crawler{
		fetcher: f,
		log:     log,
	}
}

// CrawlSource выполняет полный обход источника за один цикл. Недоступная
// секция или страница даёт ноль объявлений и не мешает остальным; ошибкой
// обход не завершается никогда, частичный результат всегда приемлем.
func (c *Crawler) CrawlSource(ctx context.Context, adapter sites.Adapter) []models.Listing {
	source := adapter.Source()

	sections, err := adapter.Sections(ctx)
	if err != nil {
		c.log.Warn("section discovery failed",
			slog.String("source", source),
			slog.String("err", err.Error()),
		)
		return nil
	}

	var listings []models.Listing

	for _, section := range sections {
		if ctx.Err() != nil {
			break
		}
		listings = append(listings, c.crawlSection(ctx, adapter, section)...)
	}

	return listings
}

func (c *Crawler) crawlSection(ctx context.Context, adapter sites.Adapter, section string) []models.Listing {
	source := adapter.Source()

	body, err := c.fetcher.Fetch(ctx, adapter.SectionURL(section))
	if err != nil {
		c.log.Warn("section unavailable",
			slog.String("source", source),
			slog.String("section", section),
			slog.String("err", err.Error()),
		)
		return nil
	}

	firstPage, err := parse(body)
	if err != nil {
		c.log.Warn("section page not parseable",
			slog.String("source", source),
			slog.String("section", section),
			slog.String("err", err.Error()),
		)
		return nil
	}

	listings := adapter.Listings(firstPage)

	// страницы 2..N; первая уже разобрана
	for _, page := range c.fetcher.FetchAll(ctx, pageURLs(adapter, section, adapter.PageCount(firstPage))) {
		doc, err := parse(page.Body)
		if err != nil {
			continue
		}
		listings = append(listings, adapter.Listings(doc)...)
	}

	return listings
}

func pageURLs(adapter sites.Adapter, section string, pageCount int) []string {
	if pageCount < 2 {
		return nil
	}

	urls := make([]string, 0, pageCount-1)
	for page := 2; page <= pageCount; page++ {
		urls = append(urls, adapter.PageURL(section, page))
	}
	return urls
}

func parse(body string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(body))
}
