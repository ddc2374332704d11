package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Page — успешно загруженная страница.
type Page struct {
	URL  string
	Body string
}

// Fetcher выполняет GET-запросы с подстановкой User-Agent и общим таймаутом.
// Один клиент переиспользуется для всех запросов, поэтому соединения с одним
// хостом не открываются заново на каждую страницу.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

func New(userAgent string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch загружает одну страницу. Любая сетевая ошибка, не-2xx статус или
// ошибка чтения тела возвращаются как ошибка; повторных попыток нет,
// вызывающий считает страницу недоступной в этом цикле.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	const op = "fetcher.Fetch"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%s: bad status code: %d", op, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(body), nil
}

// FetchAll загружает страницы в порядке следования ссылок. Неудачные запросы
// пропускаются, успешные накапливаются в порядке запросов: длина результата
// может быть меньше длины входа, соответствия по индексам нет.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []Page {
	pages := make([]Page, 0, len(urls))

	for _, url := range urls {
		if ctx.Err() != nil {
			break
		}

		body, err := f.Fetch(ctx, url)
		if err != nil {
			continue
		}
		pages = append(pages, Page{URL: url, Body: body})
	}

	return pages
}
