package crawler_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"velowatch/internal/crawler"
	"velowatch/internal/fetcher"
	"velowatch/internal/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boardAdapter — минимальный адаптер для httptest-сервера: секции заданы
// статически, номер последней страницы лежит в #last-page, объявления —
// в div.ad с атрибутом id.
type boardAdapter struct {
	base     string
	sections []string
}

func (b *boardAdapter) Source() string { return "board" }

func (b *boardAdapter) Sections(_ context.Context) ([]string, error) {
	return b.sections, nil
}

func (b *boardAdapter) SectionURL(section string) string {
	return b.PageURL(section, 1)
}

func (b *boardAdapter) PageURL(section string, page int) string {
	return fmt.Sprintf("%s/%s/page/%d", b.base, section, page)
}

func (b *boardAdapter) PageCount(doc *goquery.Document) int {
	n, err := strconv.Atoi(strings.TrimSpace(doc.Find("#last-page").Text()))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func (b *boardAdapter) Listings(doc *goquery.Document) []models.Listing {
	var listings []models.Listing
	doc.Find("div.ad").Each(func(_ int, s *goquery.Selection) {
		listings = append(listings, models.Listing{
			Source: "board",
			ID:     s.AttrOr("id", ""),
			Title:  strings.ToLower(strings.TrimSpace(s.Text())),
		})
	})
	return listings
}

func page(lastPage int, ids ...string) string {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	if lastPage > 1 {
		fmt.Fprintf(&sb, `<span id="last-page">%d</span>`, lastPage)
	}
	for _, id := range ids {
		fmt.Fprintf(&sb, `<div class="ad" id="%s">Ad %s</div>`, id, id)
	}
	sb.WriteString("</body></html>")
	return sb.String()
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ids(listings []models.Listing) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ID)
	}
	return out
}

func TestCrawlSource_PaginationWithFailures(t *testing.T) {
	// пагинация обещает 3 страницы, страница 2 недоступна:
	// извлекаются первая и третья, ошибки нет
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bikes/page/1":
			io.WriteString(w, page(3, "a1", "a2"))
		case "/bikes/page/2":
			w.WriteHeader(http.StatusServiceUnavailable)
		case "/bikes/page/3":
			io.WriteString(w, page(3, "a5"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := crawler.New(fetcher.New("test-agent", time.Second), testLogger())
	adapter := &boardAdapter{base: srv.URL, sections: []string{"bikes"}}

	listings := c.CrawlSource(context.Background(), adapter)

	assert.Equal(t, []string{"a1", "a2", "a5"}, ids(listings))
}

func TestCrawlSource_SinglePageSection(t *testing.T) {
	var requests int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/bikes/page/1", r.URL.Path)
		io.WriteString(w, page(1, "only"))
	}))
	defer srv.Close()

	c := crawler.New(fetcher.New("test-agent", time.Second), testLogger())
	adapter := &boardAdapter{base: srv.URL, sections: []string{"bikes"}}

	listings := c.CrawlSource(context.Background(), adapter)

	require.NotEmpty(t, listings)
	assert.Equal(t, []string{"only"}, ids(listings))
	// без элемента пагинации дополнительные страницы не запрашиваются
	assert.Equal(t, 1, requests)
}

func TestCrawlSource_DeadSectionDoesNotBlockOthers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/dead/") {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		io.WriteString(w, page(1, "b1"))
	}))
	defer srv.Close()

	c := crawler.New(fetcher.New("test-agent", time.Second), testLogger())
	adapter := &boardAdapter{base: srv.URL, sections: []string{"dead", "alive"}}

	listings := c.CrawlSource(context.Background(), adapter)

	assert.Equal(t, []string{"b1"}, ids(listings))
}

func TestCrawlSource_NoSections(t *testing.T) {
	c := crawler.New(fetcher.New("test-agent", time.Second), testLogger())
	adapter := &boardAdapter{base: "http://unused", sections: nil}

	assert.Empty(t, c.CrawlSource(context.Background(), adapter))
}
