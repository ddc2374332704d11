package sites

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"velowatch/internal/models"

	"github.com/PuerkitoBio/goquery"
)

const (
	olxBaseURL  = "https://www.olx.ua"
	olxCategory = "/hobbi-otdyh-i-sport/velo"
	olxURLTail  = "?currency=UAH&search[order]=created_at:desc&view=list"
)

// Olx — маркетплейс. Подкатегории обнаруживаются разбором навигации
// страницы категории, поэтому адаптеру нужен загрузчик.
type Olx struct {
	fetcher Fetcher
}

func NewOlx(f Fetcher) *Olx {
	return &Olx{fetcher: f}
}

func (o *Olx) Source() string { return SourceOlx }

func (o *Olx) Sections(ctx context.Context) ([]string, error) {
	const op = "sites.Olx.Sections"

	body, err := o.fetcher.Fetch(ctx, olxBaseURL+olxCategory)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var sections []string
	doc.Find("ul[data-testid='category-count-links'] li a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		// ссылка вида /hobbi-otdyh-i-sport/velo/velozapchasti/,
		// секцией остаётся хвост после /velo/
		parts := strings.Split(href, "/velo/")
		slug := parts[len(parts)-1]
		if slug == "" {
			return
		}
		sections = append(sections, "/"+slug)
	})

	return sections, nil
}

func (o *Olx) SectionURL(section string) string {
	return olxBaseURL + olxCategory + section + olxURLTail
}

func (o *Olx) PageURL(section string, page int) string {
	return o.SectionURL(section) + "&page=" + strconv.Itoa(page)
}

func (o *Olx) PageCount(doc *goquery.Document) int {
	text := doc.Find("li[data-testid='pagination-list-item']").Last().Text()

	last, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || last < 1 {
		return 1
	}
	return last
}

func (o *Olx) Listings(doc *goquery.Document) []models.Listing {
	var listings []models.Listing

	doc.Find("div[data-cy='l-card'][data-testid='l-card']").Each(func(_ int, ad *goquery.Selection) {
		title := ad.Find("h4")
		price := ad.Find("p[data-testid='ad-price']")
		link := ad.Find("a[href]")
		if title.Length() == 0 || price.Length() == 0 || link.Length() == 0 {
			return
		}

		href, _ := link.First().Attr("href")
		absLink := canonicalLink(olxBaseURL + href)
		if !strings.Contains(absLink, "/obyavlenie/") {
			return
		}

		id := ad.AttrOr("id", "")
		if id == "" {
			return
		}

		listings = append(listings, models.Listing{
			Source: SourceOlx,
			ID:     id,
			Title:  normalizeTitle(title.First().Text()),
			Price:  normalizePrice(price.First().Text()),
			Link:   absLink,
		})
	})

	return listings
}

// canonicalLink убирает локальный сегмент пути: /uk/obyavlenie/...
// и /obyavlenie/... ведут на одно объявление.
func canonicalLink(link string) string {
	return strings.Replace(link, "/uk/", "/", 1)
}

func normalizeTitle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizePrice отрезает валютный суффикс: "12 500 грн." -> "12 500".
func normalizePrice(s string) string {
	return strings.TrimSpace(strings.Split(s, "грн")[0])
}
