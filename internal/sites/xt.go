package sites

import (
	"context"
	"strings"

	"velowatch/internal/models"

	"github.com/PuerkitoBio/goquery"
)

const xtBaseURL = "http://xt.ht/phpbb"

// XT — phpBB-форум с двумя фиксированными барахолками. Секции запрашиваются
// с page=all, поэтому пагинации у этого источника нет.
type XT struct {
	sections []string
}

func NewXT() *XT {
	return &XT{
		sections: []string{
			"/viewforum.php?f=44&price_type_sel=0&sk=t&sd=d&page=all",
			"/viewforum.php?f=83&price_type_sel=0&sk=m&sd=d&page=all",
		},
	}
}

func (x *XT) Source() string { return SourceXT }

func (x *XT) Sections(_ context.Context) ([]string, error) {
	return x.sections, nil
}

func (x *XT) SectionURL(section string) string {
	return xtBaseURL + section
}

func (x *XT) PageURL(section string, _ int) string {
	return x.SectionURL(section)
}

func (x *XT) PageCount(_ *goquery.Document) int {
	return 1
}

func (x *XT) Listings(doc *goquery.Document) []models.Listing {
	var listings []models.Listing

	doc.Find("#pagecontent tr").Each(func(_ int, ad *goquery.Selection) {
		topic := ad.Find("a.topictitle")
		price := ad.Find("span[name='uah_cur']")
		if topic.Length() == 0 || price.Length() == 0 {
			return
		}

		href, _ := topic.First().Attr("href")
		// href вида ./viewtopic.php?f=44&t=123&sid=...: сессионный
		// идентификатор отбрасывается, иначе ссылка нестабильна
		href = strings.SplitN(href, "&sid=", 2)[0]
		href = strings.TrimPrefix(href, ".")

		link := xtBaseURL + href

		parts := strings.SplitN(link, ".php?", 2)
		if len(parts) < 2 || parts[1] == "" {
			return
		}

		listings = append(listings, models.Listing{
			Source: SourceXT,
			ID:     parts[1],
			Title:  normalizeTitle(topic.First().Text()),
			Price:  normalizePrice(price.First().Text()),
			Link:   link,
		})
	})

	return listings
}
