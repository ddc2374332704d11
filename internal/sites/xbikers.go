package sites

import (
	"context"
	"strconv"
	"strings"

	"velowatch/internal/models"

	"github.com/PuerkitoBio/goquery"
)

const xbikersBaseURL = "https://x-bikers.com/board/"

// XBikers — доска объявлений без подкатегорий: одна секция,
// пагинация через ссылку "последняя страница".
type XBikers struct{}

func NewXBikers() *XBikers {
	return &XBikers{}
}

func (x *XBikers) Source() string { return SourceXBikers }

func (x *XBikers) Sections(_ context.Context) ([]string, error) {
	return []string{""}, nil
}

func (x *XBikers) SectionURL(_ string) string {
	return xbikersBaseURL
}

func (x *XBikers) PageURL(_ string, page int) string {
	return xbikersBaseURL + "index.php?&page=" + strconv.Itoa(page)
}

func (x *XBikers) PageCount(doc *goquery.Document) int {
	href := doc.Find("li.last a").First().AttrOr("href", "")

	parts := strings.SplitN(href, "page=", 2)
	if len(parts) < 2 {
		return 1
	}

	last, err := strconv.Atoi(parts[1])
	if err != nil || last < 1 {
		return 1
	}
	return last
}

func (x *XBikers) Listings(doc *goquery.Document) []models.Listing {
	var listings []models.Listing

	doc.Find("tr[valign='middle']").Each(func(_ int, ad *goquery.Selection) {
		title := ad.Find("a.gb")
		price := ad.Find("td.bfb").Eq(2)
		if title.Length() == 0 || price.Length() == 0 {
			return
		}

		link, _ := title.First().Attr("href")

		parts := strings.Split(link, "id=")
		if len(parts) < 2 {
			return
		}
		id := parts[len(parts)-1]
		if id == "" {
			return
		}

		listings = append(listings, models.Listing{
			Source: SourceXBikers,
			ID:     id,
			Title:  normalizeTitle(title.First().Text()),
			Price:  normalizePrice(price.First().Text()),
			Link:   link,
		})
	})

	return listings
}
