// Package sites содержит адаптеры источников объявлений. Всё знание о
// конкретном сайте (ссылки, пагинация, селекторы) изолировано в адаптере,
// остальной конвейер работает только через интерфейс Adapter.
package sites

import (
	"context"
	"errors"
	"fmt"

	"velowatch/internal/models"

	"github.com/PuerkitoBio/goquery"
)

const (
	SourceOlx     = "olx"
	SourceXT      = "xt"
	SourceXBikers = "xbikers"
)

var ErrUnknownSource = errors.New("unknown source")

// Fetcher — то подмножество загрузчика, которое нужно адаптерам
// для живого обнаружения подкатегорий.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Adapter описывает возможности одного источника:
// обнаружение секций, пагинация и извлечение объявлений.
type Adapter interface {
	Source() string

	// Sections возвращает идентификаторы секций источника. Список может
	// быть статическим или получаться разбором навигации главной страницы.
	Sections(ctx context.Context) ([]string, error)

	SectionURL(section string) string
	PageURL(section string, page int) string

	// PageCount читает номер последней страницы из элемента пагинации
	// первой страницы секции. Если элемента нет — секция одностраничная.
	PageCount(doc *goquery.Document) int

	// Listings извлекает объявления со страницы. Карточка, у которой не
	// находится хотя бы одно обязательное поле, молча пропускается.
	Listings(doc *goquery.Document) []models.Listing
}

// New возвращает адаптер по имени источника из конфигурации.
func New(name string, f Fetcher) (Adapter, error) {
	switch name {
	case SourceOlx:
		return NewOlx(f), nil
	case SourceXT:
		return NewXT(), nil
	case SourceXBikers:
		return NewXBikers(), nil
	default:
		return nil, fmt.Errorf("sites.New: %w: %s", ErrUnknownSource, name)
	}
}
