package models

// Listing — нормализованное объявление, извлечённое со страницы источника.
// Пара (Source, ID) уникальна в пределах источника и служит ключом дедупликации.
type Listing struct {
	Source string `json:"source"`
	ID     string `json:"id"`
	Title  string `json:"title"`
	Price  string `json:"price"`
	Link   string `json:"link"`
}

// Key возвращает ключ дедупликации вида "source:id".
func (l Listing) Key() string {
	return l.Source + ":" + l.ID
}

// NewListingEvent — сообщение о новом объявлении для очереди уведомлений.
type NewListingEvent struct {
	Source string `json:"source"`
	ID     string `json:"id"`
	Title  string `json:"title"`
	Price  string `json:"price"`
	Link   string `json:"link"`
}

func EventFromListing(l Listing) NewListingEvent {
	return NewListingEvent{
		Source: l.Source,
		ID:     l.ID,
		Title:  l.Title,
		Price:  l.Price,
		Link:   l.Link,
	}
}
