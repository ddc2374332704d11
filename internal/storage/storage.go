package storage

import (
	"context"
	"errors"

	"velowatch/internal/models"
)

var ErrStoreUnavailable = errors.New("seen store unavailable")

// SeenStore хранит отметки об уже обработанных объявлениях.
// Реализация обязана быть безопасной для конкурентного использования.
type SeenStore interface {
	// CheckAndMark атомарно проверяет и помечает ключ. Возвращает true
	// ровно один раз за время жизни хранилища для каждого ключа; рядом с
	// отметкой сохраняются поля объявления.
	CheckAndMark(ctx context.Context, key string, listing models.Listing) (bool, error)

	// Size возвращает число сохранённых отметок.
	Size(ctx context.Context) (int64, error)
}
