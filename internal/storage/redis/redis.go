package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"velowatch/internal/models"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
}

func New(ctx context.Context, address string, db int) (*RedisStore, error) {
	const op = "storage.redis.New"

	rdb := redis.NewClient(&redis.Options{
		Addr: address,
		DB:   db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RedisStore{client: rdb}, nil
}

// CheckAndMark выполняет SET NX: один запрос одновременно занимает ключ и
// сохраняет поля объявления. Неатомарная пара EXISTS+SET здесь не годится —
// два воркера с одним ключом опубликовали бы объявление дважды.
func (r *RedisStore) CheckAndMark(ctx context.Context, key string, listing models.Listing) (bool, error) {
	const op = "storage.redis.CheckAndMark"

	data, err := json.Marshal(listing)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	// без TTL: отметка живёт, пока живёт база
	isNew, err := r.client.SetNX(ctx, key, data, 0).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return isNew, nil
}

func (r *RedisStore) Size(ctx context.Context) (int64, error) {
	const op = "storage.redis.Size"

	size, err := r.client.DBSize(ctx).Result()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return size, nil
}

// Close закрывает соединение с базой данных.
func (r *RedisStore) Close() {
	r.client.Close()
}
