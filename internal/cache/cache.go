package cache

import (
	"context"
	"time"
)

// Repository хранилище ответов генератора советов
type Repository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
