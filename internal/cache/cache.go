package cache

import (
	"context"
	"time"
)

// Cache — слой мемоизации результатов матчинга. Промах и ошибка
// соединения для вызывающего кода неразличимы: сервис просто считает заново.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration)
	InvalidatePattern(ctx context.Context, pattern string)
	Close() error
}

// NoopCache используется, когда Redis не сконфигурирован.
type NoopCache struct{}

func NewNoopCache() *NoopCache { return &NoopCache{} }

func (c *NoopCache) Get(ctx context.Context, key string) (string, bool) { return "", false }

func (c *NoopCache) Set(ctx context.Context, key string, value string, ttl time.Duration) {}

func (c *NoopCache) InvalidatePattern(ctx context.Context, pattern string) {}

func (c *NoopCache) Close() error { return nil }
