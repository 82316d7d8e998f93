package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// DefaultKey is the key the serialized user table is stored under
const DefaultKey = "data"

// Backend keeps the user table in a single redis string
type Backend struct {
	client *goredis.Client
	key    string
}

// NewBackend connects using a redis:// URL
func NewBackend(url string) (*Backend, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewBackendWithClient(goredis.NewClient(opts), DefaultKey), nil
}

// NewBackendWithClient wraps an existing client
func NewBackendWithClient(client *goredis.Client, key string) *Backend {
	return &Backend{client: client, key: key}
}

// Name returns the backend name for logs
func (b *Backend) Name() string {
	return "redis"
}

// Ping checks the connection
func (b *Backend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

// Read returns the stored table; a missing key is not an error
func (b *Backend) Read(ctx context.Context) (string, bool, error) {
	data, err := b.client.Get(ctx, b.key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return data, true, nil
}

// Write overwrites the stored table
func (b *Backend) Write(ctx context.Context, data string) error {
	return b.client.Set(ctx, b.key, data, 0).Err()
}

// Close releases the connection pool
func (b *Backend) Close() error {
	return b.client.Close()
}
