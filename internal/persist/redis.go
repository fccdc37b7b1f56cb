// Package persist provides durable write-through adapters for store state.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"stylehub/internal/store"
)

// DefaultKeyPrefix is the opaque key the storefront persists its state under.
const DefaultKeyPrefix = "stylehub-store"

// RedisPersister keeps one JSON snapshot per session under
// "<prefix>:<session>". Entries have no TTL: cart and wishlist survive until
// explicitly cleared.
type RedisPersister struct {
	client *redis.Client
	prefix string
}

func NewRedis(client *redis.Client, prefix string) *RedisPersister {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisPersister{client: client, prefix: prefix}
}

func (r *RedisPersister) Load(ctx context.Context, sessionID string) (store.State, bool, error) {
	data, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return store.State{}, false, nil
	}
	if err != nil {
		return store.State{}, false, fmt.Errorf("redis get failed: %w", err)
	}

	var st store.State
	if err := json.Unmarshal(data, &st); err != nil {
		return store.State{}, false, fmt.Errorf("unmarshal state failed: %w", err)
	}
	return st, true, nil
}

func (r *RedisPersister) Save(ctx context.Context, sessionID string, st store.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal state failed: %w", err)
	}
	if err := r.client.Set(ctx, r.key(sessionID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisPersister) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisPersister) key(sessionID string) string {
	return fmt.Sprintf("%s:%s", r.prefix, sessionID)
}
