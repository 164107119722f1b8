// Package presence implements the shared who-is-online roster using
// Redis. Each connected session upserts its own record under a TTL;
// records of sessions that stop beating expire on their own.
package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fabworks/caseboard/internal/config"
	"github.com/fabworks/caseboard/internal/domain"
)

const keyPrefix = "presence:"

// record is the stored form of one presence row.
type record struct {
	Actor    string    `json:"actor"`
	Version  string    `json:"version"`
	LastSeen time.Time `json:"last_seen"`
}

// Store provides presence persistence backed by Redis.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a presence store from config and verifies the connection.
func New(ctx context.Context, cfg config.RedisConfig, ttl time.Duration) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewWithClient(client, ttl), nil
}

// NewWithClient creates a store from an existing Redis client.
func NewWithClient(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func key(actor string) string {
	return keyPrefix + actor
}

// Upsert writes one presence record under the store's TTL. Each beat
// refreshes the expiry.
func (s *Store) Upsert(ctx context.Context, p domain.Presence) error {
	data, err := json.Marshal(record{
		Actor:    p.Actor,
		Version:  p.Version,
		LastSeen: p.LastSeen,
	})
	if err != nil {
		return fmt.Errorf("marshal presence record: %w", err)
	}

	if err := s.client.Set(ctx, key(p.Actor), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("upsert presence for %q: %w", p.Actor, err)
	}
	return nil
}

// List returns every live presence record, sorted by actor name.
// Records whose TTL lapsed are simply absent.
func (s *Store) List(ctx context.Context) ([]domain.Presence, error) {
	var out []domain.Presence

	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Result()
		if err == redis.Nil {
			// Expired between SCAN and GET.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get presence %q: %w", iter.Val(), err)
		}

		var rec record
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, fmt.Errorf("unmarshal presence %q: %w", iter.Val(), err)
		}
		out = append(out, domain.Presence{
			Actor:    rec.Actor,
			Version:  rec.Version,
			LastSeen: rec.LastSeen,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan presence keys: %w", err)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Actor < out[j].Actor })
	return out, nil
}

// Remove deletes one actor's record, for a clean sign-off ahead of the
// TTL.
func (s *Store) Remove(ctx context.Context, actor string) error {
	if err := s.client.Del(ctx, key(actor)).Err(); err != nil {
		return fmt.Errorf("remove presence for %q: %w", actor, err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}
