package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noamani/perfume-shop-backend/internal/cart"
	"github.com/noamani/perfume-shop-backend/internal/pricing"
)

// key suffixes match the browser-storage keys the web client used.
const (
	countryKey = "selectedCountry"
	pendingKey = "pendingCartItem"

	sessionTTL = 30 * 24 * time.Hour
)

// RedisStore keeps session state in Redis with a sliding 30-day TTL.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(sessionID, suffix string) string {
	return "session:" + sessionID + ":" + suffix
}

func (s *RedisStore) Country(ctx context.Context, sessionID string) (pricing.Country, error) {
	v, err := s.client.Get(ctx, sessionKey(sessionID, countryKey)).Result()
	if err == redis.Nil {
		return pricing.CountryIN, nil
	}
	if err != nil {
		return pricing.CountryIN, err
	}
	country := pricing.Country(v)
	if !pricing.Valid(country) {
		return pricing.CountryIN, nil
	}
	return country, nil
}

func (s *RedisStore) SetCountry(ctx context.Context, sessionID string, country pricing.Country) error {
	return s.client.Set(ctx, sessionKey(sessionID, countryKey), string(country), sessionTTL).Err()
}

func (s *RedisStore) SetPending(ctx context.Context, sessionID string, item cart.Item) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(sessionID, pendingKey), raw, sessionTTL).Err()
}

func (s *RedisStore) TakePending(ctx context.Context, sessionID string) (*cart.Item, error) {
	raw, err := s.client.GetDel(ctx, sessionKey(sessionID, pendingKey)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var item cart.Item
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *RedisStore) ClearPending(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID, pendingKey)).Err()
}
