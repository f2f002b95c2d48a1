package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const redisKBKey = "concierge:kb"

// RedisStore persists the knowledge base in a Redis hash keyed by the
// lowercased question. HSetNX makes Learn atomic: whichever instance
// writes a question first wins, and nothing is ever overwritten.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore connects the store and lays down the seed entries
// without clobbering anything already learned.
func NewRedisStore(ctx context.Context, client redis.UniversalClient) (*RedisStore, error) {
	s := &RedisStore{client: client}
	if err := s.seed(ctx); err != nil {
		return nil, fmt.Errorf("knowledge: seed redis store: %w", err)
	}
	return s, nil
}

func (s *RedisStore) seed(ctx context.Context) error {
	for _, e := range Seed {
		payload, err := json.Marshal(e)
		if err != nil {
			return err
		}
		if err := s.client.HSetNX(ctx, redisKBKey, strings.ToLower(e.Question), payload).Err(); err != nil {
			return err
		}
	}
	return nil
}

func (s *RedisStore) Lookup(ctx context.Context, text string) (string, bool, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return "", false, err
	}
	answer, ok := bestAnswer(text, entries)
	return answer, ok, nil
}

func (s *RedisStore) Learn(ctx context.Context, question, answer string) error {
	if !learnable(question, answer) {
		return nil
	}
	entry := Entry{Question: strings.TrimSpace(question), Answer: strings.TrimSpace(answer)}
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	key := strings.ToLower(entry.Question)
	if err := s.client.HSetNX(ctx, redisKBKey, key, payload).Err(); err != nil {
		return fmt.Errorf("knowledge: learn: %w", err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]Entry, error) {
	raw, err := s.client.HGetAll(ctx, redisKBKey).Result()
	if err != nil {
		return nil, fmt.Errorf("knowledge: list: %w", err)
	}
	entries := make([]Entry, 0, len(raw))
	for _, v := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(v), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *RedisStore) Reset(ctx context.Context) error {
	if err := s.client.Del(ctx, redisKBKey).Err(); err != nil {
		return fmt.Errorf("knowledge: reset: %w", err)
	}
	return s.seed(ctx)
}
