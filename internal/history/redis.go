package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// RedisStore keeps per-conversation turn windows in redis lists. Each key is
// trimmed to maxTurns entries and expires after ttl of inactivity.
type RedisStore struct {
	client   *redisv9.Client
	maxTurns int
	ttl      time.Duration
}

func NewRedisStore(client *redisv9.Client, maxTurns int, ttl time.Duration) *RedisStore {
	if maxTurns <= 0 {
		maxTurns = 50
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{
		client:   client,
		maxTurns: maxTurns,
		ttl:      ttl,
	}
}

func (s *RedisStore) GetRecentTurns(ctx context.Context, conversationKey string, n int) ([]TurnEntry, error) {
	if n <= 0 {
		return nil, nil
	}

	raw, err := s.client.LRange(ctx, s.key(conversationKey), int64(-n), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis read turns failed: %w", err)
	}

	turns := make([]TurnEntry, 0, len(raw))
	for _, item := range raw {
		var turn TurnEntry
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			return nil, fmt.Errorf("unmarshal cached turn failed: %w", err)
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (s *RedisStore) AppendTurn(ctx context.Context, conversationKey, question, answer string) error {
	payload, err := json.Marshal(TurnEntry{Question: question, Answer: answer})
	if err != nil {
		return fmt.Errorf("marshal turn failed: %w", err)
	}

	key := s.key(conversationKey)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.LTrim(ctx, key, int64(-s.maxTurns), -1)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis append turn failed: %w", err)
	}
	return nil
}

func (s *RedisStore) key(conversationKey string) string {
	return "conversation:turns:" + conversationKey
}
