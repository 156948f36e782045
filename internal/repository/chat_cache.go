package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"
	"zapzap/backend/internal/model"

	"github.com/redis/go-redis/v9"
)

const conversationTTL = 24 * time.Hour

// ConversationCache keeps a conversation's history in redis so hot chats
// skip the database. Writes use RPUSHX: a message is only appended to
// lists that already exist, so a cache entry is always either absent or
// complete.
type ConversationCache interface {
	SaveMessage(ctx context.Context, key string, msg model.Message) error
	GetMessages(ctx context.Context, key string) ([]model.Message, error)
	PrimeMessages(ctx context.Context, key string, msgs []model.Message) error
}

// PrivateKey is the cache key for a private conversation, the same for
// both directions.
func PrivateKey(userA, userB string) string {
	ids := []string{userA, userB}
	sort.Strings(ids)
	return fmt.Sprintf("chat:private:%s:%s", ids[0], ids[1])
}

func GroupKey(groupID string) string {
	return fmt.Sprintf("chat:group:%s", groupID)
}

type conversationCache struct {
	rdb *redis.Client
}

func NewConversationCache(rdb *redis.Client) ConversationCache {
	return &conversationCache{rdb: rdb}
}

func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

func (c *conversationCache) SaveMessage(ctx context.Context, key string, msg model.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := c.rdb.RPushX(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("failed to append message to cache: %w", err)
	}

	return c.rdb.Expire(ctx, key, conversationTTL).Err()
}

func (c *conversationCache) GetMessages(ctx context.Context, key string) ([]model.Message, error) {
	values, err := c.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached messages: %w", err)
	}

	messages := make([]model.Message, 0, len(values))
	for _, v := range values {
		var msg model.Message
		if err := json.Unmarshal([]byte(v), &msg); err != nil {
			// Corrupt entry, drop the whole list and fall back to the DB.
			_ = c.rdb.Del(ctx, key).Err()
			return nil, nil
		}
		messages = append(messages, msg)
	}

	return messages, nil
}

func (c *conversationCache) PrimeMessages(ctx context.Context, key string, msgs []model.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(msgs))
	for _, msg := range msgs {
		data, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("failed to marshal message: %w", err)
		}
		values = append(values, data)
	}

	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, key)
	pipe.RPush(ctx, key, values...)
	pipe.Expire(ctx, key, conversationTTL)
	_, err := pipe.Exec(ctx)
	return err
}
