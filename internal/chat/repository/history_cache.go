package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/supportly/internal/chat/domain"
	"go.uber.org/zap"
)

const keyHistory = "chat:history:%s"

// appendScript only extends a list that is already cached, so a partial
// history is never served.
const appendScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return 0
end
redis.call("RPUSH", KEYS[1], ARGV[1])
redis.call("LTRIM", KEYS[1], -tonumber(ARGV[2]), -1)
redis.call("PEXPIRE", KEYS[1], ARGV[3])
return 1
`

type redisHistory struct {
	client *redis.Client
	script *redis.Script
	ttl    time.Duration
	log    *zap.Logger
}

// NewHistoryCache returns nil when client is nil. Cache failures are logged
// and treated as misses.
func NewHistoryCache(client *redis.Client, ttl time.Duration, log *zap.Logger) domain.HistoryCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &redisHistory{
		client: client,
		script: redis.NewScript(appendScript),
		ttl:    ttl,
		log:    log.Named("chat.history"),
	}
}

func (h *redisHistory) Get(ctx context.Context, conversationID string) ([]domain.Message, bool) {
	raw, err := h.client.LRange(ctx, historyKey(conversationID), 0, -1).Result()
	if err != nil {
		if err != redis.Nil {
			h.log.Warn("read history cache failed", zap.String("conversation_id", conversationID), zap.Error(err))
		}
		return nil, false
	}
	if len(raw) == 0 {
		return nil, false
	}

	messages := make([]domain.Message, 0, len(raw))
	for _, item := range raw {
		var message domain.Message
		if err := json.Unmarshal([]byte(item), &message); err != nil {
			h.Invalidate(ctx, conversationID)
			return nil, false
		}
		messages = append(messages, message)
	}
	return messages, true
}

func (h *redisHistory) Store(ctx context.Context, conversationID string, messages []domain.Message) {
	if len(messages) == 0 {
		return
	}
	values := make([]any, 0, len(messages))
	for _, message := range messages {
		data, err := json.Marshal(message)
		if err != nil {
			return
		}
		values = append(values, data)
	}

	key := historyKey(conversationID)
	_, err := h.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.RPush(ctx, key, values...)
		pipe.PExpire(ctx, key, h.ttl)
		return nil
	})
	if err != nil {
		h.log.Warn("store history cache failed", zap.String("conversation_id", conversationID), zap.Error(err))
	}
}

func (h *redisHistory) Append(ctx context.Context, conversationID string, message domain.Message, limit int) {
	if limit <= 0 {
		limit = 10
	}
	data, err := json.Marshal(message)
	if err != nil {
		return
	}
	err = h.script.Run(ctx, h.client, []string{historyKey(conversationID)}, data, limit, h.ttl.Milliseconds()).Err()
	if err != nil && err != redis.Nil {
		h.log.Warn("append history cache failed", zap.String("conversation_id", conversationID), zap.Error(err))
	}
}

func (h *redisHistory) Invalidate(ctx context.Context, conversationID string) {
	if err := h.client.Del(ctx, historyKey(conversationID)).Err(); err != nil {
		h.log.Warn("invalidate history cache failed", zap.String("conversation_id", conversationID), zap.Error(err))
	}
}

func historyKey(conversationID string) string {
	return fmt.Sprintf(keyHistory, conversationID)
}
