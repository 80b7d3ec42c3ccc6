package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/supportly/internal/config"
	"go.uber.org/zap"
)

const (
	keyChatClient       = "chat:client:%s"
	keyChatConversation = "chat:conversation:lock:"

	conversationLockTTL = 30 * time.Second
)

// ChatLimiter throttles chat turns per client and serializes turns within a
// conversation. Both features need redis; without it every call is allowed.
type ChatLimiter struct {
	rateEnabled bool

	bucket *TokenBucket
	policy Policy
	turns  *TurnLock
}

func NewChatLimiter(cfg config.Config, client *redis.Client, log *zap.Logger) (*ChatLimiter, error) {
	limitCfg := cfg.RateLimit
	if limitCfg.Enabled {
		if client == nil {
			return nil, errors.New("chat rate limit requires REDIS_ADDR")
		}
		if limitCfg.ChatRate <= 0 || limitCfg.ChatBurst <= 0 {
			return nil, errors.New("chat rate limit must be positive")
		}
	}
	if client == nil {
		log.Info("chat limiter disabled")
		return &ChatLimiter{}, nil
	}

	return &ChatLimiter{
		rateEnabled: limitCfg.Enabled,
		bucket:      NewTokenBucket(client),
		policy:      Policy{Rate: limitCfg.ChatRate, Burst: limitCfg.ChatBurst},
		turns:       NewTurnLock(client, keyChatConversation, conversationLockTTL),
	}, nil
}

func (l *ChatLimiter) Enabled() bool {
	return l != nil && l.rateEnabled
}

// Allow takes one token from the client's bucket.
func (l *ChatLimiter) Allow(ctx context.Context, clientKey string) (*Result, error) {
	if !l.Enabled() {
		return &Result{Allowed: true}, nil
	}
	clientKey = strings.TrimSpace(clientKey)
	if clientKey == "" {
		clientKey = "unknown"
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyChatClient, clientKey), l.policy)
}

// LockConversation returns ok=false when another turn holds the conversation.
// The returned token is empty when locking is disabled.
func (l *ChatLimiter) LockConversation(ctx context.Context, conversationID string) (string, bool, error) {
	conversationID = strings.TrimSpace(conversationID)
	if l == nil || l.turns == nil || conversationID == "" {
		return "", true, nil
	}
	return l.turns.Acquire(ctx, conversationID)
}

func (l *ChatLimiter) ReleaseConversation(ctx context.Context, conversationID, token string) error {
	if l == nil || l.turns == nil {
		return nil
	}
	return l.turns.Release(ctx, conversationID, token)
}
