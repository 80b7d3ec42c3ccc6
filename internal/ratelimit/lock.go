package ratelimit

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	redis "github.com/redis/go-redis/v9"
)

// Compare-and-delete so a turn that outlived its lease cannot free the
// conversation for the next holder.
const turnReleaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

var errEmptyConversation = errors.New("conversation id is empty")

// TurnLock admits one chat turn per conversation. Each holder gets a lease
// id stored as the key's value.
type TurnLock struct {
	client  *redis.Client
	release *redis.Script
	prefix  string
	ttl     time.Duration
}

func NewTurnLock(client *redis.Client, prefix string, ttl time.Duration) *TurnLock {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = conversationLockTTL
	}
	return &TurnLock{
		client:  client,
		release: redis.NewScript(turnReleaseScript),
		prefix:  prefix,
		ttl:     ttl,
	}
}

func (l *TurnLock) key(conversationID string) string {
	return l.prefix + conversationID
}

// Acquire returns ok=false while another turn holds the conversation.
func (l *TurnLock) Acquire(ctx context.Context, conversationID string) (string, bool, error) {
	if l == nil || l.client == nil {
		return "", false, ErrNotConfigured
	}
	conversationID = strings.TrimSpace(conversationID)
	if conversationID == "" {
		return "", false, errEmptyConversation
	}

	lease := ulid.Make().String()
	ok, err := l.client.SetNX(ctx, l.key(conversationID), lease, l.ttl).Result()
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return lease, true, nil
}

// Release frees the conversation if lease still holds it.
func (l *TurnLock) Release(ctx context.Context, conversationID, lease string) error {
	conversationID = strings.TrimSpace(conversationID)
	if l == nil || l.client == nil || conversationID == "" || lease == "" {
		return nil
	}
	return l.release.Run(ctx, l.client, []string{l.key(conversationID)}, lease).Err()
}
