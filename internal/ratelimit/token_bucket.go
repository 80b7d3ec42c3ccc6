package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// takeTokenScript refills the bucket at KEYS[1] from redis TIME and takes one
// token. It replies {allowed, tokens left, now ms, ms until next token}.
// Fractional token counts are returned as a string because Lua replies
// truncate numbers to integers.
const takeTokenScript = `
local rate = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])

local clock = redis.call("TIME")
local now = clock[1] * 1000 + math.floor(clock[2] / 1000)

local state = redis.call("HMGET", KEYS[1], "tokens", "ts")
local tokens = tonumber(state[1]) or burst
local last = tonumber(state[2]) or now
if now > last then
  tokens = math.min(burst, tokens + (now - last) * rate / 1000)
end

local allowed = 0
local wait = 0
if tokens >= 1 then
  allowed = 1
  tokens = tokens - 1
else
  wait = math.ceil((1 - tokens) * 1000 / rate)
end

redis.call("HSET", KEYS[1], "tokens", tokens, "ts", now)
redis.call("PEXPIRE", KEYS[1], ARGV[3])

return {allowed, tostring(tokens), now, wait}
`

var ErrNotConfigured = errors.New("rate_limiter_not_configured")

// Policy is a refill rate in tokens per second and a bucket capacity.
type Policy struct {
	Rate  float64
	Burst int
}

func (p Policy) validate() error {
	if p.Rate <= 0 || math.IsInf(p.Rate, 0) || math.IsNaN(p.Rate) {
		return fmt.Errorf("rate limit rate %v must be positive", p.Rate)
	}
	if p.Burst <= 0 {
		return fmt.Errorf("rate limit burst %d must be positive", p.Burst)
	}
	return nil
}

// idleTTL keeps an untouched bucket for twice its full refill time.
func (p Policy) idleTTL() time.Duration {
	if p.Rate <= 0 || p.Burst <= 0 {
		return time.Second
	}
	return time.Duration(max(math.Ceil(2*float64(p.Burst)/p.Rate), 1)) * time.Second
}

// Result describes one take from a bucket.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// TokenBucket is a redis-backed token bucket shared by every API replica.
type TokenBucket struct {
	client *redis.Client
	take   *redis.Script
}

func NewTokenBucket(client *redis.Client) *TokenBucket {
	if client == nil {
		return nil
	}
	return &TokenBucket{client: client, take: redis.NewScript(takeTokenScript)}
}

// Allow takes one token from the bucket at key.
func (t *TokenBucket) Allow(ctx context.Context, key string, policy Policy) (*Result, error) {
	if t == nil || t.client == nil {
		return &Result{}, ErrNotConfigured
	}
	if key == "" {
		return &Result{}, errors.New("rate limit key is empty")
	}
	if err := policy.validate(); err != nil {
		return &Result{}, err
	}

	reply, err := t.take.Run(ctx, t.client, []string{key},
		policy.Rate, policy.Burst, policy.idleTTL().Milliseconds()).Slice()
	if err != nil {
		return &Result{}, fmt.Errorf("token bucket %s: %w", key, err)
	}
	res, err := parseTakeReply(reply)
	if err != nil {
		return &Result{}, err
	}
	res.Limit = policy.Burst
	return res, nil
}

func parseTakeReply(reply []any) (*Result, error) {
	if len(reply) != 4 {
		return nil, fmt.Errorf("token bucket reply has %d fields", len(reply))
	}
	allowed, ok1 := reply[0].(int64)
	left, ok2 := reply[1].(string)
	now, ok3 := reply[2].(int64)
	wait, ok4 := reply[3].(int64)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, fmt.Errorf("token bucket reply has unexpected types %T %T %T %T", reply[0], reply[1], reply[2], reply[3])
	}
	tokens, err := strconv.ParseFloat(left, 64)
	if err != nil {
		return nil, fmt.Errorf("token bucket remaining %q: %w", left, err)
	}

	retry := time.Duration(wait) * time.Millisecond
	return &Result{
		Allowed:    allowed == 1,
		Remaining:  int(math.Floor(tokens)),
		ResetTime:  time.UnixMilli(now).Add(retry),
		RetryAfter: retry,
	}, nil
}
