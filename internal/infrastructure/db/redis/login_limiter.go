package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// hitScript increments the window counter, starts the window on the first
// hit, and returns the new count with the remaining window in milliseconds.
var hitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {current, ttl}
`)

// LoginLimiter is a fixed-window attempt counter.
// Key format: rl:login:<client key>
type LoginLimiter struct {
	client *redis.Client
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client *redis.Client) *LoginLimiter {
	return &LoginLimiter{client: client}
}

// Hit records one attempt for key and returns the attempts seen in the
// current window and the time until that window resets.
func (l *LoginLimiter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	res, err := hitScript.Run(ctx, l.client, []string{l.key(key)}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, 0, fmt.Errorf("rate limit hit: %w", err)
	}
	if len(res) != 2 {
		return 0, 0, fmt.Errorf("rate limit hit: unexpected reply %v", res)
	}

	reset := time.Duration(res[1]) * time.Millisecond
	if reset < 0 {
		reset = 0
	}
	return res[0], reset, nil
}

// Ping reports Redis reachability for the readiness probe.
func (l *LoginLimiter) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

func (l *LoginLimiter) key(key string) string {
	return "rl:login:" + key
}
