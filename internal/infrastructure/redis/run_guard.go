package redisstore

import (
	"context"
	"sync"
	"time"

	"bcvrates/internal/application"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// RunGuard is a SETNX lock with a TTL so a crashed run cannot block forever.
type RunGuard struct {
	Client *redis.Client
	TTL    time.Duration

	mu     sync.Mutex
	tokens map[string]string
}

var _ application.RunGuard = (*RunGuard)(nil)

func New(client *redis.Client, ttl time.Duration) *RunGuard {
	return &RunGuard{Client: client, TTL: ttl, tokens: map[string]string{}}
}

func (g *RunGuard) TryReserve(ctx context.Context, key string) (bool, error) {
	token := uuid.NewString()
	ok, err := g.Client.SetNX(ctx, key, token, g.TTL).Result()
	if err != nil {
		return false, err
	}
	if ok {
		g.mu.Lock()
		g.tokens[key] = token
		g.mu.Unlock()
	}
	return ok, nil
}

func (g *RunGuard) Release(ctx context.Context, key string) error {
	g.mu.Lock()
	token, ok := g.tokens[key]
	delete(g.tokens, key)
	g.mu.Unlock()
	if !ok {
		return nil
	}
	return releaseScript.Run(ctx, g.Client, []string{key}, token).Err()
}
