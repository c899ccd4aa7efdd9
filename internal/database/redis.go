package database

import "github.com/redis/go-redis/v9"

// NewRedis returns nil when no address is configured; callers treat a nil
// client as "feature disabled" and fall back to in-process alternatives.
func NewRedis(addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr})
}
