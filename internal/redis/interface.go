package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client wraps redis.UniversalClient so adapters can be handed a miniredis
// backed client in tests
type Client interface {
	redis.UniversalClient
}

// Nil is returned by reads of missing keys
const Nil = redis.Nil
