package injector

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/rpg-rotation/internal/errors"
	"github.com/KirkDiggler/rpg-rotation/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-rotation/internal/redis"
)

// DefaultMaxPending is the queue depth at which the consumer is considered gone
const DefaultMaxPending = 64

// QueueKey is the list the input sidecar pops commands from
func QueueKey(ref string) string { return fmt.Sprintf("injector:%s:queue", ref) }

// RedisConfig configures the redis queue injector
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
	// MaxPending caps the queue; a deeper queue means nothing is draining it
	MaxPending int64
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	if c.MaxPending < 0 {
		return errors.InvalidArgument("max pending must not be negative")
	}
	return nil
}

type redisInjector struct {
	client     redisclient.Client
	clock      clock.Clock
	maxPending int64
}

// NewRedisInjector creates an injector that pushes JSON commands onto a
// per-character redis list
func NewRedisInjector(cfg *RedisConfig) (Injector, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	maxPending := cfg.MaxPending
	if maxPending == 0 {
		maxPending = DefaultMaxPending
	}

	return &redisInjector{
		client:     cfg.Client,
		clock:      cfg.Clock,
		maxPending: maxPending,
	}, nil
}

var _ Injector = (*redisInjector)(nil)

func (i *redisInjector) Dispatch(ctx context.Context, ref string, cmd Command) (*Ack, error) {
	if ref == "" {
		return nil, errors.InvalidArgument("ref is required")
	}
	if cmd.Ability == "" {
		return nil, errors.InvalidArgument("ability is required")
	}

	key := QueueKey(ref)
	pending, err := i.client.LLen(ctx, key).Result()
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to inspect queue for %s", ref)
	}
	if pending >= i.maxPending {
		return nil, errors.Unavailablef("injection queue for %s is not draining", ref).
			WithMeta("pending", pending)
	}

	if cmd.IssuedAt.IsZero() {
		cmd.IssuedAt = i.clock.Now()
	}

	data, err := json.Marshal(cmd)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal command")
	}

	length, err := i.client.RPush(ctx, key, data).Result()
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to queue command for %s", ref)
	}

	return &Ack{
		CommandID: cmd.ID,
		Pending:   length,
		SentAt:    i.clock.Now(),
	}, nil
}
