package journal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KirkDiggler/rpg-rotation/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-rotation/internal/redis"
)

const (
	// Key pattern: journal:{session_id}
	keyPrefix = "journal:"

	// DefaultTTL is how long a session journal survives its last write
	DefaultTTL = 6 * time.Hour
	// DefaultCapacity is how many entries a session journal keeps
	DefaultCapacity = 1000

	defaultListLimit = 50

	errSessionIDEmpty = "session ID cannot be empty"
)

// Config holds the configuration for the redis journal
type Config struct {
	Client   redisclient.Client
	TTL      time.Duration
	Capacity int64
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.TTL < 0 || c.Capacity < 0 {
		return errors.InvalidArgument("ttl and capacity must not be negative")
	}
	return nil
}

type redisRepository struct {
	client   redisclient.Client
	ttl      time.Duration
	capacity int64
}

// NewRedisRepository creates a journal stored in capped redis lists
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	r := &redisRepository{
		client:   cfg.Client,
		ttl:      cfg.TTL,
		capacity: cfg.Capacity,
	}
	if r.ttl == 0 {
		r.ttl = DefaultTTL
	}
	if r.capacity == 0 {
		r.capacity = DefaultCapacity
	}

	return r, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Key returns the list key of a session journal
func Key(sessionID string) string {
	return keyPrefix + sessionID
}

// Append pushes the entry, trims the list to capacity and renews the TTL
func (r *redisRepository) Append(ctx context.Context, input *AppendInput) (*AppendOutput, error) {
	if input == nil || input.Entry == nil {
		return nil, errors.InvalidArgument("entry is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	entry := *input.Entry
	entry.SessionID = input.SessionID

	data, err := json.Marshal(&entry)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal journal entry")
	}

	key := Key(input.SessionID)
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, r.capacity-1)
	pipe.Expire(ctx, key, r.ttl)
	size := pipe.LLen(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to append journal entry")
	}

	return &AppendOutput{Size: size.Val()}, nil
}

// List returns up to Limit entries, newest first
func (r *redisRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	raw, err := r.client.LRange(ctx, Key(input.SessionID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list journal entries")
	}

	entries := make([]*Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal journal entry")
		}
		entries = append(entries, &e)
	}

	return &ListOutput{Entries: entries}, nil
}
