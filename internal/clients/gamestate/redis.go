package gamestate

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-rotation/internal/entities"
	"github.com/KirkDiggler/rpg-rotation/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-rotation/internal/redis"
)

// Key pattern: gamestate:{ref}:{part}. The memory-reader sidecar owns the
// writes; the engine only reads.
const keyPrefix = "gamestate:"

// SelfKey is the JSON snapshot of the character
func SelfKey(ref string) string { return fmt.Sprintf("%s%s:self", keyPrefix, ref) }

// HostilesKey is the JSON array of hostiles on screen
func HostilesKey(ref string) string { return fmt.Sprintf("%s%s:hostiles", keyPrefix, ref) }

// GroupKey is the JSON array of group members
func GroupKey(ref string) string { return fmt.Sprintf("%s%s:group", keyPrefix, ref) }

// SpellsKey is the set of known ability names
func SpellsKey(ref string) string { return fmt.Sprintf("%s%s:spells", keyPrefix, ref) }

// Config holds the configuration for the redis provider
type Config struct {
	Client redisclient.Client
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

type redisProvider struct {
	client redisclient.Client
}

// NewRedisProvider creates a provider reading what the sidecar publishes
func NewRedisProvider(cfg *Config) (Provider, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisProvider{client: cfg.Client}, nil
}

var _ Provider = (*redisProvider)(nil)

func (p *redisProvider) ReadSnapshot(ctx context.Context, ref string) (*entities.Snapshot, error) {
	if ref == "" {
		return nil, errors.InvalidArgument("ref is required")
	}

	data, err := p.client.Get(ctx, SelfKey(ref)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.Unavailablef("no snapshot published for %s", ref).
				WithMeta("key", SelfKey(ref))
		}
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to read snapshot for %s", ref)
	}

	var snap entities.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal snapshot for %s", ref)
	}

	return &snap, nil
}

func (p *redisProvider) ScanHostiles(ctx context.Context, ref string) ([]entities.HostileSnapshot, error) {
	var hostiles []entities.HostileSnapshot
	if err := p.readList(ctx, HostilesKey(ref), &hostiles); err != nil {
		return nil, errors.Wrapf(err, "failed to scan hostiles for %s", ref)
	}
	return hostiles, nil
}

func (p *redisProvider) ReadGroup(ctx context.Context, ref string) ([]entities.GroupMemberSnapshot, error) {
	var group []entities.GroupMemberSnapshot
	if err := p.readList(ctx, GroupKey(ref), &group); err != nil {
		return nil, errors.Wrapf(err, "failed to read group for %s", ref)
	}
	return group, nil
}

func (p *redisProvider) KnownAbilities(ctx context.Context, ref string) ([]string, error) {
	if ref == "" {
		return nil, errors.InvalidArgument("ref is required")
	}

	key := SpellsKey(ref)
	exists, err := p.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to read spells for %s", ref)
	}
	if exists == 0 {
		return nil, errors.Unavailablef("no spell book published for %s", ref).WithMeta("key", key)
	}

	names, err := p.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to read spells for %s", ref)
	}

	return names, nil
}

// readList decodes a JSON array key. A missing key is an empty list: the
// sidecar drops the key when nothing is on screen.
func (p *redisProvider) readList(ctx context.Context, key string, out any) error {
	data, err := p.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read "+key)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, "failed to unmarshal "+key)
	}
	return nil
}
