// Package testutils provides utilities for testing, including Redis test helpers
package testutils

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-rotation/internal/clients/gamestate"
	"github.com/KirkDiggler/rpg-rotation/internal/entities"
	"github.com/KirkDiggler/rpg-rotation/internal/redis"
)

// CreateTestRedisClient creates an in-memory Redis client for testing
func CreateTestRedisClient(t *testing.T) (redis.Client, func()) {
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to create miniredis")

	client, err := redis.NewClient(mr.Addr(), nil)
	require.NoError(t, err, "failed to create redis client")

	cleanup := func() {
		_ = client.Close()
		mr.Close()
	}

	return client, cleanup
}

// CreateTestRedisServer is CreateTestRedisClient that also hands back the
// server so tests can fast-forward TTLs
func CreateTestRedisServer(t *testing.T) (*miniredis.Miniredis, redis.Client, func()) {
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to create miniredis")

	client, err := redis.NewClient(mr.Addr(), nil)
	require.NoError(t, err, "failed to create redis client")

	cleanup := func() {
		_ = client.Close()
		mr.Close()
	}

	return mr, client, cleanup
}

// GameState is what the memory-reader sidecar would have published for a ref
type GameState struct {
	Self     *entities.Snapshot
	Hostiles []entities.HostileSnapshot
	Group    []entities.GroupMemberSnapshot
	Spells   []string
}

// SeedGameState writes state under the keys the redis provider reads
func SeedGameState(t *testing.T, client redis.Client, ref string, state GameState) {
	t.Helper()
	ctx := context.Background()

	if state.Self != nil {
		data, err := json.Marshal(state.Self)
		require.NoError(t, err)
		require.NoError(t, client.Set(ctx, gamestate.SelfKey(ref), data, 0).Err())
	}

	if state.Hostiles != nil {
		data, err := json.Marshal(state.Hostiles)
		require.NoError(t, err)
		require.NoError(t, client.Set(ctx, gamestate.HostilesKey(ref), data, 0).Err())
	}

	if state.Group != nil {
		data, err := json.Marshal(state.Group)
		require.NoError(t, err)
		require.NoError(t, client.Set(ctx, gamestate.GroupKey(ref), data, 0).Err())
	}

	if len(state.Spells) > 0 {
		members := make([]any, len(state.Spells))
		for i, s := range state.Spells {
			members[i] = s
		}
		require.NoError(t, client.SAdd(ctx, gamestate.SpellsKey(ref), members...).Err())
	}
}
