// Package builders provides test data builders for creating test fixtures
package builders

import (
	"time"

	"github.com/KirkDiggler/rpg-rotation/internal/entities"
)

// SnapshotBuilder provides a fluent interface for building test snapshots
type SnapshotBuilder struct {
	snap *entities.Snapshot
}

// NewSnapshotBuilder creates a builder for a full-pool character
func NewSnapshotBuilder() *SnapshotBuilder {
	return &SnapshotBuilder{
		snap: &entities.Snapshot{
			ID:   "pid:1000",
			Name: "Aldric",
			Path: "Poet",
			Pools: entities.Pools{
				entities.PoolVita: {Current: 1000, Max: 1000},
				entities.PoolMana: {Current: 1000, Max: 1000},
			},
			Statuses: map[string]bool{},
			Timers:   map[string]time.Duration{},
			Debuffs:  map[entities.Debuff]bool{},
		},
	}
}

// WithID sets the character id
func (b *SnapshotBuilder) WithID(id string) *SnapshotBuilder {
	b.snap.ID = id
	return b
}

// WithName sets the character name
func (b *SnapshotBuilder) WithName(name string) *SnapshotBuilder {
	b.snap.Name = name
	return b
}

// WithPath sets the path or subpath
func (b *SnapshotBuilder) WithPath(path string) *SnapshotBuilder {
	b.snap.Path = path
	return b
}

// WithVita sets the primary pool
func (b *SnapshotBuilder) WithVita(current, maximum int) *SnapshotBuilder {
	b.snap.Pools[entities.PoolVita] = entities.Pool{Current: current, Max: maximum}
	return b
}

// WithMana sets the secondary pool
func (b *SnapshotBuilder) WithMana(current, maximum int) *SnapshotBuilder {
	b.snap.Pools[entities.PoolMana] = entities.Pool{Current: current, Max: maximum}
	return b
}

// WithStatus sets a status flag by literal ability name
func (b *SnapshotBuilder) WithStatus(name string) *SnapshotBuilder {
	b.snap.Statuses[name] = true
	return b
}

// WithTimer sets a status flag and the remaining time the client shows
func (b *SnapshotBuilder) WithTimer(name string, remaining time.Duration) *SnapshotBuilder {
	b.snap.Statuses[name] = true
	b.snap.Timers[name] = remaining
	return b
}

// WithDebuff marks a debuff as active
func (b *SnapshotBuilder) WithDebuff(d entities.Debuff) *SnapshotBuilder {
	b.snap.Debuffs[d] = true
	return b
}

// WithPosition sets the position
func (b *SnapshotBuilder) WithPosition(mapID, x, y int) *SnapshotBuilder {
	b.snap.Position = entities.Position{Map: mapID, X: x, Y: y}
	return b
}

// Build returns the built snapshot
func (b *SnapshotBuilder) Build() *entities.Snapshot {
	return b.snap
}

// GroupMember builds external group telemetry with the given pool maxima
func GroupMember(id, name string, slot, vitaMax, manaMax int, manaPercent float64) entities.GroupMemberSnapshot {
	return entities.GroupMemberSnapshot{
		ID:   id,
		Name: name,
		Slot: slot,
		Pools: entities.Pools{
			entities.PoolVita: {Current: vitaMax, Max: vitaMax},
			entities.PoolMana: {Current: int(float64(manaMax) * manaPercent / 100), Max: manaMax},
		},
	}
}

// Hostiles builds hostile observations with ids and names taken from names
func Hostiles(names ...string) []entities.HostileSnapshot {
	out := make([]entities.HostileSnapshot, len(names))
	for i, n := range names {
		out[i] = entities.HostileSnapshot{ID: "npc-" + n, Name: n, Position: entities.Position{X: i, Y: i}}
	}
	return out
}
