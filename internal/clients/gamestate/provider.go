// Package gamestate is the boundary to the state provider: read-only
// snapshots of the controlled character, the hostiles it sees and its group,
// polled from the live game client.
package gamestate

import (
	"context"

	"github.com/KirkDiggler/rpg-rotation/internal/entities"
)

//go:generate mockgen -destination=mock/mock_provider.go -package=gamestatemock github.com/KirkDiggler/rpg-rotation/internal/clients/gamestate Provider

// Provider reads state for an entity ref. Reads are safe at sub-second
// frequency and may be slightly stale. A provider that loses the game process
// returns an Unavailable error.
type Provider interface {
	// ReadSnapshot returns the character's pools, status flags and position
	ReadSnapshot(ctx context.Context, ref string) (*entities.Snapshot, error)

	// ScanHostiles returns the hostiles currently on screen
	ScanHostiles(ctx context.Context, ref string) ([]entities.HostileSnapshot, error)

	// ReadGroup returns the character's group as seen through group telemetry
	ReadGroup(ctx context.Context, ref string) ([]entities.GroupMemberSnapshot, error)

	// KnownAbilities returns the literal names of every spell and item
	// ability the character can use
	KnownAbilities(ctx context.Context, ref string) ([]string, error)
}

// SpellBook adapts a provider to the resolver's spell book for one ref
type SpellBook struct {
	Provider Provider
	Ref      string
}

// KnownAbilities lists the known ability names of the ref
func (b *SpellBook) KnownAbilities(ctx context.Context) ([]string, error) {
	return b.Provider.KnownAbilities(ctx, b.Ref)
}
