package dispatch

import (
	"context"

	"github.com/KirkDiggler/rpg-rotation/internal/catalog"
	"github.com/KirkDiggler/rpg-rotation/internal/entities"
	"github.com/KirkDiggler/rpg-rotation/internal/services/targeting"
)

// Buff casts a self buff unless it is already in effect
func (d *Dispatcher) Buff(ctx context.Context, ability string) (bool, error) {
	return d.Cast(ctx, Request{Ability: ability, Wait: true})
}

// BuffAllies buffs the first member of self and the multibox allies of
// role that lacks the buff. An empty role accepts every multibox ally.
func (d *Dispatcher) BuffAllies(ctx context.Context, ability string, role entities.Role) (bool, error) {
	a, ok := d.resolver.Catalog().Get(ability)
	if !ok {
		return false, nil
	}

	sel := targeting.Selection{Self: true, Multibox: true, Role: role}
	return d.group.First(ctx, sel, func(ctx context.Context, m *entities.Member) (bool, error) {
		if m.Kind == entities.MemberSelf {
			return d.Buff(ctx, ability)
		}
		if hasAnyFlag(m.Snapshot, a.VariantNames()) {
			return false, nil
		}
		return d.Cast(ctx, Request{Ability: ability, Target: m, Wait: true, SkipStatus: true})
	})
}

func hasAnyFlag(s *entities.Snapshot, flags []string) bool {
	for _, f := range flags {
		if s.Flag(f) {
			return true
		}
	}
	return false
}

// Fury is the fighter's aethered buff for characters without Rage
func (d *Dispatcher) Fury(ctx context.Context) (bool, error) {
	hasRage, err := d.resolver.Has(ctx, catalog.Rage)
	if err != nil || hasRage {
		return false, err
	}
	return d.Buff(ctx, catalog.Fury)
}

// Rage replaces Fury once the character knows it
func (d *Dispatcher) Rage(ctx context.Context) (bool, error) {
	hasRage, err := d.resolver.Has(ctx, catalog.Rage)
	if err != nil || !hasRage {
		return false, err
	}
	return d.Buff(ctx, catalog.Rage)
}
