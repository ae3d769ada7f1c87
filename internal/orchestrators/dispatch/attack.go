package dispatch

import (
	"context"

	"github.com/KirkDiggler/rpg-rotation/internal/catalog"
	"github.com/KirkDiggler/rpg-rotation/internal/entities"
)

// Attack casts an attack ability on a hostile
func (d *Dispatcher) Attack(ctx context.Context, ability string, target *entities.Hostile) (bool, error) {
	return d.Cast(ctx, Request{Ability: ability, Target: target, Wait: true})
}

// AttackDisabled tries to incapacitate the target with the first disabler
// that lands, then attacks it. No disabler is sent unless the attack itself
// could be cast.
func (d *Dispatcher) AttackDisabled(
	ctx context.Context, ability string, target *entities.Hostile, disablers ...string,
) (bool, error) {
	if ready, err := d.attackReady(ctx, ability); err != nil || !ready {
		return false, err
	}

	ops := make([]Op, len(disablers))
	for i, name := range disablers {
		ops[i] = func(ctx context.Context) (bool, error) {
			return d.Debuff(ctx, name, target)
		}
	}
	if _, err := FirstSuccess(ctx, ops...); err != nil {
		return false, err
	}

	return d.Attack(ctx, ability, target)
}

// AttackFirst runs AttackDisabled against hostiles from newest to oldest
// until one attack lands
func (d *Dispatcher) AttackFirst(ctx context.Context, ability string, disablers ...string) (bool, error) {
	if ready, err := d.attackReady(ctx, ability); err != nil || !ready {
		return false, err
	}

	return d.roster.ForEachReverse(ctx, func(ctx context.Context, h *entities.Hostile) (bool, error) {
		return d.AttackDisabled(ctx, ability, h, disablers...)
	})
}

// attackReady reports whether the attack resolves, its status is clear and
// its variant is off cooldown
func (d *Dispatcher) attackReady(ctx context.Context, ability string) (bool, error) {
	resolved, ok, err := d.resolver.Resolve(ctx, ability)
	if err != nil || !ok {
		return false, err
	}
	if d.tracker.IsActive(resolved.Ability.Name) {
		return false, nil
	}
	return d.governor.AbilityReady(resolved.Variant.Name), nil
}

// Hellfire puts the newest reachable hostile to sleep and burns it
func (d *Dispatcher) Hellfire(ctx context.Context) (bool, error) {
	return d.AttackFirst(ctx, catalog.Hellfire, catalog.Doze, catalog.Sleep)
}

// Inferno is Hellfire's heavier counterpart
func (d *Dispatcher) Inferno(ctx context.Context) (bool, error) {
	return d.AttackFirst(ctx, catalog.Inferno, catalog.Doze, catalog.Sleep)
}

// SelfAttack casts an untargeted vita-spending attack. minVitaPercent of
// zero uses the configured threshold.
func (d *Dispatcher) SelfAttack(ctx context.Context, ability string, minVitaPercent float64) (bool, error) {
	if minVitaPercent <= 0 {
		minVitaPercent = d.Thresholds().MinVitaPercent
	}
	return d.Cast(ctx, Request{Ability: ability, Wait: true, MinVitaPercent: minVitaPercent})
}

// Strike swings at whatever is in front of the character
func (d *Dispatcher) Strike(ctx context.Context) (bool, error) {
	return d.Cast(ctx, Request{Ability: catalog.Strike, Wait: true})
}

// Debuff casts a debuff on a hostile that is not already afflicted by it
func (d *Dispatcher) Debuff(ctx context.Context, ability string, target *entities.Hostile) (bool, error) {
	return d.Cast(ctx, Request{Ability: ability, Target: target, Wait: true, SkipStatus: true})
}

// DebuffFirst casts a debuff on the newest hostile not afflicted by it
func (d *Dispatcher) DebuffFirst(ctx context.Context, ability string) (bool, error) {
	now := d.clock.Now()
	return d.roster.First(ctx,
		func(h *entities.Hostile) bool {
			return !h.Afflicted(ability, now)
		},
		func(ctx context.Context, h *entities.Hostile) (bool, error) {
			return d.Debuff(ctx, ability, h)
		})
}
