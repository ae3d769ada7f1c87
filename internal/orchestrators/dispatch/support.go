package dispatch

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-rotation/internal/catalog"
	"github.com/KirkDiggler/rpg-rotation/internal/entities"
	"github.com/KirkDiggler/rpg-rotation/internal/services/targeting"
)

// Cures maps each debuff to the ability that removes it
var Cures = map[entities.Debuff]string{
	entities.DebuffParalysis: catalog.CureParalysis,
	entities.DebuffBlindness: catalog.CureBlindness,
	entities.DebuffScourge:   catalog.RemoveCurse,
	entities.DebuffVenom:     catalog.Purge,
	entities.DebuffVex:       catalog.RemoveCurse,
}

// Heal casts ability on the first group member, in priority order, whose
// vita is below belowPercent. Zero uses the configured threshold.
func (d *Dispatcher) Heal(ctx context.Context, ability string, belowPercent float64) (bool, error) {
	if belowPercent <= 0 {
		belowPercent = d.Thresholds().HealVitaPercent
	}

	sel := targeting.Everyone
	sel.Eligible = func(m *entities.Member) bool {
		return m.Pools.Vita().Percent() < belowPercent
	}

	return d.group.First(ctx, sel, func(ctx context.Context, m *entities.Member) (bool, error) {
		return d.Cast(ctx, Request{Ability: ability, Target: m, Wait: true, SkipStatus: true})
	})
}

// Cure removes the first curable debuff found, debuffs in cure priority and
// members in group priority. Self and multibox debuffs come from their
// snapshots; external allies from pending flags, cleared once cured.
func (d *Dispatcher) Cure(ctx context.Context) (bool, error) {
	for _, debuff := range entities.Debuffs {
		ability := Cures[debuff]

		sel := targeting.Everyone
		sel.Eligible = func(m *entities.Member) bool {
			return m.NeedsCure(debuff)
		}

		ok, err := d.group.First(ctx, sel, func(ctx context.Context, m *entities.Member) (bool, error) {
			cast, err := d.Cast(ctx, Request{Ability: ability, Target: m, Wait: true, SkipStatus: true})
			if cast && m.Kind == entities.MemberExternal {
				m.ClearCure(debuff)
			}
			return cast, err
		})
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

// BroadcastCure flags every debuff the caster can cure as pending on every
// external ally. Their debuffs are not observable, so Cure works through
// the flags under normal cooldown gating.
func (d *Dispatcher) BroadcastCure(ctx context.Context) error {
	known := make([]entities.Debuff, 0, len(entities.Debuffs))
	for _, debuff := range entities.Debuffs {
		ok, err := d.resolver.Has(ctx, Cures[debuff])
		if err != nil {
			return err
		}
		if ok {
			known = append(known, debuff)
		}
	}

	d.group.MarkExternalCures(known)
	return nil
}

// Invoke restores the caster's mana once it drops below belowManaPercent.
// Zero uses the configured threshold.
func (d *Dispatcher) Invoke(ctx context.Context, belowManaPercent float64) (bool, error) {
	if belowManaPercent <= 0 {
		belowManaPercent = d.Thresholds().InvokeManaPercent
	}

	self := d.tracker.Self()
	if self == nil || self.Pools.Mana().Percent() >= belowManaPercent {
		return false, nil
	}

	return d.Cast(ctx, Request{Ability: catalog.Invoke, Wait: true})
}

// Inspire transfers mana to an ally at or below the transfer ceiling. It
// only fires for casters that can Invoke the mana back.
func (d *Dispatcher) Inspire(ctx context.Context, target *entities.Member) (bool, error) {
	if target == nil {
		return false, nil
	}
	if target.Pools.Mana().Percent() > d.Thresholds().ManaTransferCeiling {
		return false, nil
	}

	canInvoke, err := d.resolver.Has(ctx, catalog.Invoke)
	if err != nil || !canInvoke {
		return false, err
	}

	return d.Cast(ctx, Request{Ability: catalog.Inspire, Target: target, Wait: true, SkipStatus: true})
}

// InspireGroup inspires the first eligible ally: multibox melee allies,
// then external allies whose resource profile suggests a small mana pool
func (d *Dispatcher) InspireGroup(ctx context.Context) (bool, error) {
	self := d.tracker.Self()
	if self == nil {
		return false, nil
	}
	casterManaMax := self.Pools.Mana().Max

	sel := targeting.Selection{
		Multibox: true,
		Role:     entities.RoleMelee,
		External: true,
		ExternalEligible: func(m *entities.Member) bool {
			ok := targeting.ManaTransferEligible(m, casterManaMax)
			if !ok {
				slog.Debug("inspire excluded",
					"character", d.character,
					"ally", m.Name,
					"mana_max", m.Pools.Mana().Max)
			}
			return ok
		},
	}

	return d.group.First(ctx, sel, d.Inspire)
}
