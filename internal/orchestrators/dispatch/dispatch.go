// Package dispatch composes the catalog, resolver, tracker, governor and
// target selectors into the operations a rotation plan issues
package dispatch

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-rotation/internal/catalog"
	"github.com/KirkDiggler/rpg-rotation/internal/clients/injector"
	"github.com/KirkDiggler/rpg-rotation/internal/entities"
	"github.com/KirkDiggler/rpg-rotation/internal/errors"
	"github.com/KirkDiggler/rpg-rotation/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-rotation/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-rotation/internal/services/governor"
	"github.com/KirkDiggler/rpg-rotation/internal/services/resolver"
	"github.com/KirkDiggler/rpg-rotation/internal/services/status"
	"github.com/KirkDiggler/rpg-rotation/internal/services/targeting"
)

// Default thresholds, percent of the pool
const (
	DefaultMinVitaPercent      = 80
	DefaultManaTransferCeiling = 80
	DefaultInvokeManaPercent   = 50
	DefaultHealVitaPercent     = 80
)

// Thresholds are the runtime-tunable resource gates
type Thresholds struct {
	// MinVitaPercent gates vita-spending attacks; casting below it fails
	MinVitaPercent float64
	// ManaTransferCeiling is the highest mana percent an ally may have to
	// receive a transfer
	ManaTransferCeiling float64
	// InvokeManaPercent is the caster mana percent below which Invoke fires
	InvokeManaPercent float64
	// HealVitaPercent is the ally vita percent below which heals fire
	HealVitaPercent float64
}

// DefaultThresholds returns the stock thresholds
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinVitaPercent:      DefaultMinVitaPercent,
		ManaTransferCeiling: DefaultManaTransferCeiling,
		InvokeManaPercent:   DefaultInvokeManaPercent,
		HealVitaPercent:     DefaultHealVitaPercent,
	}
}

// Validate validates the thresholds
func (t Thresholds) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidatePercent("MinVitaPercent", t.MinVitaPercent, vb)
	errors.ValidatePercent("ManaTransferCeiling", t.ManaTransferCeiling, vb)
	errors.ValidatePercent("InvokeManaPercent", t.InvokeManaPercent, vb)
	errors.ValidatePercent("HealVitaPercent", t.HealVitaPercent, vb)

	return vb.Build()
}

// Config holds the dependencies of a character's dispatcher
type Config struct {
	Character  string
	Ref        string
	Resolver   *resolver.Resolver
	Tracker    *status.Tracker
	Governor   *governor.Governor
	Roster     *targeting.HostileRoster
	Group      *targeting.Group
	Injector   injector.Injector
	Bus        events.EventBus
	IDs        idgen.Generator
	Clock      clock.Clock
	Roller     dice.Roller
	Thresholds *Thresholds
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("Character", c.Character, vb)
	errors.ValidateRequired("Ref", c.Ref, vb)
	if c.Resolver == nil {
		vb.RequiredField("Resolver")
	}
	if c.Tracker == nil {
		vb.RequiredField("Tracker")
	}
	if c.Governor == nil {
		vb.RequiredField("Governor")
	}
	if c.Roster == nil {
		vb.RequiredField("Roster")
	}
	if c.Group == nil {
		vb.RequiredField("Group")
	}
	if c.Injector == nil {
		vb.RequiredField("Injector")
	}
	if c.Bus == nil {
		vb.RequiredField("Bus")
	}
	if c.IDs == nil {
		vb.RequiredField("IDs")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

// Dispatcher issues commands for one character. It belongs to that
// character's flow; only the thresholds may be changed from elsewhere.
type Dispatcher struct {
	character string
	ref       string

	resolver   *resolver.Resolver
	tracker    *status.Tracker
	governor   *governor.Governor
	roster     *targeting.HostileRoster
	group      *targeting.Group
	injector   injector.Injector
	bus        events.EventBus
	ids        idgen.Generator
	clock      clock.Clock
	roller     dice.Roller
	thresholds atomic.Pointer[Thresholds]
}

// New creates a dispatcher
func New(cfg *Config) (*Dispatcher, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	d := &Dispatcher{
		character: cfg.Character,
		ref:       cfg.Ref,
		resolver:  cfg.Resolver,
		tracker:   cfg.Tracker,
		governor:  cfg.Governor,
		roster:    cfg.Roster,
		group:     cfg.Group,
		injector:  cfg.Injector,
		bus:       cfg.Bus,
		ids:       cfg.IDs,
		clock:     cfg.Clock,
		roller:    cfg.Roller,
	}
	if d.roller == nil {
		d.roller = dice.DefaultRoller
	}

	t := DefaultThresholds()
	if cfg.Thresholds != nil {
		t = *cfg.Thresholds
	}
	if err := d.SetThresholds(t); err != nil {
		return nil, err
	}

	return d, nil
}

// Thresholds returns the current thresholds
func (d *Dispatcher) Thresholds() Thresholds {
	return *d.thresholds.Load()
}

// SetThresholds retunes the resource gates
func (d *Dispatcher) SetThresholds(t Thresholds) error {
	if err := t.Validate(); err != nil {
		return errors.Wrap(err, "invalid thresholds")
	}
	d.thresholds.Store(&t)
	return nil
}

// Character returns the name of the character this dispatcher drives
func (d *Dispatcher) Character() string {
	return d.character
}

// Request describes one cast
type Request struct {
	// Ability is the logical ability name
	Ability string
	// Target is the hostile or ally the cast is aimed at; nil for untargeted
	Target core.Entity
	// Param overrides the secondary parameter, which defaults to the
	// target's id
	Param string
	// Wait suspends until the governor allows the command class instead of
	// failing when it is spaced out
	Wait bool
	// MinVitaPercent gates the cast on the caster's vita; zero disables it
	MinVitaPercent float64
	// SkipStatus ignores the ability's own status, for casts aimed at
	// someone other than the caster
	SkipStatus bool
}

// Cast runs the dispatch pipeline and reports whether a command was issued.
// Every reason not to cast is a false result; only injection, provider and
// cancellation failures are errors.
func (d *Dispatcher) Cast(ctx context.Context, req Request) (bool, error) {
	resolved, ok, err := d.resolver.Resolve(ctx, req.Ability)
	if err != nil {
		return false, err
	}
	if !ok {
		d.skip(req.Ability, "unresolved")
		return false, nil
	}

	ability, variant := resolved.Ability, resolved.Variant
	now := d.clock.Now()

	if !req.SkipStatus && d.tracker.IsActive(ability.Name) {
		d.skip(ability.Name, "status active")
		return false, nil
	}

	if h, isHostile := req.Target.(*entities.Hostile); isHostile {
		if !d.roster.Contains(h.ID) {
			d.skip(ability.Name, "target gone")
			return false, nil
		}
		if variant.Duration > 0 && h.Afflicted(ability.Name, now) {
			d.skip(ability.Name, "target afflicted")
			return false, nil
		}
	}

	if !d.governor.AbilityReady(variant.Name) {
		d.skip(ability.Name, "on cooldown")
		return false, nil
	}

	if !d.affordable(req, variant) {
		d.skip(ability.Name, "resource gate")
		return false, nil
	}

	melee := ability.Melee
	if req.Wait {
		if err := d.governor.AwaitReady(ctx, melee); err != nil {
			return false, err
		}
	} else if !d.governor.CanAct(melee) {
		d.skip(ability.Name, "spaced out")
		return false, nil
	}

	cmd := injector.Command{
		ID:       d.ids.Generate(),
		Ability:  variant.Name,
		Param:    req.Param,
		Melee:    melee,
		IssuedAt: d.clock.Now(),
	}
	if cmd.Param == "" && req.Target != nil {
		cmd.Param = req.Target.GetID()
	}

	if _, err := d.injector.Dispatch(ctx, d.ref, cmd); err != nil {
		return false, errors.Wrapf(err, "failed to dispatch %s for %s", variant.Name, d.character)
	}

	d.governor.RecordAction(melee)
	d.governor.RecordAbility(variant)

	if h, isHostile := req.Target.(*entities.Hostile); isHostile && variant.Duration > 0 {
		h.Afflict(ability.Name, cmd.IssuedAt, variant.Duration)
	}

	slog.Info("dispatched",
		"character", d.character,
		"ability", ability.Name,
		"variant", variant.Name,
		"param", cmd.Param,
		"command_id", cmd.ID)

	d.publish(ctx, ability.Name, variant.Name, cmd, req.Target)

	return true, nil
}

// affordable applies the vita gate and the variant's pool costs against
// the last refreshed snapshot
func (d *Dispatcher) affordable(req Request, variant catalog.Variant) bool {
	gated := req.MinVitaPercent > 0 || variant.Cost.Mana > 0 || variant.Cost.Vita > 0
	if !gated {
		return true
	}

	self := d.tracker.Self()
	if self == nil {
		return false
	}

	vita, mana := self.Pools.Vita(), self.Pools.Mana()
	if req.MinVitaPercent > 0 && vita.Percent() < req.MinVitaPercent {
		return false
	}
	if mana.Current < variant.Cost.Mana {
		return false
	}
	// Spending the whole vita pool would kill the caster
	if variant.Cost.Vita > 0 && vita.Current <= variant.Cost.Vita {
		return false
	}
	return true
}

func (d *Dispatcher) publish(ctx context.Context, ability, variant string, cmd injector.Command, target core.Entity) {
	e := events.NewGameEvent(entities.EventDispatched, d.source(), target)
	e.Context().Set(entities.EventKeyCharacter, d.character)
	e.Context().Set(entities.EventKeyAbility, ability)
	e.Context().Set(entities.EventKeyVariant, variant)
	e.Context().Set(entities.EventKeyParam, cmd.Param)
	e.Context().Set(entities.EventKeyCommandID, cmd.ID)

	if err := d.bus.Publish(ctx, e); err != nil {
		slog.Warn("failed to publish dispatch",
			"character", d.character,
			"ability", ability,
			"error", err)
	}
}

// source is the caster as an entity
func (d *Dispatcher) source() core.Entity {
	if self := d.group.Self(); self != nil {
		return self
	}
	if snap := d.tracker.Self(); snap != nil {
		return entities.MemberFromSnapshot(entities.MemberSelf, snap)
	}
	return &entities.Member{Kind: entities.MemberSelf, ID: d.ref, Name: d.character}
}

func (d *Dispatcher) skip(ability, reason string) {
	slog.Debug("cast skipped",
		"character", d.character,
		"ability", ability,
		"reason", reason)
}

// Op is one dispatcher operation in a fallback chain
type Op func(ctx context.Context) (bool, error)

// FirstSuccess runs ops in order and stops at the first that casts. An
// error stops the chain.
func FirstSuccess(ctx context.Context, ops ...Op) (bool, error) {
	for _, op := range ops {
		ok, err := op(ctx)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
