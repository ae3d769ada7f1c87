// Package governor enforces the minimum spacing between dispatched commands
// and the recast delay of each variant.
package governor

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/KirkDiggler/rpg-rotation/internal/catalog"
	"github.com/KirkDiggler/rpg-rotation/internal/errors"
	"github.com/KirkDiggler/rpg-rotation/internal/pkg/clock"
)

// Config configures a Governor
type Config struct {
	DefaultSpacing time.Duration
	MeleeSpacing   time.Duration
	Clock          clock.Clock
}

// Validate validates the configuration
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	validateSpacing(c.DefaultSpacing, c.MeleeSpacing, vb)

	return vb.Build()
}

func validateSpacing(def, melee time.Duration, vb *errors.ValidationBuilder) {
	if def <= 0 {
		vb.Fieldf("DefaultSpacing", "must be positive, got %s", def)
	}
	if melee < def {
		vb.Fieldf("MeleeSpacing", "must be at least DefaultSpacing (%s), got %s", def, melee)
	}
}

// Governor is the cooldown ledger of one character. Spacing may be changed
// from any goroutine; everything else belongs to the owning flow.
type Governor struct {
	clock clock.Clock

	defaultSpacing atomic.Int64
	meleeSpacing   atomic.Int64

	lastAction time.Time
	lastMelee  time.Time
	readyAt    map[string]time.Time
}

// New creates a governor
func New(cfg *Config) (*Governor, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	g := &Governor{
		clock:   cfg.Clock,
		readyAt: make(map[string]time.Time),
	}
	g.defaultSpacing.Store(int64(cfg.DefaultSpacing))
	g.meleeSpacing.Store(int64(cfg.MeleeSpacing))

	return g, nil
}

// Spacing returns the current default and melee spacing
func (g *Governor) Spacing() (time.Duration, time.Duration) {
	return time.Duration(g.defaultSpacing.Load()), time.Duration(g.meleeSpacing.Load())
}

// SetSpacing retunes the governor at runtime
func (g *Governor) SetSpacing(def, melee time.Duration) error {
	vb := errors.NewValidationBuilder()
	validateSpacing(def, melee, vb)
	if err := vb.Build(); err != nil {
		return errors.Wrap(err, "invalid spacing")
	}

	g.defaultSpacing.Store(int64(def))
	g.meleeSpacing.Store(int64(melee))
	return nil
}

// Wait returns how long until CanAct(melee) holds, zero when it already does
func (g *Governor) Wait(melee bool) time.Duration {
	def, meleeSpacing := g.Spacing()
	now := g.clock.Now()

	wait := remaining(g.lastAction, def, now)
	if melee {
		if m := remaining(g.lastMelee, meleeSpacing, now); m > wait {
			wait = m
		}
	}
	return wait
}

func remaining(last time.Time, spacing time.Duration, now time.Time) time.Duration {
	if last.IsZero() {
		return 0
	}
	// Ready only once the elapsed time exceeds the spacing
	if elapsed := now.Sub(last); elapsed <= spacing {
		return spacing - elapsed + time.Nanosecond
	}
	return 0
}

// CanAct reports whether a command of the class may be dispatched now
func (g *Governor) CanAct(melee bool) bool {
	return g.Wait(melee) == 0
}

// AwaitReady suspends until CanAct(melee) holds or ctx ends. The governor
// has a single owner, so readiness cannot be lost between the wait and
// the caller's dispatch.
func (g *Governor) AwaitReady(ctx context.Context, melee bool) error {
	for {
		wait := g.Wait(melee)
		if wait == 0 {
			return nil
		}
		if err := g.clock.Sleep(ctx, wait); err != nil {
			return errors.Canceledf("cooldown wait interrupted: %v", err)
		}
	}
}

// RecordAction stamps a dispatched command. Melee commands also stamp the
// melee ledger.
func (g *Governor) RecordAction(melee bool) {
	now := g.clock.Now()
	g.lastAction = now
	if melee {
		g.lastMelee = now
	}
}

// AbilityReady reports whether the variant's own cooldown has elapsed
func (g *Governor) AbilityReady(variant string) bool {
	return g.Remaining(variant) == 0
}

// Remaining returns the time left on the variant's cooldown
func (g *Governor) Remaining(variant string) time.Duration {
	at, ok := g.readyAt[variant]
	if !ok {
		return 0
	}
	if left := at.Sub(g.clock.Now()); left > 0 {
		return left
	}
	return 0
}

// RecordAbility starts the variant's cooldown
func (g *Governor) RecordAbility(v catalog.Variant) {
	if v.Cooldown <= 0 {
		return
	}
	g.readyAt[v.Name] = g.clock.Now().Add(v.Cooldown)
}
