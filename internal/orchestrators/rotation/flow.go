// Package rotation runs the per-character loops that refresh state and walk
// a plan of dispatcher operations every tick
package rotation

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-rotation/internal/catalog"
	"github.com/KirkDiggler/rpg-rotation/internal/clients/gamestate"
	"github.com/KirkDiggler/rpg-rotation/internal/clients/injector"
	"github.com/KirkDiggler/rpg-rotation/internal/entities"
	"github.com/KirkDiggler/rpg-rotation/internal/errors"
	"github.com/KirkDiggler/rpg-rotation/internal/orchestrators/dispatch"
	"github.com/KirkDiggler/rpg-rotation/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-rotation/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-rotation/internal/services/governor"
	"github.com/KirkDiggler/rpg-rotation/internal/services/resolver"
	"github.com/KirkDiggler/rpg-rotation/internal/services/status"
	"github.com/KirkDiggler/rpg-rotation/internal/services/targeting"
)

// Default timing
const (
	DefaultSpacing      = 150 * time.Millisecond
	DefaultMeleeSpacing = 500 * time.Millisecond
	DefaultTickInterval = 100 * time.Millisecond
)

// Timing is the runtime-tunable pacing of a flow
type Timing struct {
	DefaultSpacing time.Duration
	MeleeSpacing   time.Duration
	HostileRefresh time.Duration
	TickInterval   time.Duration
}

// DefaultTiming returns the stock pacing
func DefaultTiming() Timing {
	return Timing{
		DefaultSpacing: DefaultSpacing,
		MeleeSpacing:   DefaultMeleeSpacing,
		HostileRefresh: targeting.DefaultHostileRefresh,
		TickInterval:   DefaultTickInterval,
	}
}

// Validate validates the timing
func (t Timing) Validate() error {
	vb := errors.NewValidationBuilder()

	if t.DefaultSpacing <= 0 {
		vb.Fieldf("DefaultSpacing", "must be positive, got %s", t.DefaultSpacing)
	}
	if t.MeleeSpacing < t.DefaultSpacing {
		vb.Fieldf("MeleeSpacing", "must be at least DefaultSpacing (%s), got %s", t.DefaultSpacing, t.MeleeSpacing)
	}
	if t.HostileRefresh <= 0 {
		vb.Fieldf("HostileRefresh", "must be positive, got %s", t.HostileRefresh)
	}
	if t.TickInterval <= 0 {
		vb.Fieldf("TickInterval", "must be positive, got %s", t.TickInterval)
	}

	return vb.Build()
}

// FlowConfig holds what a flow needs to drive one character
type FlowConfig struct {
	Character string
	Ref       string
	Path      entities.BasePath
	Catalog   *catalog.Catalog
	Plan      []string
	// Multibox are the refs of the allies this operator also controls
	Multibox []string

	Provider gamestate.Provider
	Injector injector.Injector
	Bus      events.EventBus
	Clock    clock.Clock
	IDs      idgen.Generator
	Roller   dice.Roller

	Timing     Timing
	Thresholds dispatch.Thresholds
}

// Validate ensures all required dependencies are provided
func (c *FlowConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("Character", c.Character, vb)
	errors.ValidateRequired("Ref", c.Ref, vb)
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Provider == nil {
		vb.RequiredField("Provider")
	}
	if c.Injector == nil {
		vb.RequiredField("Injector")
	}
	if c.Bus == nil {
		vb.RequiredField("Bus")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDs == nil {
		vb.RequiredField("IDs")
	}

	return vb.Build()
}

// Flow is the cooperative loop of one character. Within a flow everything
// runs sequentially, so commands leave in exactly the order the plan asks
// for them.
type Flow struct {
	character string
	ref       string
	path      entities.BasePath
	bus       events.EventBus
	clock     clock.Clock

	tracker    *status.Tracker
	governor   *governor.Governor
	roster     *targeting.HostileRoster
	group      *targeting.Group
	dispatcher *dispatch.Dispatcher
	plan       []plannedStep

	tickInterval atomic.Int64
	paused       atomic.Bool
	ticks        atomic.Int64

	activations []status.Activation
}

// NewFlow wires a flow and its per-character services
func NewFlow(cfg *FlowConfig) (*Flow, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	timing := cfg.Timing
	if timing == (Timing{}) {
		timing = DefaultTiming()
	}
	if err := timing.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid timing")
	}

	plan, err := buildPlan(cfg.Plan)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid plan for %s", cfg.Character)
	}

	res, err := resolver.New(&resolver.Config{
		Catalog:   cfg.Catalog,
		SpellBook: &gamestate.SpellBook{Provider: cfg.Provider, Ref: cfg.Ref},
		Character: cfg.Character,
	})
	if err != nil {
		return nil, err
	}

	tracker, err := status.New(&status.Config{
		Provider:  cfg.Provider,
		Clock:     cfg.Clock,
		Ref:       cfg.Ref,
		Character: cfg.Character,
	})
	if err != nil {
		return nil, err
	}
	tracker.TrackCatalog(cfg.Catalog)

	gov, err := governor.New(&governor.Config{
		DefaultSpacing: timing.DefaultSpacing,
		MeleeSpacing:   timing.MeleeSpacing,
		Clock:          cfg.Clock,
	})
	if err != nil {
		return nil, err
	}

	roster, err := targeting.NewHostileRoster(&targeting.RosterConfig{
		Provider:  cfg.Provider,
		Clock:     cfg.Clock,
		Ref:       cfg.Ref,
		Character: cfg.Character,
		Interval:  timing.HostileRefresh,
	})
	if err != nil {
		return nil, err
	}

	group, err := targeting.NewGroup(&targeting.GroupConfig{
		Provider:  cfg.Provider,
		Ref:       cfg.Ref,
		Character: cfg.Character,
		Multibox:  cfg.Multibox,
	})
	if err != nil {
		return nil, err
	}

	thresholds := cfg.Thresholds
	if thresholds == (dispatch.Thresholds{}) {
		thresholds = dispatch.DefaultThresholds()
	}

	d, err := dispatch.New(&dispatch.Config{
		Character:  cfg.Character,
		Ref:        cfg.Ref,
		Resolver:   res,
		Tracker:    tracker,
		Governor:   gov,
		Roster:     roster,
		Group:      group,
		Injector:   cfg.Injector,
		Bus:        cfg.Bus,
		IDs:        cfg.IDs,
		Clock:      cfg.Clock,
		Roller:     cfg.Roller,
		Thresholds: &thresholds,
	})
	if err != nil {
		return nil, err
	}

	f := &Flow{
		character:  cfg.Character,
		ref:        cfg.Ref,
		path:       cfg.Path,
		bus:        cfg.Bus,
		clock:      cfg.Clock,
		tracker:    tracker,
		governor:   gov,
		roster:     roster,
		group:      group,
		dispatcher: d,
		plan:       plan,
	}
	f.tickInterval.Store(int64(timing.TickInterval))

	for _, name := range tracker.Names() {
		if st, ok := tracker.Get(name); ok && st.Kind == status.KindConsuming {
			tracker.OnActivate(name, func(a status.Activation) {
				f.activations = append(f.activations, a)
			})
		}
	}

	return f, nil
}

// Character returns the name of the driven character
func (f *Flow) Character() string {
	return f.character
}

// Path returns the base path the flow was built for
func (f *Flow) Path() entities.BasePath {
	return f.path
}

// Plan returns the step names in plan order
func (f *Flow) Plan() []string {
	names := make([]string, len(f.plan))
	for i, step := range f.plan {
		names[i] = step.name
	}
	return names
}

// Dispatcher returns the flow's dispatcher
func (f *Flow) Dispatcher() *dispatch.Dispatcher {
	return f.dispatcher
}

// Ticks returns how many ticks have completed
func (f *Flow) Ticks() int64 {
	return f.ticks.Load()
}

// SetPaused pauses or resumes the flow. A paused flow keeps its loop but
// neither polls nor dispatches.
func (f *Flow) SetPaused(paused bool) {
	f.paused.Store(paused)
}

// Paused reports whether the flow is paused
func (f *Flow) Paused() bool {
	return f.paused.Load()
}

// Retune applies new timing and thresholds. Safe from any goroutine.
func (f *Flow) Retune(timing Timing, thresholds dispatch.Thresholds) error {
	if err := timing.Validate(); err != nil {
		return errors.Wrap(err, "invalid timing")
	}
	if err := f.governor.SetSpacing(timing.DefaultSpacing, timing.MeleeSpacing); err != nil {
		return err
	}
	if err := f.dispatcher.SetThresholds(thresholds); err != nil {
		return err
	}
	f.roster.SetInterval(timing.HostileRefresh)
	f.tickInterval.Store(int64(timing.TickInterval))
	return nil
}

// Tick refreshes the character's state against one snapshot and walks the
// plan once. Any error is unrecoverable for the flow.
func (f *Flow) Tick(ctx context.Context) error {
	if f.paused.Load() {
		return nil
	}

	if err := f.tracker.Refresh(ctx); err != nil {
		return err
	}
	f.publishActivations(ctx)

	if err := f.group.Refresh(ctx, f.tracker.Self()); err != nil {
		return err
	}
	if _, err := f.roster.Refresh(ctx, false); err != nil {
		return err
	}

	for _, step := range f.plan {
		if _, err := step.run(ctx, f.dispatcher); err != nil {
			return errors.Wrapf(err, "step %s failed for %s", step.name, f.character)
		}
	}

	f.ticks.Add(1)
	return nil
}

func (f *Flow) publishActivations(ctx context.Context) {
	pending := f.activations
	f.activations = nil

	for _, a := range pending {
		self := f.group.Self()
		var source *entities.Member
		if self != nil {
			source = self
		} else {
			source = entities.MemberFromSnapshot(entities.MemberSelf, f.tracker.Self())
		}

		e := events.NewGameEvent(entities.EventStatusActivated, source, source)
		e.Context().Set(entities.EventKeyCharacter, f.character)
		e.Context().Set(entities.EventKeyAbility, a.Status)
		e.Context().Set(entities.EventKeyVariant, a.Variant)
		e.Context().Set(entities.EventKeyVitaDelta, a.VitaDelta)
		e.Context().Set(entities.EventKeyManaDelta, a.ManaDelta)

		if err := f.bus.Publish(ctx, e); err != nil {
			slog.Warn("failed to publish activation",
				"character", f.character,
				"status", a.Status,
				"error", err)
		}
	}
}

// Run ticks until ctx ends or a tick fails with a terminal error. Shutdown
// is not an error; a non-terminal failure only skips the tick.
func (f *Flow) Run(ctx context.Context) error {
	slog.Info("flow started",
		"character", f.character,
		"ref", f.ref,
		"steps", len(f.plan))

	for {
		if err := f.Tick(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if !errors.IsTerminal(err) {
				slog.Warn("tick skipped",
					"character", f.character,
					"error", err)
			} else {
				slog.Error("flow stopped",
					"character", f.character,
					"error", err)
				return err
			}
		}

		if err := f.clock.Sleep(ctx, time.Duration(f.tickInterval.Load())); err != nil {
			slog.Info("flow finished",
				"character", f.character,
				"ticks", f.ticks.Load())
			return nil
		}
	}
}
