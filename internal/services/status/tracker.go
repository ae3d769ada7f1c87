package status

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-rotation/internal/catalog"
	"github.com/KirkDiggler/rpg-rotation/internal/clients/gamestate"
	"github.com/KirkDiggler/rpg-rotation/internal/entities"
	"github.com/KirkDiggler/rpg-rotation/internal/errors"
	"github.com/KirkDiggler/rpg-rotation/internal/pkg/clock"
)

// Config configures a Tracker
type Config struct {
	Provider  gamestate.Provider
	Clock     clock.Clock
	Ref       string
	Character string
}

// Validate validates the configuration
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Provider == nil {
		vb.RequiredField("Provider")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	errors.ValidateRequired("Ref", c.Ref, vb)

	return vb.Build()
}

// Tracker owns the statuses of one character. It is owned by a single flow
// and is not safe for concurrent use.
type Tracker struct {
	provider  gamestate.Provider
	clock     clock.Clock
	ref       string
	character string

	order    []string
	statuses map[string]*Status

	self *entities.Snapshot
	prev *entities.Snapshot
}

// New creates a tracker with no tracked statuses
func New(cfg *Config) (*Tracker, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Tracker{
		provider:  cfg.Provider,
		clock:     cfg.Clock,
		ref:       cfg.Ref,
		character: cfg.Character,
		statuses:  make(map[string]*Status),
	}, nil
}

// Track starts tracking the ability. Aethered abilities become consuming
// statuses; everything else is a plain buff status. Tracking twice is a no-op.
func (t *Tracker) Track(a catalog.Ability) {
	if _, ok := t.statuses[a.Name]; ok {
		return
	}
	t.order = append(t.order, a.Name)
	t.statuses[a.Name] = newStatus(a)
}

// TrackCatalog tracks every buff and aethered ability of the catalog
func (t *Tracker) TrackCatalog(c *catalog.Catalog) {
	for _, a := range c.Abilities() {
		switch a.Kind {
		case catalog.KindBuff, catalog.KindAethered:
			t.Track(a)
		}
	}
}

// OnActivate registers fn to run once per activation of the named
// consuming status
func (t *Tracker) OnActivate(name string, fn func(Activation)) {
	if st, ok := t.statuses[name]; ok {
		st.hooks = append(st.hooks, fn)
	}
}

// Refresh reads one snapshot and updates every tracked status from it
func (t *Tracker) Refresh(ctx context.Context) error {
	snap, err := t.provider.ReadSnapshot(ctx, t.ref)
	if err != nil {
		return errors.Wrapf(err, "failed to refresh status for %s", t.character)
	}

	now := t.clock.Now()
	t.prev, t.self = t.self, snap

	for _, name := range t.order {
		t.update(t.statuses[name], snap, now)
	}

	return nil
}

func (t *Tracker) update(st *Status, snap *entities.Snapshot, now time.Time) {
	active := false
	variant := ""
	var timer time.Duration
	for _, flag := range st.Flags {
		if snap.Flag(flag) {
			active = true
			variant = flag
			timer = snap.Timers[flag]
			break
		}
	}

	st.Previous = st.observed
	st.observed = active
	st.Active = active
	if !active {
		st.Variant = ""
		st.ExpiresAt = time.Time{}
		return
	}

	st.Variant = variant
	st.RefreshedAt = now
	if timer > 0 {
		st.ExpiresAt = now.Add(timer)
	} else {
		st.ExpiresAt = time.Time{}
	}

	if !st.Rising() {
		return
	}

	st.ActivatedAt = now
	if st.Kind != KindConsuming {
		return
	}

	act := Activation{Status: st.Name, Variant: variant, At: now}
	if t.prev != nil {
		act.VitaDelta = snap.Pools.Vita().Current - t.prev.Pools.Vita().Current
		act.ManaDelta = snap.Pools.Mana().Current - t.prev.Pools.Mana().Current
	}
	st.last = &act

	slog.Debug("status activated",
		"character", t.character,
		"status", st.Name,
		"variant", variant,
		"vita_delta", act.VitaDelta,
		"mana_delta", act.ManaDelta)

	for _, fn := range st.hooks {
		fn(act)
	}
}

// IsActive reports whether the named status is in effect. Untracked names
// fall back to the raw flag of the last snapshot.
func (t *Tracker) IsActive(name string) bool {
	st, ok := t.statuses[name]
	if !ok {
		return t.self.Flag(name)
	}
	return st.Active && !st.Expired(t.clock.Now())
}

// Rising reports whether the named status just activated
func (t *Tracker) Rising(name string) bool {
	st, ok := t.statuses[name]
	return ok && st.Rising()
}

// Get returns the tracked status
func (t *Tracker) Get(name string) (*Status, bool) {
	st, ok := t.statuses[name]
	return st, ok
}

// Clear marks a status inactive until the next refresh reports it again
func (t *Tracker) Clear(name string) {
	if st, ok := t.statuses[name]; ok {
		st.Active = false
		st.ExpiresAt = time.Time{}
	}
}

// Self returns the last refreshed snapshot, nil before the first refresh
func (t *Tracker) Self() *entities.Snapshot {
	return t.self
}

// Names returns the tracked status names in tracking order
func (t *Tracker) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}
