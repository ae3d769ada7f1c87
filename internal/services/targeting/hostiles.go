// Package targeting selects the next target for an operation from the
// hostile roster or from the ally group.
package targeting

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/KirkDiggler/rpg-rotation/internal/clients/gamestate"
	"github.com/KirkDiggler/rpg-rotation/internal/entities"
	"github.com/KirkDiggler/rpg-rotation/internal/errors"
	"github.com/KirkDiggler/rpg-rotation/internal/pkg/clock"
)

// DefaultHostileRefresh is how often the roster rescans when not forced
const DefaultHostileRefresh = 10 * time.Second

// RosterConfig configures a HostileRoster
type RosterConfig struct {
	Provider  gamestate.Provider
	Clock     clock.Clock
	Ref       string
	Character string
	Interval  time.Duration
}

// Validate validates the configuration
func (c *RosterConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Provider == nil {
		vb.RequiredField("Provider")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	errors.ValidateRequired("Ref", c.Ref, vb)
	if c.Interval < 0 {
		vb.InvalidField("Interval", "must not be negative")
	}

	return vb.Build()
}

// HostileRoster is the growing list of hostiles seen by one character.
// New observations are appended; entries leave only when the provider stops
// reporting them or when Invalidate is called.
type HostileRoster struct {
	provider  gamestate.Provider
	clock     clock.Clock
	ref       string
	character string
	interval  atomic.Int64

	hostiles    []*entities.Hostile
	lastRefresh time.Time
}

// NewHostileRoster creates an empty roster. A zero interval uses
// DefaultHostileRefresh.
func NewHostileRoster(cfg *RosterConfig) (*HostileRoster, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	r := &HostileRoster{
		provider:  cfg.Provider,
		clock:     cfg.Clock,
		ref:       cfg.Ref,
		character: cfg.Character,
	}
	r.SetInterval(cfg.Interval)

	return r, nil
}

// SetInterval retunes the refresh throttle. Safe from any goroutine.
func (r *HostileRoster) SetInterval(d time.Duration) {
	if d <= 0 {
		d = DefaultHostileRefresh
	}
	r.interval.Store(int64(d))
}

// Interval returns the refresh throttle
func (r *HostileRoster) Interval() time.Duration {
	return time.Duration(r.interval.Load())
}

// Refresh rescans hostiles unless the last scan is younger than the interval.
// force skips the throttle. It reports whether a scan happened.
func (r *HostileRoster) Refresh(ctx context.Context, force bool) (bool, error) {
	now := r.clock.Now()
	if !force && !r.lastRefresh.IsZero() && now.Sub(r.lastRefresh) < r.Interval() {
		return false, nil
	}

	observed, err := r.provider.ScanHostiles(ctx, r.ref)
	if err != nil {
		return false, errors.Wrapf(err, "failed to refresh hostiles for %s", r.character)
	}
	r.lastRefresh = now

	seen := make(map[string]entities.HostileSnapshot, len(observed))
	for _, o := range observed {
		seen[o.ID] = o
	}

	kept := r.hostiles[:0]
	for _, h := range r.hostiles {
		o, ok := seen[h.ID]
		if !ok {
			continue
		}
		h.Position = o.Position
		delete(seen, h.ID)
		kept = append(kept, h)
	}
	for i := len(kept); i < len(r.hostiles); i++ {
		r.hostiles[i] = nil
	}
	r.hostiles = kept

	added := 0
	for _, o := range observed {
		if _, fresh := seen[o.ID]; !fresh {
			continue
		}
		r.hostiles = append(r.hostiles, entities.NewHostile(o, now))
		delete(seen, o.ID)
		added++
	}

	if added > 0 {
		slog.Debug("hostiles observed",
			"character", r.character,
			"added", added,
			"roster_size", len(r.hostiles))
	}

	return true, nil
}

// Invalidate removes a hostile, reporting whether it was present
func (r *HostileRoster) Invalidate(id string) bool {
	for i, h := range r.hostiles {
		if h.ID == id {
			r.hostiles = append(r.hostiles[:i], r.hostiles[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether the hostile is still on the roster
func (r *HostileRoster) Contains(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// Get looks up a hostile by id
func (r *HostileRoster) Get(id string) (*entities.Hostile, bool) {
	for _, h := range r.hostiles {
		if h.ID == id {
			return h, true
		}
	}
	return nil, false
}

// Len returns the roster size
func (r *HostileRoster) Len() int {
	return len(r.hostiles)
}

// Hostiles returns the roster in observation order
func (r *HostileRoster) Hostiles() []*entities.Hostile {
	out := make([]*entities.Hostile, len(r.hostiles))
	copy(out, r.hostiles)
	return out
}

// ForEachReverse calls fn from the newest hostile to the oldest until fn
// succeeds. Iteration runs over the roster as it was when the call started,
// so removals made by fn never skip or repeat an entry. Entries removed
// before they are reached are skipped.
func (r *HostileRoster) ForEachReverse(
	ctx context.Context, fn func(ctx context.Context, h *entities.Hostile) (bool, error),
) (bool, error) {
	snapshot := r.Hostiles()

	for i := len(snapshot) - 1; i >= 0; i-- {
		h := snapshot[i]
		if !r.Contains(h.ID) {
			continue
		}

		ok, err := fn(ctx, h)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}

	return false, nil
}

// First acts on the newest hostile that passes eligible and reports whether
// any act succeeded. A nil eligible accepts every hostile.
func (r *HostileRoster) First(
	ctx context.Context,
	eligible func(h *entities.Hostile) bool,
	act func(ctx context.Context, h *entities.Hostile) (bool, error),
) (bool, error) {
	return r.ForEachReverse(ctx, func(ctx context.Context, h *entities.Hostile) (bool, error) {
		if eligible != nil && !eligible(h) {
			return false, nil
		}
		return act(ctx, h)
	})
}
