package rotation

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rpg-rotation/internal/catalog"
	"github.com/KirkDiggler/rpg-rotation/internal/clients/gamestate"
	"github.com/KirkDiggler/rpg-rotation/internal/clients/injector"
	"github.com/KirkDiggler/rpg-rotation/internal/entities"
	"github.com/KirkDiggler/rpg-rotation/internal/errors"
	"github.com/KirkDiggler/rpg-rotation/internal/orchestrators/dispatch"
	"github.com/KirkDiggler/rpg-rotation/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-rotation/internal/pkg/idgen"
)

// Character describes one character of a session
type Character struct {
	Name string
	Ref  string
	// Archetype is a base path or subpath name. Empty reads it from the
	// character's snapshot and falls back to inference from its spell book.
	Archetype string
	// Plan lists step names. Empty uses the archetype's default plan.
	Plan []string
}

// SessionConfig holds the dependencies of a session
type SessionConfig struct {
	ID         string
	Characters []Character

	Provider gamestate.Provider
	Injector injector.Injector
	Bus      events.EventBus
	Clock    clock.Clock
	IDs      idgen.Generator
	Roller   dice.Roller

	Timing     Timing
	Thresholds dispatch.Thresholds
	Overrides  *catalog.Overrides

	// OnFlowStopped is told when a character's flow ends; err is nil on
	// shutdown
	OnFlowStopped func(character string, err error)
}

// Validate ensures all required dependencies are provided
func (c *SessionConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("ID", c.ID, vb)
	if len(c.Characters) == 0 {
		vb.RequiredField("Characters")
	}
	names := make(map[string]bool, len(c.Characters))
	refs := make(map[string]bool, len(c.Characters))
	for _, ch := range c.Characters {
		if ch.Name == "" || ch.Ref == "" {
			vb.Field("Characters", "every character needs a name and a ref")
			continue
		}
		if names[ch.Name] {
			vb.Fieldf("Characters", "duplicate character %q", ch.Name)
		}
		if refs[ch.Ref] {
			vb.Fieldf("Characters", "duplicate ref %q", ch.Ref)
		}
		names[ch.Name], refs[ch.Ref] = true, true
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

// Session runs one flow per character of an operator. The characters are
// each other's multibox allies.
type Session struct {
	id            string
	flows         []*Flow
	paused        atomic.Bool
	onFlowStopped func(string, error)
}

// NewSession resolves each character's archetype and builds its flow
func NewSession(ctx context.Context, cfg *SessionConfig) (*Session, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	s := &Session{
		id:            cfg.ID,
		onFlowStopped: cfg.OnFlowStopped,
	}

	for _, ch := range cfg.Characters {
		path, err := resolvePath(ctx, cfg.Provider, ch)
		if err != nil {
			return nil, err
		}

		c, err := catalog.ForPath(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to build catalog for %s", ch.Name)
		}
		if c, err = c.Apply(cfg.Overrides); err != nil {
			return nil, errors.Wrapf(err, "failed to apply catalog overrides for %s", ch.Name)
		}

		plan := ch.Plan
		if len(plan) == 0 {
			plan = DefaultPlan(path)
		}

		flow, err := NewFlow(&FlowConfig{
			Character:  ch.Name,
			Ref:        ch.Ref,
			Path:       path,
			Catalog:    c,
			Plan:       plan,
			Multibox:   multiboxRefs(cfg.Characters, ch.Ref),
			Provider:   cfg.Provider,
			Injector:   cfg.Injector,
			Bus:        cfg.Bus,
			Clock:      cfg.Clock,
			IDs:        cfg.IDs,
			Roller:     cfg.Roller,
			Timing:     cfg.Timing,
			Thresholds: cfg.Thresholds,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to build flow for %s", ch.Name)
		}

		slog.Info("flow ready",
			"session_id", cfg.ID,
			"character", ch.Name,
			"path", path,
			"plan", plan)

		s.flows = append(s.flows, flow)
	}

	return s, nil
}

func resolvePath(ctx context.Context, provider gamestate.Provider, ch Character) (entities.BasePath, error) {
	if path := entities.ParsePath(ch.Archetype); path != entities.PathNone {
		return path, nil
	}
	if ch.Archetype != "" {
		return entities.PathNone, errors.InvalidArgumentf("unknown archetype %q for %s", ch.Archetype, ch.Name)
	}

	snap, err := provider.ReadSnapshot(ctx, ch.Ref)
	if err != nil {
		return entities.PathNone, errors.Wrapf(err, "failed to read %s", ch.Name)
	}
	if path := snap.BasePath(); path != entities.PathNone {
		return path, nil
	}

	names, err := provider.KnownAbilities(ctx, ch.Ref)
	if err != nil {
		return entities.PathNone, errors.Wrapf(err, "failed to list abilities of %s", ch.Name)
	}
	if path := catalog.InferPath(catalog.NewKnown(names...)); path != entities.PathNone {
		slog.Info("inferred path",
			"character", ch.Name,
			"subpath", snap.Path,
			"path", path)
		return path, nil
	}

	return entities.PathPeasant, nil
}

func multiboxRefs(characters []Character, self string) []string {
	refs := make([]string, 0, len(characters)-1)
	for _, ch := range characters {
		if ch.Ref != self {
			refs = append(refs, ch.Ref)
		}
	}
	return refs
}

// ID returns the session id
func (s *Session) ID() string {
	return s.id
}

// Flows returns the session's flows in character order
func (s *Session) Flows() []*Flow {
	out := make([]*Flow, len(s.flows))
	copy(out, s.flows)
	return out
}

// Run runs every flow concurrently until ctx ends. The first flow error
// stops the whole session and is returned.
func (s *Session) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, f := range s.flows {
		g.Go(func() error {
			err := f.Run(gctx)
			if s.onFlowStopped != nil {
				s.onFlowStopped(f.Character(), err)
			}
			return err
		})
	}

	return g.Wait()
}

// Retune applies new timing and thresholds to every flow
func (s *Session) Retune(timing Timing, thresholds dispatch.Thresholds) error {
	for _, f := range s.flows {
		if err := f.Retune(timing, thresholds); err != nil {
			return errors.Wrapf(err, "failed to retune %s", f.Character())
		}
	}
	slog.Info("session retuned",
		"session_id", s.id,
		"default_spacing", timing.DefaultSpacing,
		"melee_spacing", timing.MeleeSpacing,
		"hostile_refresh", timing.HostileRefresh)
	return nil
}

// TogglePause flips every flow between paused and running and returns the
// new state
func (s *Session) TogglePause() bool {
	paused := !s.paused.Load()
	s.SetPaused(paused)
	return paused
}

// SetPaused pauses or resumes every flow
func (s *Session) SetPaused(paused bool) {
	s.paused.Store(paused)
	for _, f := range s.flows {
		f.SetPaused(paused)
	}
	slog.Info("session pause toggled",
		"session_id", s.id,
		"paused", paused)
}
