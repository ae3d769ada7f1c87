// Package resolver binds each logical ability to the one variant the
// character knows. The spell book is polled at most once per session.
package resolver

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-rotation/internal/catalog"
	"github.com/KirkDiggler/rpg-rotation/internal/errors"
)

//go:generate mockgen -destination=mock/mock_spellbook.go -package=resolvermock github.com/KirkDiggler/rpg-rotation/internal/services/resolver SpellBook

// SpellBook lists the literal ability names a character knows. Listing is an
// expensive poll of the game client.
type SpellBook interface {
	KnownAbilities(ctx context.Context) ([]string, error)
}

// Resolved is a logical ability bound to its known variant
type Resolved struct {
	Ability catalog.Ability
	Variant catalog.Variant
}

// Config configures a Resolver
type Config struct {
	Catalog   *catalog.Catalog
	SpellBook SpellBook
	Character string
}

// Validate validates the configuration
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.SpellBook == nil {
		vb.RequiredField("SpellBook")
	}

	return vb.Build()
}

type entry struct {
	resolved Resolved
	ok       bool
}

// Resolver caches resolutions for one character. It is owned by a single
// flow and is not safe for concurrent use.
type Resolver struct {
	catalog   *catalog.Catalog
	spellBook SpellBook
	character string

	known catalog.Known
	cache map[string]entry
}

// New creates a resolver
func New(cfg *Config) (*Resolver, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Resolver{
		catalog:   cfg.Catalog,
		spellBook: cfg.SpellBook,
		character: cfg.Character,
		cache:     make(map[string]entry),
	}, nil
}

// Resolve returns the bound variant of the logical ability. Absent results
// are cached too, so a missing ability costs one lookup per session. Names
// the catalog does not declare resolve as absent.
func (r *Resolver) Resolve(ctx context.Context, name string) (Resolved, bool, error) {
	if e, ok := r.cache[name]; ok {
		return e.resolved, e.ok, nil
	}

	ability, declared := r.catalog.Get(name)
	if !declared {
		slog.Debug("ability not in catalog",
			"character", r.character,
			"ability", name)
		r.cache[name] = entry{}
		return Resolved{}, false, nil
	}

	known, err := r.Known(ctx)
	if err != nil {
		return Resolved{}, false, err
	}

	variant, ok := catalog.Resolve(ability, known)
	e := entry{ok: ok}
	if ok {
		e.resolved = Resolved{Ability: ability, Variant: variant}
		slog.Debug("ability resolved",
			"character", r.character,
			"ability", name,
			"variant", variant.Name)
	} else {
		slog.Debug("ability unresolved",
			"character", r.character,
			"ability", name)
	}
	r.cache[name] = e

	return e.resolved, e.ok, nil
}

// Has reports whether the logical ability resolves
func (r *Resolver) Has(ctx context.Context, name string) (bool, error) {
	_, ok, err := r.Resolve(ctx, name)
	return ok, err
}

// Known returns the known-name set, polling the spell book on first use
func (r *Resolver) Known(ctx context.Context) (catalog.Known, error) {
	if r.known != nil {
		return r.known, nil
	}

	names, err := r.spellBook.KnownAbilities(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list known abilities for %s", r.character)
	}

	r.known = catalog.NewKnown(names...)
	return r.known, nil
}

// Catalog returns the catalog the resolver binds against
func (r *Resolver) Catalog() *catalog.Catalog {
	return r.catalog
}

// Reset drops every cached resolution and the known-name set. Only a
// session restart should call it.
func (r *Resolver) Reset() {
	r.known = nil
	r.cache = make(map[string]entry)
}
