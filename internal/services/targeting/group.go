package targeting

import (
	"context"
	"log/slog"
	"sort"

	"github.com/KirkDiggler/rpg-rotation/internal/clients/gamestate"
	"github.com/KirkDiggler/rpg-rotation/internal/entities"
	"github.com/KirkDiggler/rpg-rotation/internal/errors"
)

// GroupConfig configures a Group
type GroupConfig struct {
	Provider  gamestate.Provider
	Ref       string
	Character string
	// Multibox lists the refs of the other characters this operator drives
	Multibox []string
}

// Validate validates the configuration
func (c *GroupConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Provider == nil {
		vb.RequiredField("Provider")
	}
	errors.ValidateRequired("Ref", c.Ref, vb)
	for _, ref := range c.Multibox {
		if ref == c.Ref {
			vb.InvalidField("Multibox", "must not contain the character's own ref")
		}
	}

	return vb.Build()
}

// Group is the ally roster of one character in selection priority order:
// self, then multibox allies, then external allies by group slot
type Group struct {
	provider  gamestate.Provider
	ref       string
	character string
	refs      []string

	self     *entities.Member
	multibox []*entities.Member
	external []*entities.Member
}

// NewGroup creates an empty group
func NewGroup(cfg *GroupConfig) (*Group, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	refs := make([]string, len(cfg.Multibox))
	copy(refs, cfg.Multibox)

	return &Group{
		provider:  cfg.Provider,
		ref:       cfg.Ref,
		character: cfg.Character,
		refs:      refs,
	}, nil
}

// Refresh rebuilds the group from the caller's own snapshot, a fresh read of
// each multibox ally and the group telemetry. External allies keep their
// pending cure flags across refreshes. A multibox ally whose client is gone
// is left out; its own flow reports the failure.
func (g *Group) Refresh(ctx context.Context, self *entities.Snapshot) error {
	if self == nil {
		return errors.InvalidArgument("self snapshot is required")
	}
	g.self = entities.MemberFromSnapshot(entities.MemberSelf, self)

	controlled := map[string]bool{self.ID: true}
	multibox := make([]*entities.Member, 0, len(g.refs))
	for _, ref := range g.refs {
		snap, err := g.provider.ReadSnapshot(ctx, ref)
		if err != nil {
			if errors.IsUnavailable(err) {
				slog.Warn("multibox ally unavailable",
					"character", g.character,
					"ally_ref", ref,
					"error", err)
				continue
			}
			return errors.Wrapf(err, "failed to read multibox ally %s", ref)
		}
		controlled[snap.ID] = true
		multibox = append(multibox, entities.MemberFromSnapshot(entities.MemberMultibox, snap))
	}
	g.multibox = multibox

	telemetry, err := g.provider.ReadGroup(ctx, g.ref)
	if err != nil {
		return errors.Wrapf(err, "failed to read group for %s", g.character)
	}

	previous := make(map[string]*entities.Member, len(g.external))
	for _, m := range g.external {
		previous[m.ID] = m
	}

	external := make([]*entities.Member, 0, len(telemetry))
	for _, t := range telemetry {
		if controlled[t.ID] {
			continue
		}
		if m, ok := previous[t.ID]; ok {
			m.Update(t)
			external = append(external, m)
			continue
		}
		external = append(external, entities.MemberFromGroup(t))
	}
	sort.SliceStable(external, func(i, j int) bool {
		return external[i].Slot < external[j].Slot
	})
	g.external = external

	return nil
}

// Self returns the caster's own member entry
func (g *Group) Self() *entities.Member {
	return g.self
}

// Multibox returns the multibox allies
func (g *Group) Multibox() []*entities.Member {
	return g.multibox
}

// External returns the external allies by slot
func (g *Group) External() []*entities.Member {
	return g.external
}

// Selection says which tiers of the group an operation considers
type Selection struct {
	Self     bool
	Multibox bool
	External bool
	// Role limits multibox allies to one role; empty accepts any
	Role entities.Role
	// ExternalEligible filters external allies; nil accepts all
	ExternalEligible func(m *entities.Member) bool
	// Eligible filters every candidate; nil accepts all
	Eligible func(m *entities.Member) bool
}

// Everyone selects all tiers without filters
var Everyone = Selection{Self: true, Multibox: true, External: true}

// Candidates returns the selected members in priority order
func (g *Group) Candidates(sel Selection) []*entities.Member {
	out := make([]*entities.Member, 0, 1+len(g.multibox)+len(g.external))

	accept := func(m *entities.Member) bool {
		return sel.Eligible == nil || sel.Eligible(m)
	}

	if sel.Self && g.self != nil && accept(g.self) {
		out = append(out, g.self)
	}

	if sel.Multibox {
		for _, m := range g.multibox {
			if sel.Role != "" && m.Path.Role() != sel.Role {
				continue
			}
			if accept(m) {
				out = append(out, m)
			}
		}
	}

	if sel.External {
		for _, m := range g.external {
			if sel.ExternalEligible != nil && !sel.ExternalEligible(m) {
				continue
			}
			if accept(m) {
				out = append(out, m)
			}
		}
	}

	return out
}

// First acts on candidates in priority order until one act succeeds
func (g *Group) First(
	ctx context.Context, sel Selection,
	act func(ctx context.Context, m *entities.Member) (bool, error),
) (bool, error) {
	for _, m := range g.Candidates(sel) {
		ok, err := act(ctx, m)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// ManaTransferEligible applies the resource-profile heuristic for limited
// mana transfers: allies whose mana pool is more than half their vita pool,
// or more than half the caster's mana pool, are excluded.
func ManaTransferEligible(ally *entities.Member, casterManaMax int) bool {
	manaMax := ally.Pools.Mana().Max
	if manaMax*2 > ally.Pools.Vita().Max {
		return false
	}
	if manaMax*2 > casterManaMax {
		return false
	}
	return true
}

// MarkExternalCures flags every debuff as pending for every external ally.
// External allies' debuffs are not observable, so the cure operations decide
// opportunistically under their own cooldown gating.
func (g *Group) MarkExternalCures(debuffs []entities.Debuff) {
	for _, m := range g.external {
		for _, d := range debuffs {
			m.MarkCure(d)
		}
	}
}
