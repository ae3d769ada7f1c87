package entities

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
)

// EntityTypeAlly is the core.Entity type of group members
const EntityTypeAlly = "ally"

// MemberKind says how tightly an ally is coupled to the caster
type MemberKind string

// Member kinds in selection priority order
const (
	MemberSelf     MemberKind = "self"
	MemberMultibox MemberKind = "multibox"
	MemberExternal MemberKind = "external"
)

// Member is an ally roster entry. Self and multibox members carry the full
// snapshot of their character. External members are only known through group
// telemetry, so their debuffs are tracked as pending cures instead.
type Member struct {
	Kind     MemberKind
	ID       string
	Name     string
	Slot     int
	Path     BasePath
	Pools    Pools
	Snapshot *Snapshot

	pending map[Debuff]bool
}

// MemberFromSnapshot builds a self or multibox member
func MemberFromSnapshot(kind MemberKind, s *Snapshot) *Member {
	return &Member{
		Kind:     kind,
		ID:       s.ID,
		Name:     s.Name,
		Path:     s.BasePath(),
		Pools:    s.Pools,
		Snapshot: s,
	}
}

// MemberFromGroup builds an external member from group telemetry
func MemberFromGroup(g GroupMemberSnapshot) *Member {
	return &Member{
		Kind:    MemberExternal,
		ID:      g.ID,
		Name:    g.Name,
		Slot:    g.Slot,
		Path:    ParsePath(g.Path),
		Pools:   g.Pools,
		pending: make(map[Debuff]bool),
	}
}

// GetID returns the member's unique id
func (m *Member) GetID() string {
	return m.ID
}

// GetType returns the entity type
func (m *Member) GetType() string {
	return EntityTypeAlly
}

// NeedsCure reports whether d should be cured on this member. Observed
// members answer from their snapshot, external members from pending flags.
func (m *Member) NeedsCure(d Debuff) bool {
	if m.Kind == MemberExternal {
		return m.pending[d]
	}
	return m.Snapshot.Afflicted(d)
}

// MarkCure flags d as pending on an external member
func (m *Member) MarkCure(d Debuff) {
	if m.pending == nil {
		m.pending = make(map[Debuff]bool)
	}
	m.pending[d] = true
}

// ClearCure clears a pending cure flag
func (m *Member) ClearCure(d Debuff) {
	delete(m.pending, d)
}

// PendingCures returns a copy of the pending cure flags
func (m *Member) PendingCures() map[Debuff]bool {
	out := make(map[Debuff]bool, len(m.pending))
	for d, v := range m.pending {
		out[d] = v
	}
	return out
}

// Update copies fresh telemetry into the member, keeping pending cures
func (m *Member) Update(g GroupMemberSnapshot) {
	m.Name = g.Name
	m.Slot = g.Slot
	m.Path = ParsePath(g.Path)
	m.Pools = g.Pools
}

var _ core.Entity = (*Member)(nil)
