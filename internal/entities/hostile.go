package entities

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// EntityTypeHostile is the core.Entity type of roster hostiles
const EntityTypeHostile = "hostile"

// Hostile is a hostile roster entry. It keeps a ledger of the afflictions
// this character has applied so debuffs are not recast while they last.
type Hostile struct {
	ID        string
	Name      string
	Position  Position
	FirstSeen time.Time

	afflictions map[string]time.Time
}

// NewHostile creates a roster entry from an observation
func NewHostile(s HostileSnapshot, seen time.Time) *Hostile {
	return &Hostile{
		ID:          s.ID,
		Name:        s.Name,
		Position:    s.Position,
		FirstSeen:   seen,
		afflictions: make(map[string]time.Time),
	}
}

// GetID returns the hostile's unique id
func (h *Hostile) GetID() string {
	return h.ID
}

// GetType returns the entity type
func (h *Hostile) GetType() string {
	return EntityTypeHostile
}

// Afflict records that ability was applied at and lasts for duration
func (h *Hostile) Afflict(ability string, at time.Time, duration time.Duration) {
	if h.afflictions == nil {
		h.afflictions = make(map[string]time.Time)
	}
	h.afflictions[ability] = at.Add(duration)
}

// Afflicted reports whether ability is still in effect at now
func (h *Hostile) Afflicted(ability string, now time.Time) bool {
	until, ok := h.afflictions[ability]
	if !ok {
		return false
	}
	return now.Before(until)
}

// ClearAffliction forgets an applied ability
func (h *Hostile) ClearAffliction(ability string) {
	delete(h.afflictions, ability)
}

var _ core.Entity = (*Hostile)(nil)
