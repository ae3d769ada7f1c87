// Package status tracks which buffs and aethers are in effect for one
// character. Decisions read the state captured by the last Refresh, never the
// live client.
package status

import (
	"time"

	"github.com/KirkDiggler/rpg-rotation/internal/catalog"
)

// Kind distinguishes plain buffs from statuses whose activation moves resources
type Kind string

// Status kinds
const (
	KindBuff      Kind = "buff"
	KindConsuming Kind = "consuming"
)

// Activation records one rising edge of a consuming status with the pool
// changes observed between the two snapshots around it
type Activation struct {
	Status    string
	Variant   string
	At        time.Time
	VitaDelta int
	ManaDelta int
}

// Status is the tracked state of one logical ability. Flags are the literal
// variant names; the ability is active when any of them is set.
type Status struct {
	Name  string
	Kind  Kind
	Flags []string

	Active      bool
	Previous    bool
	Variant     string
	ActivatedAt time.Time
	RefreshedAt time.Time
	ExpiresAt   time.Time

	observed bool
	last     *Activation
	hooks    []func(Activation)
}

// Rising reports whether the last refresh saw the inactive-to-active edge.
// Previous is the value observed by the refresh before, so a local Clear does
// not fake a second activation.
func (s *Status) Rising() bool {
	return s.Active && !s.Previous
}

// Expired reports whether the status carried a timer that has run out
func (s *Status) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// LastActivation returns the last recorded activation of a consuming status
func (s *Status) LastActivation() (Activation, bool) {
	if s.last == nil {
		return Activation{}, false
	}
	return *s.last, true
}

func newStatus(a catalog.Ability) *Status {
	kind := KindBuff
	if a.Kind == catalog.KindAethered {
		kind = KindConsuming
	}
	return &Status{
		Name:  a.Name,
		Kind:  kind,
		Flags: a.VariantNames(),
	}
}
