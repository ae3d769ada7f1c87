package entities

import "time"

// Position locates an entity on a map
type Position struct {
	Map int `json:"map"`
	X   int `json:"x"`
	Y   int `json:"y"`
}

// Snapshot is a single read of a controlled character. Statuses are keyed
// by the literal in-game ability name. Timers hold the remaining duration
// the client shows for a status, when it shows one.
type Snapshot struct {
	ID       string                   `json:"id"`
	Name     string                   `json:"name"`
	Path     string                   `json:"path"`
	Position Position                 `json:"position"`
	Pools    Pools                    `json:"pools"`
	Statuses map[string]bool          `json:"statuses,omitempty"`
	Timers   map[string]time.Duration `json:"timers,omitempty"`
	Debuffs  map[Debuff]bool          `json:"debuffs,omitempty"`
}

// BasePath returns the base path of the snapshot's path or subpath
func (s *Snapshot) BasePath() BasePath {
	return ParsePath(s.Path)
}

// Flag reports whether the named status flag is set
func (s *Snapshot) Flag(name string) bool {
	if s == nil {
		return false
	}
	return s.Statuses[name]
}

// Afflicted reports whether the debuff is set
func (s *Snapshot) Afflicted(d Debuff) bool {
	if s == nil {
		return false
	}
	return s.Debuffs[d]
}

// HostileSnapshot is one hostile observed on screen
type HostileSnapshot struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
}

// GroupMemberSnapshot is one group member as seen through group telemetry
type GroupMemberSnapshot struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slot  int    `json:"slot"`
	Path  string `json:"path,omitempty"`
	Pools Pools  `json:"pools"`
}
