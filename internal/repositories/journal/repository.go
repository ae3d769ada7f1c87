// Package journal keeps a transient log of what each rotation session
// dispatched. Nothing in it outlives the session TTL.
package journal

//go:generate mockgen -destination=mock/mock_repository.go -package=journalmock github.com/KirkDiggler/rpg-rotation/internal/repositories/journal Repository

import (
	"context"
	"time"
)

// Entry kinds
const (
	KindDispatched = "dispatched"
	KindActivated  = "activated"
)

// Repository defines the storage interface for the dispatch journal
type Repository interface {
	// Append records an entry for a session
	Append(ctx context.Context, input *AppendInput) (*AppendOutput, error)

	// List returns the newest entries of a session first
	List(ctx context.Context, input *ListInput) (*ListOutput, error)
}

// Entry is one journal line
type Entry struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Kind      string    `json:"kind"`
	Character string    `json:"character"`
	Ability   string    `json:"ability"`
	Variant   string    `json:"variant,omitempty"`
	Target    string    `json:"target,omitempty"`
	Param     string    `json:"param,omitempty"`
	VitaDelta int       `json:"vita_delta,omitempty"`
	ManaDelta int       `json:"mana_delta,omitempty"`
	At        time.Time `json:"at"`
}

// AppendInput defines the request for appending an entry
type AppendInput struct {
	SessionID string
	Entry     *Entry
}

// AppendOutput defines the response for appending an entry
type AppendOutput struct {
	Size int64
}

// ListInput defines the request for listing entries
type ListInput struct {
	SessionID string
	Limit     int
}

// ListOutput defines the response for listing entries
type ListOutput struct {
	Entries []*Entry
}
