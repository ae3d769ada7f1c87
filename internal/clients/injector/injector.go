// Package injector is the boundary to the input-injection channel. A
// dispatch only confirms the command left the process, never that the game
// acted on it.
package injector

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_injector.go -package=injectormock github.com/KirkDiggler/rpg-rotation/internal/clients/injector Injector

// Command is one ability request for a character
type Command struct {
	ID       string    `json:"id"`
	Ability  string    `json:"ability"`
	Param    string    `json:"param,omitempty"`
	Melee    bool      `json:"melee,omitempty"`
	IssuedAt time.Time `json:"issued_at"`
}

// Ack confirms a command was handed to the channel
type Ack struct {
	CommandID string
	Pending   int64
	SentAt    time.Time
}

// Injector sends commands to the game client of ref
type Injector interface {
	Dispatch(ctx context.Context, ref string, cmd Command) (*Ack, error)
}
