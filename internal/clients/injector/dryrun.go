package injector

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-rotation/internal/errors"
	"github.com/KirkDiggler/rpg-rotation/internal/pkg/clock"
)

// DryRun logs commands instead of sending them and keeps them for inspection
type DryRun struct {
	clock clock.Clock

	mu   sync.Mutex
	sent map[string][]Command
}

// NewDryRun creates a dry-run injector
func NewDryRun(c clock.Clock) *DryRun {
	if c == nil {
		c = clock.New()
	}
	return &DryRun{
		clock: c,
		sent:  make(map[string][]Command),
	}
}

var _ Injector = (*DryRun)(nil)

// Dispatch records the command
func (d *DryRun) Dispatch(_ context.Context, ref string, cmd Command) (*Ack, error) {
	if cmd.Ability == "" {
		return nil, errors.InvalidArgument("ability is required")
	}

	d.mu.Lock()
	d.sent[ref] = append(d.sent[ref], cmd)
	pending := int64(len(d.sent[ref]))
	d.mu.Unlock()

	slog.Info("dry run dispatch",
		"ref", ref,
		"ability", cmd.Ability,
		"param", cmd.Param,
		"melee", cmd.Melee)

	return &Ack{CommandID: cmd.ID, Pending: pending, SentAt: d.clock.Now()}, nil
}

// Sent returns the commands recorded for ref
func (d *DryRun) Sent(ref string) []Command {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Command, len(d.sent[ref]))
	copy(out, d.sent[ref])
	return out
}
