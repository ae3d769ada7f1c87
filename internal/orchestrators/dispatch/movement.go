package dispatch

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-rotation/internal/catalog"
	"github.com/KirkDiggler/rpg-rotation/internal/clients/injector"
	"github.com/KirkDiggler/rpg-rotation/internal/errors"
)

// Gate is a Gateway destination
type Gate string

// Gateway destinations
const (
	GateNorth Gate = "North"
	GateEast  Gate = "East"
	GateSouth Gate = "South"
	GateWest  Gate = "West"
)

// Gates lists every destination
var Gates = []Gate{GateNorth, GateEast, GateSouth, GateWest}

// Direction is a single step
type Direction string

// Step directions in dice order
const (
	DirectionUp    Direction = "up"
	DirectionRight Direction = "right"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
)

var directions = []Direction{DirectionUp, DirectionRight, DirectionDown, DirectionLeft}

// MoveCommand is the injected command for a step. It is not an ability, so
// it only passes through the general spacing.
const MoveCommand = "move"

// Gateway teleports the character to a gate
func (d *Dispatcher) Gateway(ctx context.Context, gate Gate) (bool, error) {
	valid := false
	for _, g := range Gates {
		if g == gate {
			valid = true
			break
		}
	}
	if !valid {
		return false, errors.InvalidArgumentf("unknown gate %q", gate)
	}

	return d.Cast(ctx, Request{Ability: catalog.Gateway, Param: string(gate), Wait: true})
}

// Step moves the character one tile
func (d *Dispatcher) Step(ctx context.Context, dir Direction) (bool, error) {
	if err := d.governor.AwaitReady(ctx, false); err != nil {
		return false, err
	}

	cmd := injector.Command{
		ID:       d.ids.Generate(),
		Ability:  MoveCommand,
		Param:    string(dir),
		IssuedAt: d.clock.Now(),
	}
	if _, err := d.injector.Dispatch(ctx, d.ref, cmd); err != nil {
		return false, errors.Wrapf(err, "failed to step %s for %s", dir, d.character)
	}
	d.governor.RecordAction(false)

	slog.Debug("stepped",
		"character", d.character,
		"direction", dir,
		"command_id", cmd.ID)

	d.publish(ctx, MoveCommand, MoveCommand, cmd, nil)
	return true, nil
}

// Wander takes one step in a random direction
func (d *Dispatcher) Wander(ctx context.Context) (bool, error) {
	roll, err := d.roller.Roll(len(directions))
	if err != nil {
		return false, errors.Wrap(err, "failed to roll direction")
	}
	if roll < 1 || roll > len(directions) {
		return false, errors.Newf(errors.CodeInternal, "direction roll %d out of range", roll)
	}
	return d.Step(ctx, directions[roll-1])
}
