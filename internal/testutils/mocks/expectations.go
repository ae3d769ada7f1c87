// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	gamestatemock "github.com/KirkDiggler/rpg-rotation/internal/clients/gamestate/mock"
	"github.com/KirkDiggler/rpg-rotation/internal/clients/injector"
	injectormock "github.com/KirkDiggler/rpg-rotation/internal/clients/injector/mock"
	"github.com/KirkDiggler/rpg-rotation/internal/entities"
	"github.com/KirkDiggler/rpg-rotation/internal/errors"
)

// ExpectTick sets up the reads one flow tick makes for ref: the self
// snapshot for the tracker, then the group telemetry. Multibox snapshots and
// hostile scans are expected separately because they are conditional.
func ExpectTick(
	ctx context.Context, provider *gamestatemock.MockProvider, ref string,
	self *entities.Snapshot, group []entities.GroupMemberSnapshot,
) {
	gomock.InOrder(
		provider.EXPECT().ReadSnapshot(ctx, ref).Return(self, nil),
		provider.EXPECT().ReadGroup(ctx, ref).Return(group, nil),
	)
}

// ExpectSpellBook expects the single spell book poll a resolver makes
func ExpectSpellBook(ctx context.Context, provider *gamestatemock.MockProvider, ref string, known []string) {
	provider.EXPECT().KnownAbilities(ctx, ref).Return(known, nil).Times(1)
}

// ExpectHostileScan expects one hostile scan
func ExpectHostileScan(
	ctx context.Context, provider *gamestatemock.MockProvider, ref string, hostiles []entities.HostileSnapshot,
) {
	provider.EXPECT().ScanHostiles(ctx, ref).Return(hostiles, nil)
}

// ExpectDispatch expects one command with the given literal ability name
// and acknowledges it
func ExpectDispatch(ctx context.Context, inj *injectormock.MockInjector, ref, ability string) *gomock.Call {
	return inj.EXPECT().
		Dispatch(ctx, ref, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, cmd injector.Command) (*injector.Ack, error) {
			if cmd.Ability != ability {
				return nil, errors.InvalidArgumentf("unexpected command %s, want %s", cmd.Ability, ability)
			}
			return &injector.Ack{CommandID: cmd.ID, Pending: 1, SentAt: cmd.IssuedAt}, nil
		})
}
