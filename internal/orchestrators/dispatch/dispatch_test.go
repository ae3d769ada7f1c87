package dispatch_test

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-rotation/internal/catalog"
	"github.com/KirkDiggler/rpg-rotation/internal/clients/gamestate"
	"github.com/KirkDiggler/rpg-rotation/internal/clients/injector"
	injectormock "github.com/KirkDiggler/rpg-rotation/internal/clients/injector/mock"
	"github.com/KirkDiggler/rpg-rotation/internal/entities"
	"github.com/KirkDiggler/rpg-rotation/internal/errors"
	"github.com/KirkDiggler/rpg-rotation/internal/orchestrators/dispatch"
	"github.com/KirkDiggler/rpg-rotation/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-rotation/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-rotation/internal/redis"
	"github.com/KirkDiggler/rpg-rotation/internal/repositories/journal"
	"github.com/KirkDiggler/rpg-rotation/internal/services/governor"
	"github.com/KirkDiggler/rpg-rotation/internal/services/resolver"
	"github.com/KirkDiggler/rpg-rotation/internal/services/status"
	"github.com/KirkDiggler/rpg-rotation/internal/services/targeting"
	"github.com/KirkDiggler/rpg-rotation/internal/testutils"
	"github.com/KirkDiggler/rpg-rotation/internal/testutils/builders"
)

const ref = testutils.TestMageRef

// fixedRoller always rolls the same face
type fixedRoller struct {
	face int
}

func (r fixedRoller) Roll(_ int) (int, error) { return r.face, nil }

func (r fixedRoller) RollN(count, _ int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i] = r.face
	}
	return out, nil
}

type DispatcherTestSuite struct {
	suite.Suite
	client   redis.Client
	cleanup  func()
	provider gamestate.Provider
	clock    *clock.Fake
	injector *injector.DryRun
	inj      injector.Injector
	bus      events.EventBus
	journal  *journal.InMemoryRepository
	ctx      context.Context

	tracker    *status.Tracker
	governor   *governor.Governor
	roster     *targeting.HostileRoster
	group      *targeting.Group
	dispatcher *dispatch.Dispatcher
}

func (s *DispatcherTestSuite) SetupTest() {
	s.client, s.cleanup = testutils.CreateTestRedisClient(s.T())
	s.clock = clock.NewFake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s.inj = nil
	s.bus = events.NewBus()
	s.journal = journal.NewInMemory(0)
	s.ctx = context.Background()

	var err error
	s.provider, err = gamestate.NewRedisProvider(&gamestate.Config{Client: s.client})
	s.Require().NoError(err)

	journal.Subscribe(&journal.SubscriberConfig{
		Bus:        s.bus,
		Repository: s.journal,
		SessionID:  "sess",
		IDs:        idgen.NewSequential("jrnl"),
		Clock:      s.clock,
	})
}

func (s *DispatcherTestSuite) TearDownTest() {
	s.cleanup()
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherTestSuite))
}

// start seeds the game state, builds the dispatcher and runs one refresh.
// An empty spell list means the character knows the first variant of
// every ability.
func (s *DispatcherTestSuite) start(state testutils.GameState) {
	c := catalog.Full()
	if len(state.Spells) == 0 {
		state.Spells = testutils.FirstVariants(c)
	}
	testutils.SeedGameState(s.T(), s.client, ref, state)

	s.injector = injector.NewDryRun(s.clock)
	inj := s.inj
	if inj == nil {
		inj = s.injector
	}

	res, err := resolver.New(&resolver.Config{
		Catalog:   c,
		SpellBook: &gamestate.SpellBook{Provider: s.provider, Ref: ref},
		Character: "Morwen",
	})
	s.Require().NoError(err)

	s.tracker, err = status.New(&status.Config{
		Provider:  s.provider,
		Clock:     s.clock,
		Ref:       ref,
		Character: "Morwen",
	})
	s.Require().NoError(err)
	s.tracker.TrackCatalog(c)

	s.governor, err = governor.New(&governor.Config{
		DefaultSpacing: 150 * time.Millisecond,
		MeleeSpacing:   500 * time.Millisecond,
		Clock:          s.clock,
	})
	s.Require().NoError(err)

	s.roster, err = targeting.NewHostileRoster(&targeting.RosterConfig{
		Provider:  s.provider,
		Clock:     s.clock,
		Ref:       ref,
		Character: "Morwen",
	})
	s.Require().NoError(err)

	s.group, err = targeting.NewGroup(&targeting.GroupConfig{
		Provider:  s.provider,
		Ref:       ref,
		Character: "Morwen",
	})
	s.Require().NoError(err)

	s.dispatcher, err = dispatch.New(&dispatch.Config{
		Character: "Morwen",
		Ref:       ref,
		Resolver:  res,
		Tracker:   s.tracker,
		Governor:  s.governor,
		Roster:    s.roster,
		Group:     s.group,
		Injector:  inj,
		Bus:       s.bus,
		IDs:       idgen.NewSequential("cmd"),
		Clock:     s.clock,
		Roller:    fixedRoller{face: 3},
	})
	s.Require().NoError(err)

	s.refresh()
}

func (s *DispatcherTestSuite) refresh() {
	s.Require().NoError(s.tracker.Refresh(s.ctx))
	s.Require().NoError(s.group.Refresh(s.ctx, s.tracker.Self()))
	_, err := s.roster.Refresh(s.ctx, true)
	s.Require().NoError(err)
}

func (s *DispatcherTestSuite) reseed(self *entities.Snapshot) {
	testutils.SeedGameState(s.T(), s.client, ref, testutils.GameState{Self: self})
	s.refresh()
}

func (s *DispatcherTestSuite) sent() []string {
	cmds := s.injector.Sent(ref)
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.Ability
	}
	return out
}

func (s *DispatcherTestSuite) mage() *builders.SnapshotBuilder {
	return builders.NewSnapshotBuilder().
		WithID(ref).
		WithName("Morwen").
		WithPath("Diviner").
		WithVita(1000, 1000).
		WithMana(3000, 3000)
}

func (s *DispatcherTestSuite) TestNewValidates() {
	_, err := dispatch.New(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = dispatch.New(&dispatch.Config{Character: "Morwen"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *DispatcherTestSuite) TestVitaGate() {
	testCases := []struct {
		name     string
		vita     int
		expected bool
	}{
		{name: "79 percent fails", vita: 790, expected: false},
		{name: "80 percent proceeds", vita: 800, expected: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.start(testutils.GameState{Self: s.mage().WithVita(tc.vita, 1000).Build()})

			ok, err := s.dispatcher.SelfAttack(s.ctx, catalog.SulSlash, 80)
			s.Require().NoError(err)
			s.Equal(tc.expected, ok)

			if tc.expected {
				s.Equal([]string{"Sul Slash"}, s.sent())
			} else {
				s.Empty(s.sent())
			}
		})
	}
}

func (s *DispatcherTestSuite) TestActiveStatusIsNeverRecast() {
	s.start(testutils.GameState{Self: s.mage().WithStatus("Sanctuary").Build()})

	for elapsed := time.Duration(0); elapsed < 300*time.Second; elapsed += time.Second {
		s.Require().NoError(s.tracker.Refresh(s.ctx))

		ok, err := s.dispatcher.Buff(s.ctx, catalog.Sanctuary)
		s.Require().NoError(err)
		s.False(ok)

		s.clock.Advance(time.Second)
	}
	s.Empty(s.sent())

	s.reseed(s.mage().Build())

	ok, err := s.dispatcher.Buff(s.ctx, catalog.Sanctuary)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal([]string{"Sanctuary"}, s.sent())
}

func (s *DispatcherTestSuite) TestUnresolvedConsumesNoCooldown() {
	s.start(testutils.GameState{
		Self:   s.mage().Build(),
		Spells: []string{"Gateway"},
	})

	ok, err := s.dispatcher.Buff(s.ctx, catalog.Sanctuary)
	s.Require().NoError(err)
	s.False(ok)
	s.True(s.governor.CanAct(false))
	s.Empty(s.sent())

	ok, err = s.dispatcher.Cast(s.ctx, dispatch.Request{Ability: catalog.Gateway, Param: "North"})
	s.Require().NoError(err)
	s.True(ok)

	cmds := s.injector.Sent(ref)
	s.Require().Len(cmds, 1)
	s.Equal("North", cmds[0].Param)
}

func (s *DispatcherTestSuite) TestOpportunisticCastRespectsSpacing() {
	s.start(testutils.GameState{Self: s.mage().Build()})

	ok, err := s.dispatcher.Cast(s.ctx, dispatch.Request{Ability: catalog.Gateway, Param: "North"})
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.dispatcher.Cast(s.ctx, dispatch.Request{Ability: catalog.Gateway, Param: "East"})
	s.Require().NoError(err)
	s.False(ok)

	s.clock.Advance(150 * time.Millisecond)

	ok, err = s.dispatcher.Cast(s.ctx, dispatch.Request{Ability: catalog.Gateway, Param: "East"})
	s.Require().NoError(err)
	s.False(ok, "exactly the spacing is not enough")

	s.clock.Advance(time.Millisecond)

	ok, err = s.dispatcher.Cast(s.ctx, dispatch.Request{Ability: catalog.Gateway, Param: "East"})
	s.Require().NoError(err)
	s.True(ok)
}

func (s *DispatcherTestSuite) TestWaitSuspendsThroughSpacing() {
	s.start(testutils.GameState{Self: s.mage().Build()})
	start := s.clock.Now()

	for _, gate := range []dispatch.Gate{dispatch.GateNorth, dispatch.GateSouth} {
		ok, err := s.dispatcher.Gateway(s.ctx, gate)
		s.Require().NoError(err)
		s.True(ok)
	}

	s.Equal(150*time.Millisecond+time.Nanosecond, s.clock.Now().Sub(start))
	s.Len(s.sent(), 2)
}

func (s *DispatcherTestSuite) TestManaCostGate() {
	s.start(testutils.GameState{Self: s.mage().WithMana(59, 3000).Build()})

	ok, err := s.dispatcher.Buff(s.ctx, catalog.Sanctuary)
	s.Require().NoError(err)
	s.False(ok)
	s.Empty(s.sent())
}

func (s *DispatcherTestSuite) TestVariantCooldown() {
	s.start(testutils.GameState{Self: s.mage().Build()})

	ok, err := s.dispatcher.SelfAttack(s.ctx, catalog.SulSlash, 0)
	s.Require().NoError(err)
	s.True(ok)

	s.clock.Advance(30 * time.Second)
	ok, err = s.dispatcher.SelfAttack(s.ctx, catalog.SulSlash, 0)
	s.Require().NoError(err)
	s.False(ok)

	s.clock.Advance(30 * time.Second)
	ok, err = s.dispatcher.SelfAttack(s.ctx, catalog.SulSlash, 0)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *DispatcherTestSuite) TestInjectorFailureIsAnError() {
	ctrl := gomock.NewController(s.T())
	mockInjector := injectormock.NewMockInjector(ctrl)
	s.inj = mockInjector
	s.start(testutils.GameState{Self: s.mage().Build()})

	mockInjector.EXPECT().
		Dispatch(s.ctx, ref, gomock.Any()).
		Return(nil, errors.Unavailable("injector queue full"))

	ok, err := s.dispatcher.Gateway(s.ctx, dispatch.GateWest)
	s.Error(err)
	s.False(ok)
	s.True(errors.IsUnavailable(err))
	s.True(s.governor.CanAct(false))
}

func (s *DispatcherTestSuite) TestUndeclaredAbilityIsANoOp() {
	s.start(testutils.GameState{Self: s.mage().Build()})

	ok, err := s.dispatcher.Cast(s.ctx, dispatch.Request{Ability: "Not In Catalog"})
	s.Require().NoError(err)
	s.False(ok)
	s.Empty(s.sent())
}

func (s *DispatcherTestSuite) TestGatewayRejectsUnknownGate() {
	s.start(testutils.GameState{Self: s.mage().Build()})

	_, err := s.dispatcher.Gateway(s.ctx, dispatch.Gate("Up"))
	s.True(errors.IsInvalidArgument(err))
	s.Empty(s.sent())
}

func (s *DispatcherTestSuite) TestWanderStepsInRolledDirection() {
	s.start(testutils.GameState{Self: s.mage().Build()})

	ok, err := s.dispatcher.Wander(s.ctx)
	s.Require().NoError(err)
	s.True(ok)

	cmds := s.injector.Sent(ref)
	s.Require().Len(cmds, 1)
	s.Equal(dispatch.MoveCommand, cmds[0].Ability)
	s.Equal(string(dispatch.DirectionDown), cmds[0].Param)
}

func (s *DispatcherTestSuite) TestThresholdsRetune() {
	s.start(testutils.GameState{Self: s.mage().WithVita(850, 1000).Build()})

	s.Error(s.dispatcher.SetThresholds(dispatch.Thresholds{MinVitaPercent: 120}))

	t := dispatch.DefaultThresholds()
	t.MinVitaPercent = 90
	s.Require().NoError(s.dispatcher.SetThresholds(t))

	ok, err := s.dispatcher.SelfAttack(s.ctx, catalog.SulSlash, 0)
	s.Require().NoError(err)
	s.False(ok)
	s.Equal(float64(90), s.dispatcher.Thresholds().MinVitaPercent)
}

func (s *DispatcherTestSuite) TestDispatchIsJournaled() {
	s.start(testutils.GameState{
		Self:     s.mage().Build(),
		Hostiles: builders.Hostiles("Rat"),
	})

	h, ok := s.roster.Get("npc-Rat")
	s.Require().True(ok)

	cast, err := s.dispatcher.Debuff(s.ctx, catalog.Venom, h)
	s.Require().NoError(err)
	s.True(cast)

	out, err := s.journal.List(s.ctx, &journal.ListInput{SessionID: "sess"})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 1)
	s.Equal(journal.KindDispatched, out.Entries[0].Kind)
	s.Equal("Morwen", out.Entries[0].Character)
	s.Equal(catalog.Venom, out.Entries[0].Ability)
	s.Equal("Venom", out.Entries[0].Variant)
	s.Equal("npc-Rat", out.Entries[0].Target)
}
