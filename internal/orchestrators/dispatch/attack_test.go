package dispatch_test

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-rotation/internal/catalog"
	"github.com/KirkDiggler/rpg-rotation/internal/entities"
	"github.com/KirkDiggler/rpg-rotation/internal/orchestrators/dispatch"
	"github.com/KirkDiggler/rpg-rotation/internal/testutils"
	"github.com/KirkDiggler/rpg-rotation/internal/testutils/builders"
)

func (s *DispatcherTestSuite) TestHellfireDisablesThenAttacksNewestHostile() {
	s.start(testutils.GameState{
		Self:     s.mage().Build(),
		Hostiles: builders.Hostiles("A", "B", "C"),
	})

	ok, err := s.dispatcher.Hellfire(s.ctx)
	s.Require().NoError(err)
	s.True(ok)

	cmds := s.injector.Sent(ref)
	s.Require().Len(cmds, 2)
	s.Equal("Doze", cmds[0].Ability)
	s.Equal("npc-C", cmds[0].Param)
	s.Equal("Hellfire", cmds[1].Ability)
	s.Equal("npc-C", cmds[1].Param)

	c, found := s.roster.Get("npc-C")
	s.Require().True(found)
	s.True(c.Afflicted(catalog.Doze, s.clock.Now()))
}

func (s *DispatcherTestSuite) TestHellfireFallsBackToSleep() {
	s.start(testutils.GameState{
		Self:     s.mage().Build(),
		Hostiles: builders.Hostiles("A"),
		Spells:   []string{"Sleep", "Hellfire"},
	})

	ok, err := s.dispatcher.Hellfire(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal([]string{"Sleep", "Hellfire"}, s.sent())
}

func (s *DispatcherTestSuite) TestHellfireSkippedWhileActive() {
	s.start(testutils.GameState{
		Self:     s.mage().WithStatus("Hellfire").Build(),
		Hostiles: builders.Hostiles("A", "B"),
	})

	ok, err := s.dispatcher.Hellfire(s.ctx)
	s.Require().NoError(err)
	s.False(ok)
	s.Empty(s.sent())
}

func (s *DispatcherTestSuite) TestAttackFirstReachesEveryHostileAfterRemoval() {
	s.start(testutils.GameState{
		Self:     s.mage().Build(),
		Hostiles: builders.Hostiles("A", "B", "C"),
		Spells:   []string{"Hellfire"},
	})

	visited := []string{}
	ok, err := s.roster.ForEachReverse(s.ctx, func(ctx context.Context, h *entities.Hostile) (bool, error) {
		visited = append(visited, h.ID)
		if h.ID == "npc-C" {
			s.roster.Invalidate(h.ID)
		}
		return false, nil
	})
	s.Require().NoError(err)
	s.False(ok)
	s.Equal([]string{"npc-C", "npc-B", "npc-A"}, visited)

	ok, err = s.dispatcher.AttackFirst(s.ctx, catalog.Hellfire)
	s.Require().NoError(err)
	s.True(ok)

	cmds := s.injector.Sent(ref)
	s.Require().Len(cmds, 1)
	s.Equal("npc-B", cmds[0].Param)
}

func (s *DispatcherTestSuite) TestStaleTargetIsANoOp() {
	s.start(testutils.GameState{
		Self:     s.mage().Build(),
		Hostiles: builders.Hostiles("A"),
	})

	h, found := s.roster.Get("npc-A")
	s.Require().True(found)
	s.roster.Invalidate(h.ID)

	ok, err := s.dispatcher.Attack(s.ctx, catalog.Hellfire, h)
	s.Require().NoError(err)
	s.False(ok)
	s.Empty(s.sent())
}

func (s *DispatcherTestSuite) TestDebuffFirstSkipsAfflictedHostiles() {
	s.start(testutils.GameState{
		Self:     s.mage().Build(),
		Hostiles: builders.Hostiles("A", "B"),
	})

	for range 2 {
		ok, err := s.dispatcher.DebuffFirst(s.ctx, catalog.Curse)
		s.Require().NoError(err)
		s.True(ok)
	}

	ok, err := s.dispatcher.DebuffFirst(s.ctx, catalog.Curse)
	s.Require().NoError(err)
	s.False(ok)

	cmds := s.injector.Sent(ref)
	s.Require().Len(cmds, 2)
	s.Equal("Scourge", cmds[0].Ability)
	s.Equal("npc-B", cmds[0].Param)
	s.Equal("npc-A", cmds[1].Param)

	s.clock.Advance(120 * time.Second)

	ok, err = s.dispatcher.DebuffFirst(s.ctx, catalog.Curse)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *DispatcherTestSuite) TestStrikeUsesMeleeSpacing() {
	s.start(testutils.GameState{Self: s.mage().Build()})
	start := s.clock.Now()

	for range 2 {
		ok, err := s.dispatcher.Strike(s.ctx)
		s.Require().NoError(err)
		s.True(ok)
	}

	s.Equal(500*time.Millisecond+time.Nanosecond, s.clock.Now().Sub(start))

	cmds := s.injector.Sent(ref)
	s.Require().Len(cmds, 2)
	s.True(cmds[1].Melee)
}

func (s *DispatcherTestSuite) TestFuryAndRage() {
	testCases := []struct {
		name     string
		spells   []string
		fury     bool
		rage     bool
		expected []string
	}{
		{name: "without rage", spells: []string{"Fury"}, fury: true, rage: false, expected: []string{"Fury"}},
		{name: "rogue cunning replaces fury", spells: []string{"Fury", "Cunning"}, fury: false, rage: true, expected: []string{"Cunning"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.start(testutils.GameState{
				Self:   s.mage().WithPath("Bard").Build(),
				Spells: tc.spells,
			})

			ok, err := s.dispatcher.Fury(s.ctx)
			s.Require().NoError(err)
			s.Equal(tc.fury, ok)

			ok, err = s.dispatcher.Rage(s.ctx)
			s.Require().NoError(err)
			s.Equal(tc.rage, ok)

			s.Equal(tc.expected, s.sent())
		})
	}
}

func (s *DispatcherTestSuite) TestFirstSuccessShortCircuits() {
	calls := 0
	op := func(result bool) dispatch.Op {
		return func(context.Context) (bool, error) {
			calls++
			return result, nil
		}
	}

	ok, err := dispatch.FirstSuccess(s.ctx, op(false), op(true), op(true))
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(2, calls)

	ok, err = dispatch.FirstSuccess(s.ctx)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *DispatcherTestSuite) TestHellfireSendsNoDisablerDuringItsAether() {
	s.start(testutils.GameState{
		Self:     s.mage().Build(),
		Hostiles: builders.Hostiles("A", "B", "C"),
	})

	ok, err := s.dispatcher.Hellfire(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal([]string{"Doze", "Hellfire"}, s.sent())

	s.clock.Advance(time.Second)
	s.refresh()

	ok, err = s.dispatcher.Hellfire(s.ctx)
	s.Require().NoError(err)
	s.False(ok)
	s.Equal([]string{"Doze", "Hellfire"}, s.sent())

	ok, err = s.dispatcher.AttackDisabled(s.ctx, catalog.Hellfire, s.roster.Hostiles()[0], catalog.Doze)
	s.Require().NoError(err)
	s.False(ok)
	s.Len(s.sent(), 2)

	s.clock.Advance(4 * time.Second)

	ok, err = s.dispatcher.Hellfire(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("Hellfire", s.sent()[len(s.sent())-1])
}

func (s *DispatcherTestSuite) TestDebuffIgnoresCasterFlagOfTheSameName() {
	s.start(testutils.GameState{
		Self:     s.mage().WithStatus("Doze").Build(),
		Hostiles: builders.Hostiles("A"),
	})

	ok, err := s.dispatcher.DebuffFirst(s.ctx, catalog.Doze)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal([]string{"Doze"}, s.sent())
}
