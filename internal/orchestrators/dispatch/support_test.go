package dispatch_test

import (
	"github.com/KirkDiggler/rpg-rotation/internal/catalog"
	"github.com/KirkDiggler/rpg-rotation/internal/entities"
	"github.com/KirkDiggler/rpg-rotation/internal/testutils"
	"github.com/KirkDiggler/rpg-rotation/internal/testutils/builders"
)

func (s *DispatcherTestSuite) poet() *builders.SnapshotBuilder {
	return s.mage().WithPath("Geomancer").WithMana(2000, 2000)
}

func (s *DispatcherTestSuite) TestInspireGroupResourceProfile() {
	testCases := []struct {
		name        string
		manaMax     int
		manaPercent float64
		expected    bool
	}{
		{name: "mana max over half of vita max is excluded", manaMax: 600, manaPercent: 50, expected: false},
		{name: "mana max at 400 is included", manaMax: 400, manaPercent: 50, expected: true},
		{name: "ceiling still applies", manaMax: 400, manaPercent: 90, expected: false},
		{name: "ceiling is inclusive", manaMax: 400, manaPercent: 80, expected: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.start(testutils.GameState{
				Self:  s.poet().Build(),
				Group: []entities.GroupMemberSnapshot{builders.GroupMember("u-kai", "Kai", 1, 1000, tc.manaMax, tc.manaPercent)},
			})

			ok, err := s.dispatcher.InspireGroup(s.ctx)
			s.Require().NoError(err)
			s.Equal(tc.expected, ok)

			if tc.expected {
				cmds := s.injector.Sent(ref)
				s.Require().Len(cmds, 1)
				s.Equal("Inspire", cmds[0].Ability)
				s.Equal("u-kai", cmds[0].Param)
			} else {
				s.Empty(s.sent())
			}
		})
	}
}

func (s *DispatcherTestSuite) TestInspireExcludesAlliesRivalingTheCaster() {
	s.start(testutils.GameState{
		Self:  s.poet().WithMana(700, 700).Build(),
		Group: []entities.GroupMemberSnapshot{builders.GroupMember("u-kai", "Kai", 1, 1000, 400, 10)},
	})

	ok, err := s.dispatcher.InspireGroup(s.ctx)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *DispatcherTestSuite) TestInspireRequiresInvoke() {
	s.start(testutils.GameState{
		Self:   s.poet().Build(),
		Group:  []entities.GroupMemberSnapshot{builders.GroupMember("u-kai", "Kai", 1, 1000, 400, 10)},
		Spells: []string{"Inspire"},
	})

	ok, err := s.dispatcher.InspireGroup(s.ctx)
	s.Require().NoError(err)
	s.False(ok)
	s.Empty(s.sent())
}

func (s *DispatcherTestSuite) TestInvokeBelowThreshold() {
	s.start(testutils.GameState{Self: s.poet().WithMana(1200, 2000).Build()})

	ok, err := s.dispatcher.Invoke(s.ctx, 50)
	s.Require().NoError(err)
	s.False(ok)

	s.reseed(s.poet().WithMana(900, 2000).Build())

	ok, err = s.dispatcher.Invoke(s.ctx, 50)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal([]string{"Invoke"}, s.sent())
}

func (s *DispatcherTestSuite) TestHealFollowsGroupPriority() {
	wounded := builders.GroupMember("u-kai", "Kai", 1, 1000, 200, 100)
	wounded.Pools[entities.PoolVita] = entities.Pool{Current: 300, Max: 1000}

	s.start(testutils.GameState{
		Self:  s.poet().Build(),
		Group: []entities.GroupMemberSnapshot{wounded},
	})

	ok, err := s.dispatcher.Heal(s.ctx, catalog.Heal, 0)
	s.Require().NoError(err)
	s.True(ok)

	cmds := s.injector.Sent(ref)
	s.Require().Len(cmds, 1)
	s.Equal("u-kai", cmds[0].Param)

	s.reseed(s.poet().WithVita(500, 1000).Build())

	ok, err = s.dispatcher.Heal(s.ctx, catalog.Heal, 0)
	s.Require().NoError(err)
	s.True(ok)

	cmds = s.injector.Sent(ref)
	s.Require().Len(cmds, 2)
	s.Equal(ref, cmds[1].Param)
}

func (s *DispatcherTestSuite) TestCureSelfFromSnapshot() {
	s.start(testutils.GameState{Self: s.poet().WithDebuff(entities.DebuffVenom).Build()})

	ok, err := s.dispatcher.Cure(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal([]string{"Purge"}, s.sent())
}

func (s *DispatcherTestSuite) TestBroadcastCureDrivesExternalCures() {
	s.start(testutils.GameState{
		Self:  s.poet().Build(),
		Group: []entities.GroupMemberSnapshot{builders.GroupMember("u-kai", "Kai", 1, 1000, 200, 100)},
	})

	ok, err := s.dispatcher.Cure(s.ctx)
	s.Require().NoError(err)
	s.False(ok)

	s.Require().NoError(s.dispatcher.BroadcastCure(s.ctx))

	ally := s.group.External()[0]
	s.Len(ally.PendingCures(), len(entities.Debuffs))

	ok, err = s.dispatcher.Cure(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal([]string{"Cure Paralysis"}, s.sent())
	s.False(ally.NeedsCure(entities.DebuffParalysis))
	s.True(ally.NeedsCure(entities.DebuffBlindness))

	s.refresh()
	s.True(s.group.External()[0].NeedsCure(entities.DebuffBlindness))
}

func (s *DispatcherTestSuite) TestBroadcastCureOnlyMarksKnownCures() {
	s.start(testutils.GameState{
		Self:   s.poet().Build(),
		Group:  []entities.GroupMemberSnapshot{builders.GroupMember("u-kai", "Kai", 1, 1000, 200, 100)},
		Spells: []string{"Purge"},
	})

	s.Require().NoError(s.dispatcher.BroadcastCure(s.ctx))

	pending := s.group.External()[0].PendingCures()
	s.Equal(map[entities.Debuff]bool{entities.DebuffVenom: true}, pending)
}

func (s *DispatcherTestSuite) TestVexIsCuredWithRemoveCurse() {
	s.start(testutils.GameState{
		Self:   s.poet().WithDebuff(entities.DebuffVex).Build(),
		Group:  []entities.GroupMemberSnapshot{builders.GroupMember("u-kai", "Kai", 1, 1000, 200, 100)},
		Spells: []string{"Remove Curse"},
	})

	ok, err := s.dispatcher.Cure(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal([]string{"Remove Curse"}, s.sent())

	s.Require().NoError(s.dispatcher.BroadcastCure(s.ctx))
	s.Equal(map[entities.Debuff]bool{
		entities.DebuffScourge: true,
		entities.DebuffVex:     true,
	}, s.group.External()[0].PendingCures())
}
