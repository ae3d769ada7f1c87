package governor_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-rotation/internal/catalog"
	"github.com/KirkDiggler/rpg-rotation/internal/errors"
	"github.com/KirkDiggler/rpg-rotation/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-rotation/internal/services/governor"
)

const (
	defaultSpacing = 150 * time.Millisecond
	meleeSpacing   = 500 * time.Millisecond
)

type GovernorTestSuite struct {
	suite.Suite
	clock    *clock.Fake
	governor *governor.Governor
	ctx      context.Context
}

func (s *GovernorTestSuite) SetupTest() {
	s.clock = clock.NewFake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s.ctx = context.Background()

	var err error
	s.governor, err = governor.New(&governor.Config{
		DefaultSpacing: defaultSpacing,
		MeleeSpacing:   meleeSpacing,
		Clock:          s.clock,
	})
	s.Require().NoError(err)
}

func TestGovernorSuite(t *testing.T) {
	suite.Run(t, new(GovernorTestSuite))
}

func (s *GovernorTestSuite) TestConfigValidation() {
	testCases := []struct {
		name    string
		cfg     *governor.Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg:  &governor.Config{DefaultSpacing: defaultSpacing, MeleeSpacing: meleeSpacing, Clock: s.clock},
		},
		{
			name: "equal spacing",
			cfg:  &governor.Config{DefaultSpacing: defaultSpacing, MeleeSpacing: defaultSpacing, Clock: s.clock},
		},
		{
			name:    "melee below default",
			cfg:     &governor.Config{DefaultSpacing: meleeSpacing, MeleeSpacing: defaultSpacing, Clock: s.clock},
			wantErr: true,
		},
		{
			name:    "zero default",
			cfg:     &governor.Config{MeleeSpacing: meleeSpacing, Clock: s.clock},
			wantErr: true,
		},
		{
			name:    "missing clock",
			cfg:     &governor.Config{DefaultSpacing: defaultSpacing, MeleeSpacing: meleeSpacing},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := governor.New(tc.cfg)
			if tc.wantErr {
				s.Error(err)
				s.True(errors.IsInvalidArgument(err))
				return
			}
			s.NoError(err)
		})
	}
}

func (s *GovernorTestSuite) TestFreshGovernorCanAct() {
	s.True(s.governor.CanAct(false))
	s.True(s.governor.CanAct(true))
}

func (s *GovernorTestSuite) TestCanActFalseUntilSpacingElapses() {
	s.governor.RecordAction(false)
	s.False(s.governor.CanAct(false))

	s.clock.Advance(defaultSpacing - time.Millisecond)
	s.False(s.governor.CanAct(false))

	s.clock.Advance(time.Millisecond)
	s.False(s.governor.CanAct(false), "elapsed must exceed the spacing")

	s.clock.Advance(time.Nanosecond)
	s.True(s.governor.CanAct(false))
}

func (s *GovernorTestSuite) TestMeleeSpacingIsIndependent() {
	s.governor.RecordAction(true)

	s.clock.Advance(defaultSpacing + time.Millisecond)
	s.True(s.governor.CanAct(false), "general commands only wait the default spacing")
	s.False(s.governor.CanAct(true))

	s.clock.Advance(meleeSpacing - defaultSpacing)
	s.True(s.governor.CanAct(true))
}

func (s *GovernorTestSuite) TestGeneralCommandDelaysMelee() {
	s.governor.RecordAction(true)
	s.clock.Advance(meleeSpacing - 50*time.Millisecond)
	s.governor.RecordAction(false)

	s.clock.Advance(50 * time.Millisecond)
	s.False(s.governor.CanAct(true), "the general spacing still applies to melee")
	s.Equal(100*time.Millisecond+time.Nanosecond, s.governor.Wait(true))
}

func (s *GovernorTestSuite) TestAwaitReadySleepsExactlyTheRemainder() {
	s.governor.RecordAction(true)
	s.clock.Advance(100 * time.Millisecond)

	s.Require().NoError(s.governor.AwaitReady(s.ctx, true))
	s.True(s.governor.CanAct(true))
	s.Equal(meleeSpacing-100*time.Millisecond+time.Nanosecond, s.clock.Slept())
}

func (s *GovernorTestSuite) TestAwaitReadyNoWait() {
	s.Require().NoError(s.governor.AwaitReady(s.ctx, false))
	s.Zero(s.clock.Sleeps())
}

func (s *GovernorTestSuite) TestAwaitReadyCancelled() {
	s.governor.RecordAction(false)
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	err := s.governor.AwaitReady(ctx, false)
	s.Require().Error(err)
	s.Equal(errors.CodeCanceled, errors.GetCode(err))
}

func (s *GovernorTestSuite) TestSetSpacing() {
	s.Require().NoError(s.governor.SetSpacing(300*time.Millisecond, time.Second))
	def, melee := s.governor.Spacing()
	s.Equal(300*time.Millisecond, def)
	s.Equal(time.Second, melee)

	s.governor.RecordAction(false)
	s.clock.Advance(defaultSpacing)
	s.False(s.governor.CanAct(false))

	s.Error(s.governor.SetSpacing(time.Second, 300*time.Millisecond))
	def, _ = s.governor.Spacing()
	s.Equal(300*time.Millisecond, def, "rejected spacing leaves the old values")
}

func (s *GovernorTestSuite) TestAbilityCooldowns() {
	invoke := catalog.Variant{Name: "Invoke", Cooldown: 22 * time.Second}
	heal := catalog.Variant{Name: "Heal"}

	s.True(s.governor.AbilityReady(invoke.Name))
	s.governor.RecordAbility(invoke)
	s.governor.RecordAbility(heal)

	s.False(s.governor.AbilityReady(invoke.Name))
	s.True(s.governor.AbilityReady(heal.Name), "variants without a cooldown are always ready")
	s.Equal(22*time.Second, s.governor.Remaining(invoke.Name))

	s.clock.Advance(22 * time.Second)
	s.True(s.governor.AbilityReady(invoke.Name))
	s.Zero(s.governor.Remaining(invoke.Name))
}
