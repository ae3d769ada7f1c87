package rotation_test

import (
	"context"
	"sync"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-rotation/internal/entities"
	"github.com/KirkDiggler/rpg-rotation/internal/errors"
	"github.com/KirkDiggler/rpg-rotation/internal/orchestrators/dispatch"
	"github.com/KirkDiggler/rpg-rotation/internal/orchestrators/rotation"
	"github.com/KirkDiggler/rpg-rotation/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-rotation/internal/testutils"
	"github.com/KirkDiggler/rpg-rotation/internal/testutils/builders"
)

const poetRef = testutils.TestPoetRef

func (s *FlowTestSuite) sessionConfig(characters ...rotation.Character) *rotation.SessionConfig {
	return &rotation.SessionConfig{
		ID:         "sess",
		Characters: characters,
		Provider:   s.mockProvider,
		Injector:   s.mockInjector,
		Bus:        s.bus,
		Clock:      s.clock,
		IDs:        idgen.NewSequential("cmd"),
	}
}

func (s *FlowTestSuite) TestSessionResolvesPaths() {
	testCases := []struct {
		name      string
		archetype string
		setup     func()
		expected  entities.BasePath
	}{
		{
			name:      "from archetype",
			archetype: "Diviner",
			setup:     func() {},
			expected:  entities.PathMage,
		},
		{
			name: "from snapshot subpath",
			setup: func() {
				s.mockProvider.EXPECT().ReadSnapshot(s.ctx, mageRef).
					Return(s.mage().WithPath("Bard").Build(), nil)
			},
			expected: entities.PathRogue,
		},
		{
			name: "inferred from spell book",
			setup: func() {
				s.mockProvider.EXPECT().ReadSnapshot(s.ctx, mageRef).
					Return(s.mage().WithPath("Wanderer").Build(), nil)
				s.mockProvider.EXPECT().KnownAbilities(s.ctx, mageRef).
					Return([]string{"Hellfire", "Doze", "Sleep", "Gateway"}, nil)
			},
			expected: entities.PathMage,
		},
		{
			name: "peasant when nothing matches",
			setup: func() {
				s.mockProvider.EXPECT().ReadSnapshot(s.ctx, mageRef).
					Return(s.mage().WithPath("").Build(), nil)
				s.mockProvider.EXPECT().KnownAbilities(s.ctx, mageRef).Return(nil, nil)
			},
			expected: entities.PathPeasant,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			tc.setup()

			session, err := rotation.NewSession(s.ctx, s.sessionConfig(rotation.Character{
				Name:      "Morwen",
				Ref:       mageRef,
				Archetype: tc.archetype,
			}))
			s.Require().NoError(err)

			flows := session.Flows()
			s.Require().Len(flows, 1)
			s.Equal(tc.expected, flows[0].Path())
			s.Equal(rotation.DefaultPlan(tc.expected), flows[0].Plan())
		})
	}
}

func (s *FlowTestSuite) TestSessionKeepsExplicitPlan() {
	session, err := rotation.NewSession(s.ctx, s.sessionConfig(rotation.Character{
		Name:      "Morwen",
		Ref:       mageRef,
		Archetype: "mage",
		Plan:      []string{"curse", "hellfire"},
	}))
	s.Require().NoError(err)
	s.Equal([]string{"curse", "hellfire"}, session.Flows()[0].Plan())
}

func (s *FlowTestSuite) TestSessionRejectsBadCharacters() {
	testCases := []struct {
		name       string
		characters []rotation.Character
	}{
		{name: "none"},
		{
			name:       "unknown archetype",
			characters: []rotation.Character{{Name: "Morwen", Ref: mageRef, Archetype: "astronaut"}},
		},
		{
			name: "duplicate ref",
			characters: []rotation.Character{
				{Name: "Morwen", Ref: mageRef, Archetype: "mage"},
				{Name: "Aldric", Ref: mageRef, Archetype: "poet"},
			},
		},
		{
			name: "duplicate name",
			characters: []rotation.Character{
				{Name: "Morwen", Ref: mageRef, Archetype: "mage"},
				{Name: "Morwen", Ref: poetRef, Archetype: "poet"},
			},
		},
		{
			name:       "unknown step",
			characters: []rotation.Character{{Name: "Morwen", Ref: mageRef, Archetype: "mage", Plan: []string{"teleport"}}},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := rotation.NewSession(s.ctx, s.sessionConfig(tc.characters...))
			s.Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}

	_, err := rotation.NewSession(s.ctx, nil)
	s.Error(err)
}

func (s *FlowTestSuite) TestSessionTogglePause() {
	session, err := rotation.NewSession(s.ctx, s.sessionConfig(
		rotation.Character{Name: "Morwen", Ref: mageRef, Archetype: "mage"},
		rotation.Character{Name: "Aldric", Ref: poetRef, Archetype: "poet"},
	))
	s.Require().NoError(err)

	s.True(session.TogglePause())
	for _, f := range session.Flows() {
		s.True(f.Paused())
	}

	s.False(session.TogglePause())
	for _, f := range session.Flows() {
		s.False(f.Paused())
	}
}

func (s *FlowTestSuite) TestSessionRetunesEveryFlow() {
	session, err := rotation.NewSession(s.ctx, s.sessionConfig(
		rotation.Character{Name: "Morwen", Ref: mageRef, Archetype: "mage"},
		rotation.Character{Name: "Aldric", Ref: poetRef, Archetype: "poet"},
	))
	s.Require().NoError(err)

	thresholds := dispatch.DefaultThresholds()
	thresholds.HealVitaPercent = 60
	s.Require().NoError(session.Retune(rotation.DefaultTiming(), thresholds))
	for _, f := range session.Flows() {
		s.Equal(float64(60), f.Dispatcher().Thresholds().HealVitaPercent)
	}

	bad := rotation.DefaultTiming()
	bad.TickInterval = 0
	s.Error(session.Retune(bad, thresholds))
}

// stubGameState answers every read with a buffed, idle character so flows
// tick without dispatching
func (s *FlowTestSuite) stubGameState(failing string) {
	names := map[string]string{mageRef: "Morwen", poetRef: "Aldric"}

	s.mockProvider.EXPECT().ReadSnapshot(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ref string) (*entities.Snapshot, error) {
			if ref == failing {
				return nil, errors.Unavailable("client closed")
			}
			return builders.NewSnapshotBuilder().
				WithID(ref).
				WithName(names[ref]).
				WithStatus("Sanctuary").
				Build(), nil
		}).AnyTimes()
	s.mockProvider.EXPECT().ReadGroup(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	s.mockProvider.EXPECT().ScanHostiles(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	s.mockProvider.EXPECT().KnownAbilities(gomock.Any(), gomock.Any()).Return([]string{"Sanctuary"}, nil).AnyTimes()
}

func (s *FlowTestSuite) TestSessionRunStopsEveryFlow() {
	testCases := []struct {
		name     string
		failing  string
		canceled bool
		stopped  map[string]bool
	}{
		{
			name:     "shutdown is clean",
			canceled: true,
			stopped:  map[string]bool{"Morwen": false, "Aldric": false},
		},
		{
			name:    "one failing flow stops the session",
			failing: poetRef,
			stopped: map[string]bool{"Morwen": false, "Aldric": true},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			s.stubGameState(tc.failing)

			var mu sync.Mutex
			stopped := map[string]bool{}

			cfg := s.sessionConfig(
				rotation.Character{Name: "Morwen", Ref: mageRef, Archetype: "mage", Plan: []string{"sanctuary"}},
				rotation.Character{Name: "Aldric", Ref: poetRef, Archetype: "poet", Plan: []string{"sanctuary"}},
			)
			cfg.OnFlowStopped = func(character string, err error) {
				mu.Lock()
				defer mu.Unlock()
				stopped[character] = err != nil
			}

			session, err := rotation.NewSession(s.ctx, cfg)
			s.Require().NoError(err)

			ctx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
			defer cancel()
			if tc.canceled {
				cancel()
			}

			err = session.Run(ctx)
			if tc.failing != "" {
				s.Error(err)
				s.True(errors.IsUnavailable(err))
			} else {
				s.NoError(err)
			}

			mu.Lock()
			defer mu.Unlock()
			s.Equal(tc.stopped, stopped)
		})
	}
}
