package game

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"github.com/aaronzipp/werewolf/internal/events"
	"github.com/aaronzipp/werewolf/internal/models"
)

// script is a Provider whose answers come from optional funcs; a nil func
// abstains.
type script struct {
	speak          func(View) string
	ballot         func(View, []int) int
	night          func(View, []int, models.ActionKind) int
	discuss        func(View, int) string
	curer          func(View, CurerOptions) CurerChoice
	candidacy      func(View) bool
	campaign       func(View) string
	electionBallot func(View, []int) int
	direction      func(View) models.Direction
	successor      func(View, []int) int

	mu    sync.Mutex
	calls []string
}

func (s *script) record(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
}

func (s *script) called(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (s *script) Speak(_ context.Context, v View) (string, error) {
	s.record("speak")
	if s.speak == nil {
		return "", nil
	}
	return s.speak(v), nil
}

func (s *script) CastBallot(_ context.Context, v View, candidates []int) (int, error) {
	s.record("ballot")
	if s.ballot == nil {
		return Abstain, nil
	}
	return s.ballot(v, candidates), nil
}

func (s *script) ChooseNightTarget(_ context.Context, v View, targets []int, kind models.ActionKind) (int, error) {
	s.record(string(kind))
	if s.night == nil {
		return Abstain, nil
	}
	return s.night(v, targets, kind), nil
}

func (s *script) FactionDiscussion(_ context.Context, v View, round int) (string, error) {
	s.record("discuss")
	if s.discuss == nil {
		return "", nil
	}
	return s.discuss(v, round), nil
}

func (s *script) ChooseCurerAction(_ context.Context, v View, opts CurerOptions) (CurerChoice, error) {
	s.record("curer")
	if s.curer == nil {
		return CurerChoice{Action: models.ActionSkip}, nil
	}
	return s.curer(v, opts), nil
}

func (s *script) DecideCandidacy(_ context.Context, v View) (bool, error) {
	s.record("candidacy")
	if s.candidacy == nil {
		return false, nil
	}
	return s.candidacy(v), nil
}

func (s *script) CampaignSpeech(_ context.Context, v View) (string, error) {
	s.record("campaign")
	if s.campaign == nil {
		return "", nil
	}
	return s.campaign(v), nil
}

func (s *script) CastElectionBallot(_ context.Context, v View, candidates []int) (int, error) {
	s.record("election ballot")
	if s.electionBallot == nil {
		return Abstain, nil
	}
	return s.electionBallot(v, candidates), nil
}

func (s *script) ChooseDirection(_ context.Context, v View) (models.Direction, error) {
	s.record("direction")
	if s.direction == nil {
		return "", nil
	}
	return s.direction(v), nil
}

func (s *script) ChooseSuccessor(_ context.Context, v View, candidates []int) (int, error) {
	s.record("successor")
	if s.successor == nil {
		return Abstain, nil
	}
	return s.successor(v, candidates), nil
}

// mockProvider checks exact call contracts with testify/mock
type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Speak(ctx context.Context, v View) (string, error) {
	args := m.Called(ctx, v)
	return args.String(0), args.Error(1)
}

func (m *mockProvider) CastBallot(ctx context.Context, v View, candidates []int) (int, error) {
	args := m.Called(ctx, v, candidates)
	return args.Int(0), args.Error(1)
}

func (m *mockProvider) ChooseNightTarget(ctx context.Context, v View, targets []int, kind models.ActionKind) (int, error) {
	args := m.Called(ctx, v, targets, kind)
	return args.Int(0), args.Error(1)
}

func (m *mockProvider) FactionDiscussion(ctx context.Context, v View, round int) (string, error) {
	args := m.Called(ctx, v, round)
	return args.String(0), args.Error(1)
}

func (m *mockProvider) ChooseCurerAction(ctx context.Context, v View, opts CurerOptions) (CurerChoice, error) {
	args := m.Called(ctx, v, opts)
	return args.Get(0).(CurerChoice), args.Error(1)
}

func (m *mockProvider) DecideCandidacy(ctx context.Context, v View) (bool, error) {
	args := m.Called(ctx, v)
	return args.Bool(0), args.Error(1)
}

func (m *mockProvider) CampaignSpeech(ctx context.Context, v View) (string, error) {
	args := m.Called(ctx, v)
	return args.String(0), args.Error(1)
}

func (m *mockProvider) CastElectionBallot(ctx context.Context, v View, candidates []int) (int, error) {
	args := m.Called(ctx, v, candidates)
	return args.Int(0), args.Error(1)
}

func (m *mockProvider) ChooseDirection(ctx context.Context, v View) (models.Direction, error) {
	args := m.Called(ctx, v)
	return args.Get(0).(models.Direction), args.Error(1)
}

func (m *mockProvider) ChooseSuccessor(ctx context.Context, v View, candidates []int) (int, error) {
	args := m.Called(ctx, v, candidates)
	return args.Int(0), args.Error(1)
}

// basicNine is the standard 9-seat layout used by most tests:
// werewolves 1-3, villagers 4-6, seer 7, witch 8, hunter 9.
var basicNine = []models.RoleKind{
	models.RoleEliminator, models.RoleEliminator, models.RoleEliminator,
	models.RolePlain, models.RolePlain, models.RolePlain,
	models.RoleSeer, models.RoleCurer, models.RoleMarksman,
}

type testGame struct {
	engine  *Engine
	rec     *models.Record
	scripts map[int]*script
	events  *events.Recorder
}

func newTestGame(t *testing.T, kinds ...models.RoleKind) *testGame {
	t.Helper()
	roster := make([]*models.Participant, 0, len(kinds))
	scripts := make(map[int]*script, len(kinds))
	providers := make(map[int]Provider, len(kinds))
	for i, kind := range kinds {
		seat := i + 1
		roster = append(roster, models.NewParticipant(seat, "P"+string(rune('0'+seat)), seat, models.MustRole(kind), false))
		scripts[seat] = &script{}
		providers[seat] = scripts[seat]
	}
	rec := models.NewRecord("test-game", roster)

	recorder := &events.Recorder{}
	bus := events.NewBroadcaster(zerolog.Nop())
	bus.Subscribe(events.Spectator, recorder)

	e := New(rec, providers, Deps{
		Rand:   NewRand(42),
		Log:    zerolog.Nop(),
		Events: bus,
	})
	return &testGame{engine: e, rec: rec, scripts: scripts, events: recorder}
}

// each applies fn to the scripts of the given seats
func (g *testGame) each(seats []int, fn func(*script)) {
	for _, s := range seats {
		fn(g.scripts[s])
	}
}

func (g *testGame) player(id int) *models.Participant {
	p, ok := g.rec.Participant(id)
	if !ok {
		panic("no participant")
	}
	return p
}

func always(id int) func(View, []int, models.ActionKind) int {
	return func(View, []int, models.ActionKind) int { return id }
}

func seats(ids ...int) []int { return ids }
