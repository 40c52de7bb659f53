package players

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronzipp/werewolf/internal/game"
	"github.com/aaronzipp/werewolf/internal/models"
)

type reply struct {
	text string
	err  error
}

// canned returns its replies in order and records every prompt
type canned struct {
	replies []reply
	prompts []string
}

func (c *canned) Generate(_ context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	if len(c.replies) == 0 {
		return "", errors.New("no reply scripted")
	}
	r := c.replies[0]
	c.replies = c.replies[1:]
	return r.text, r.err
}

func says(texts ...string) *canned {
	c := &canned{}
	for _, t := range texts {
		c.replies = append(c.replies, reply{text: t})
	}
	return c
}

func viewFor(self int, role models.RoleKind) game.View {
	camp := models.CampAllied
	if role == models.RoleEliminator {
		camp = models.CampHostile
	}
	v := game.View{Game: models.Snapshot{Round: 2}}
	for id := 1; id <= 6; id++ {
		p := models.PlayerSummary{ID: id, Name: "AI-" + string(rune('0'+id)), Seat: id, Alive: true}
		if id == self {
			p.Role, p.Camp = role, camp
			v.Self = p
		}
		v.Game.Players = append(v.Game.Players, p)
	}
	return v
}

func TestExtractID(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		allowed []int
		id      int
		ok      bool
	}{
		{"plain number", "I vote for 4", []int{3, 4}, 4, true},
		{"skips disallowed numbers", "In round 2 I think 5 is lying", []int{5}, 5, true},
		{"zero abstains", "0", []int{1, 2}, 0, true},
		{"first allowed wins", "3 or 4", []int{3, 4}, 3, true},
		{"nothing usable", "no idea", []int{1}, 0, false},
		{"only disallowed", "player 9", []int{1, 2}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractID(tt.text, tt.allowed)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.id, id)
		})
	}
}

func TestAutoBallotUsesGeneratedID(t *testing.T) {
	gen := says("Player 5 has been very quiet, I vote 5.")
	a := NewAuto(gen, 1, zerolog.Nop())

	got, err := a.CastBallot(context.Background(), viewFor(2, models.RolePlain), []int{1, 3, 5})

	require.NoError(t, err)
	assert.Equal(t, 5, got)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "AI-5 (#5)")
}

func TestAutoBallotFallsBackToCandidate(t *testing.T) {
	a := NewAuto(llm0(), 1, zerolog.Nop())
	candidates := []int{1, 3, 5}

	for range 20 {
		got, err := a.CastBallot(context.Background(), viewFor(2, models.RolePlain), candidates)
		require.NoError(t, err)
		assert.Contains(t, candidates, got)
	}
}

func TestAutoKillFallbackAvoidsPack(t *testing.T) {
	a := NewAuto(llm0(), 3, zerolog.Nop())
	v := viewFor(1, models.RoleEliminator)
	v.Teammates = []int{2}

	for range 20 {
		got, err := a.ChooseNightTarget(context.Background(), v, []int{1, 2, 3, 4}, models.ActionKill)
		require.NoError(t, err)
		assert.Contains(t, []int{3, 4}, got)
	}
}

func TestAutoSkipReply(t *testing.T) {
	a := NewAuto(says("0, I pass"), 1, zerolog.Nop())

	got, err := a.ChooseNightTarget(context.Background(), viewFor(7, models.RoleSeer), []int{1, 2}, models.ActionInspect)

	require.NoError(t, err)
	assert.Equal(t, game.Abstain, got)
}

func TestAutoCurerNeverCuresSelf(t *testing.T) {
	a := NewAuto(llm0(), 5, zerolog.Nop())
	v := viewFor(4, models.RoleCurer)
	opts := game.CurerOptions{Victim: 4, CanCure: true, CanPoison: true, PoisonTargets: []int{1, 2, 3, 5, 6}}

	skips := 0
	for range 100 {
		c, err := a.ChooseCurerAction(context.Background(), v, opts)
		require.NoError(t, err)
		assert.NotEqual(t, models.ActionCure, c.Action)
		switch c.Action {
		case models.ActionSkip:
			skips++
		case models.ActionPoison:
			assert.NotEqual(t, 4, c.Target)
		}
	}
	assert.Positive(t, skips, "the witch skips some nights")
	assert.Less(t, skips, 100)
}

func TestAutoCurerWithNothingToDoSkips(t *testing.T) {
	a := NewAuto(llm0(), 5, zerolog.Nop())

	c, err := a.ChooseCurerAction(context.Background(), viewFor(4, models.RoleCurer), game.CurerOptions{})

	require.NoError(t, err)
	assert.Equal(t, models.ActionSkip, c.Action)
}

func TestAutoElectionFavorsTeammate(t *testing.T) {
	a := NewAuto(llm0(), 9, zerolog.Nop())
	v := viewFor(1, models.RoleEliminator)
	v.Teammates = []int{3}

	for range 20 {
		got, err := a.CastElectionBallot(context.Background(), v, []int{2, 3, 5})
		require.NoError(t, err)
		assert.Equal(t, 3, got)
	}
}

func TestAutoSuccessor(t *testing.T) {
	t.Run("generated tear", func(t *testing.T) {
		a := NewAuto(says("0"), 1, zerolog.Nop())
		got, err := a.ChooseSuccessor(context.Background(), viewFor(2, models.RolePlain), []int{1, 3})
		require.NoError(t, err)
		assert.Equal(t, game.Abstain, got)
	})
	t.Run("seer trusts clean inspections", func(t *testing.T) {
		a := NewAuto(llm0(), 1, zerolog.Nop())
		v := viewFor(2, models.RoleSeer)
		v.Inspections = []models.Inspection{{TargetID: 3, Hostile: true}, {TargetID: 5}}
		for range 10 {
			got, err := a.ChooseSuccessor(context.Background(), v, []int{1, 3, 5})
			require.NoError(t, err)
			assert.Equal(t, 5, got)
		}
	})
	t.Run("werewolf passes to the pack", func(t *testing.T) {
		a := NewAuto(llm0(), 1, zerolog.Nop())
		v := viewFor(1, models.RoleEliminator)
		v.Teammates = []int{4}
		got, err := a.ChooseSuccessor(context.Background(), v, []int{2, 4})
		require.NoError(t, err)
		assert.Equal(t, 4, got)
	})
}

func TestAutoCandidacy(t *testing.T) {
	yes := NewAuto(says("Yes, I will run."), 1, zerolog.Nop())
	run, err := yes.DecideCandidacy(context.Background(), viewFor(2, models.RolePlain))
	require.NoError(t, err)
	assert.True(t, run)

	no := NewAuto(says("No. I know better."), 1, zerolog.Nop())
	run, err = no.DecideCandidacy(context.Background(), viewFor(2, models.RoleSeer))
	require.NoError(t, err)
	assert.False(t, run)

	// without a model the odds depend on the role
	runs := 0
	a := NewAuto(llm0(), 42, zerolog.Nop())
	for range 1000 {
		if ok, _ := a.DecideCandidacy(context.Background(), viewFor(2, models.RoleSeer)); ok {
			runs++
		}
	}
	assert.InDelta(t, 700, runs, 80)
}

func TestAutoSpeechFallback(t *testing.T) {
	a := NewAuto(llm0(), 1, zerolog.Nop())
	v := viewFor(2, models.RolePlain)

	speech, err := a.Speak(context.Background(), v)
	require.NoError(t, err)
	assert.NotEmpty(t, speech)

	campaign, err := a.CampaignSpeech(context.Background(), v)
	require.NoError(t, err)
	assert.Contains(t, campaign, "AI-2")
}

func TestPromptsKeepFactionPrivate(t *testing.T) {
	secret := models.LogEntry{Round: 1, SpeakerName: "AI-1", Content: "let's kill 4"}

	wolf := viewFor(1, models.RoleEliminator)
	wolf.Faction = []models.LogEntry{secret}
	assert.Contains(t, speechPrompt(wolf), "let's kill 4")

	villager := viewFor(4, models.RolePlain)
	assert.NotContains(t, speechPrompt(villager), "werewolf channel")
}

func llm0() *canned { return &canned{} }
