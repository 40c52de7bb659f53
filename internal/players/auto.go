// Package players implements the decision providers the engine talks to:
// a person at the terminal and an autonomous player.
package players

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/aaronzipp/werewolf/internal/game"
	"github.com/aaronzipp/werewolf/internal/llm"
	"github.com/aaronzipp/werewolf/internal/models"
)

// Candidacy odds when the model gives no clear answer
const (
	specialCandidacy = 0.7
	hostileCandidacy = 0.5
	plainCandidacy   = 0.3
	curerSkipOdds    = 0.3
	tearOdds         = 0.5
)

var (
	numberRe = regexp.MustCompile(`\d+`)
	answerRe = regexp.MustCompile(`(?i)\b(yes|no)\b`)
)

// ExtractID returns the first number in text that is one of allowed or 0.
// ok is false when no such number appears.
func ExtractID(text string, allowed []int) (id int, ok bool) {
	for _, m := range numberRe.FindAllString(text, -1) {
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if n == game.Abstain || slices.Contains(allowed, n) {
			return n, true
		}
	}
	return 0, false
}

// Auto is an autonomous participant. Free text comes from the generator;
// choices fall back to simple heuristics whenever generation fails or the
// reply names nobody valid.
type Auto struct {
	gen llm.Generator
	log zerolog.Logger

	mu  sync.Mutex // guards rng, calls abandoned on timeout may still be running
	rng *rand.Rand
}

var _ game.Provider = (*Auto)(nil)

func NewAuto(gen llm.Generator, seed uint64, log zerolog.Logger) *Auto {
	if gen == nil {
		gen = llm.Disabled{}
	}
	return &Auto{gen: gen, rng: game.NewRand(seed), log: log}
}

func (a *Auto) float() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rng.Float64()
}

func (a *Auto) pick(ids []int) int {
	if len(ids) == 0 {
		return game.Abstain
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return ids[a.rng.IntN(len(ids))]
}

func (a *Auto) generate(ctx context.Context, v game.View, decision, prompt string) string {
	text, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		a.log.Debug().Err(err).Int("player", v.Self.ID).Str("decision", decision).Msg("generation failed")
		return ""
	}
	return text
}

// choose asks the model for one id from options. A reply of 0 abstains;
// anything unusable falls back to fallback().
func (a *Auto) choose(ctx context.Context, v game.View, decision, prompt string, options []int, fallback func() int) int {
	if len(options) == 0 {
		return game.Abstain
	}
	if id, ok := ExtractID(a.generate(ctx, v, decision, prompt), options); ok {
		return id
	}
	return fallback()
}

func (a *Auto) Speak(ctx context.Context, v game.View) (string, error) {
	if text := a.generate(ctx, v, "speech", speechPrompt(v)); text != "" {
		return text, nil
	}
	return "I have nothing to add.", nil
}

func (a *Auto) CastBallot(ctx context.Context, v game.View, candidates []int) (int, error) {
	return a.choose(ctx, v, "ballot", ballotPrompt(v, candidates), candidates, func() int {
		return a.pick(candidates)
	}), nil
}

func (a *Auto) ChooseNightTarget(ctx context.Context, v game.View, targets []int, kind models.ActionKind) (int, error) {
	random := func() int { return a.pick(targets) }
	switch kind {
	case models.ActionKill:
		// prefer victims outside the pack when the model is silent
		return a.choose(ctx, v, string(kind), targetPrompt(v, targets, kind), targets, func() int {
			outsiders := slices.DeleteFunc(slices.Clone(targets), func(id int) bool {
				return id == v.Self.ID || slices.Contains(v.Teammates, id)
			})
			if len(outsiders) > 0 {
				return a.pick(outsiders)
			}
			return random()
		}), nil
	case models.ActionInspect, models.ActionShoot:
		return a.choose(ctx, v, string(kind), targetPrompt(v, targets, kind), targets, random), nil
	default:
		return random(), nil
	}
}

func (a *Auto) FactionDiscussion(ctx context.Context, v game.View, round int) (string, error) {
	if text := a.generate(ctx, v, "faction", factionPrompt(v, round)); text != "" {
		return text, nil
	}
	return "I suggest we kill the most suspicious player.", nil
}

// ChooseCurerAction never cures the witch herself and skips now and then
func (a *Auto) ChooseCurerAction(_ context.Context, v game.View, opts game.CurerOptions) (game.CurerChoice, error) {
	var choices []game.CurerChoice
	if opts.CanCure && opts.Victim != game.Abstain && opts.Victim != v.Self.ID {
		choices = append(choices, game.CurerChoice{Action: models.ActionCure, Target: opts.Victim})
	}
	if opts.CanPoison {
		targets := slices.DeleteFunc(slices.Clone(opts.PoisonTargets), func(id int) bool { return id == v.Self.ID })
		if len(targets) > 0 {
			choices = append(choices, game.CurerChoice{Action: models.ActionPoison, Target: a.pick(targets)})
		}
	}
	skip := game.CurerChoice{Action: models.ActionSkip}
	if len(choices) == 0 || a.float() < curerSkipOdds {
		return skip, nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return choices[a.rng.IntN(len(choices))], nil
}

func (a *Auto) DecideCandidacy(ctx context.Context, v game.View) (bool, error) {
	if m := answerRe.FindStringSubmatch(a.generate(ctx, v, "candidacy", candidacyPrompt(v))); m != nil {
		return strings.EqualFold(m[1], "yes"), nil
	}
	odds := plainCandidacy
	switch {
	case v.Self.Camp == models.CampHostile:
		odds = hostileCandidacy
	case v.Self.Role != models.RolePlain:
		odds = specialCandidacy
	}
	return a.float() < odds, nil
}

func (a *Auto) CampaignSpeech(ctx context.Context, v game.View) (string, error) {
	if text := a.generate(ctx, v, "campaign", campaignPrompt(v)); text != "" {
		return text, nil
	}
	return fmt.Sprintf("I am %s and I am running for sheriff. Please support me.", v.Self.Name), nil
}

// CastElectionBallot backs a fellow werewolf when one is running
func (a *Auto) CastElectionBallot(_ context.Context, v game.View, candidates []int) (int, error) {
	if v.Self.Camp == models.CampHostile {
		var mates []int
		for _, id := range candidates {
			if slices.Contains(v.Teammates, id) {
				mates = append(mates, id)
			}
		}
		if len(mates) > 0 {
			return a.pick(mates), nil
		}
	}
	return a.pick(candidates), nil
}

func (a *Auto) ChooseDirection(context.Context, game.View) (models.Direction, error) {
	if a.float() < 0.5 {
		return models.Counterclockwise, nil
	}
	return models.Clockwise, nil
}

func (a *Auto) ChooseSuccessor(ctx context.Context, v game.View, candidates []int) (int, error) {
	return a.choose(ctx, v, "successor", successorPrompt(v, candidates), candidates, func() int {
		if v.Self.Camp == models.CampHostile {
			var mates []int
			for _, id := range candidates {
				if slices.Contains(v.Teammates, id) {
					mates = append(mates, id)
				}
			}
			if len(mates) > 0 {
				return a.pick(mates)
			}
			if a.float() < tearOdds {
				return game.Abstain
			}
			return a.pick(candidates)
		}
		var trusted []int
		for _, in := range v.Inspections {
			if !in.Hostile && slices.Contains(candidates, in.TargetID) && !slices.Contains(trusted, in.TargetID) {
				trusted = append(trusted, in.TargetID)
			}
		}
		if len(trusted) > 0 {
			return a.pick(trusted)
		}
		return a.pick(candidates)
	}), nil
}
