package game

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aaronzipp/werewolf/internal/events"
	"github.com/aaronzipp/werewolf/internal/models"
)

// Publisher receives engine events for presentation
type Publisher interface {
	Publish(events.Event)
}

// Narrator turns a moment of the game into flavor text. It must fail open
// by returning fallback.
type Narrator interface {
	Narrate(ctx context.Context, prompt, fallback string) string
}

// Deps are the engine's collaborators; zero values fall back to no-ops
type Deps struct {
	Rand     *rand.Rand
	Log      zerolog.Logger
	Events   Publisher
	Narrator Narrator
	Settings Settings
}

// Outcome is the result of a finished game
type Outcome struct {
	Winner models.Camp
	Reason string
	Rounds int
	Log    models.GameLog
}

// Engine drives one game from setup to a victory
type Engine struct {
	rec        *models.Record
	providers  map[int]Provider
	rng        *rand.Rand
	log        zerolog.Logger
	events     Publisher
	narrator   Narrator
	settings   Settings
	lastDeaths []int // deaths of the latest dawn, in order
}

type discard struct{}

func (discard) Publish(events.Event) {}

// New creates an engine for a record. Every participant needs a provider;
// a missing one abstains on every decision.
func New(rec *models.Record, providers map[int]Provider, deps Deps) *Engine {
	e := &Engine{
		rec:       rec,
		providers: providers,
		rng:       deps.Rand,
		log:       deps.Log.With().Str("game", rec.GameID).Logger(),
		events:    deps.Events,
		narrator:  deps.Narrator,
		settings:  deps.Settings.withDefaults(),
	}
	if e.rng == nil {
		e.rng = NewRand(1)
	}
	if e.events == nil {
		e.events = discard{}
	}
	return e
}

// Record exposes the game record for inspection after Run returns
func (e *Engine) Record() *models.Record {
	return e.rec
}

// Run plays rounds until one camp wins, the round cap is reached, or ctx
// is cancelled.
func (e *Engine) Run(ctx context.Context) (Outcome, error) {
	e.start()
	for {
		if err := ctx.Err(); err != nil {
			e.log.Warn().Err(err).Int("round", e.rec.Round).Msg("game interrupted")
			return Outcome{}, fmt.Errorf("game %s interrupted: %w", e.rec.GameID, err)
		}
		if e.rec.Round >= e.settings.MaxRounds {
			return e.finish(ctx, models.NoWinner), nil
		}
		e.rec.Round++

		e.night(ctx)
		e.dawn(ctx)
		if winner, ok := CheckVictory(e.rec); ok {
			return e.finish(ctx, winner), nil
		}

		e.day(ctx)
		if winner, ok := CheckVictory(e.rec); ok {
			return e.finish(ctx, winner), nil
		}

		e.vote(ctx)
		if winner, ok := CheckVictory(e.rec); ok {
			return e.finish(ctx, winner), nil
		}
	}
}

func (e *Engine) start() {
	e.log.Info().Int("players", e.rec.SeatCount()).Str("board", e.rec.Board).Msg("game started")
	snap := e.rec.Snapshot()
	e.publish(events.Event{
		Kind:     events.KindGameStart,
		Text:     fmt.Sprintf("A game of werewolf begins with %d players.", e.rec.SeatCount()),
		Snapshot: &snap,
	})
	for _, p := range e.rec.Roster() {
		text := p.Role.Description()
		if p.IsHostile() {
			var mates []string
			for _, h := range e.rec.Roster() {
				if h.IsHostile() && h.ID != p.ID {
					mates = append(mates, h.Label())
				}
			}
			if len(mates) > 0 {
				text += " Your fellow werewolves: " + strings.Join(mates, ", ") + "."
			}
		}
		e.publish(events.Event{
			Kind:     events.KindRole,
			Audience: events.Only(p.ID),
			TargetID: p.ID,
			Text:     text,
		})
	}
}

func (e *Engine) finish(ctx context.Context, winner models.Camp) Outcome {
	e.setPhase(models.PhaseEnd)
	reason := VictoryReason(e.rec, winner)
	e.announce(e.narrate(ctx, victoryPrompt(winner, e.rec.Round), victoryFallback(winner)))

	doc := e.rec.Export(winner, reason)
	snap := e.rec.Snapshot()
	e.publish(events.Event{
		Kind:     events.KindGameOver,
		Text:     reason,
		Snapshot: &snap,
		GameLog:  &doc,
	})
	e.log.Info().
		Str("winner", string(winner)).
		Int("rounds", e.rec.Round).
		Int("alive", len(e.rec.Alive())).
		Msg("game over")
	return Outcome{Winner: winner, Reason: reason, Rounds: e.rec.Round, Log: doc}
}

func (e *Engine) setPhase(phase models.Phase) {
	e.rec.Phase = phase
	e.log.Info().Int("round", e.rec.Round).Str("phase", string(phase)).Msg("phase started")
	snap := e.rec.Snapshot()
	e.publish(events.Event{Kind: events.KindPhase, Snapshot: &snap})
}

func (e *Engine) publish(ev events.Event) {
	ev.Round = e.rec.Round
	ev.Phase = e.rec.Phase
	e.events.Publish(ev)
}

// announce logs a public system message and publishes it
func (e *Engine) announce(text string) {
	e.rec.AddAnnouncement(text)
	e.publish(events.Event{Kind: events.KindAnnouncement, Text: text})
}

func (e *Engine) narrate(ctx context.Context, prompt, fallback string) string {
	if e.narrator == nil {
		return fallback
	}
	if text := strings.TrimSpace(e.narrator.Narrate(ctx, prompt, fallback)); text != "" {
		return text
	}
	return fallback
}

// apply executes an action and publishes its effect to the right audience.
// A refused action is logged and treated as a skip.
func (e *Engine) apply(act Action) Result {
	if act == nil {
		return Result{}
	}
	res := act.Execute(e.rec)
	actorID := 0
	if a := act.Actor(); a != nil {
		actorID = a.ID
	}
	if !res.Success {
		e.log.Debug().Err(res.Err).
			Str("action", string(act.Kind())).
			Int("actor", actorID).
			Msg("action refused, treated as skip")
		return res
	}
	e.log.Debug().Str("action", string(act.Kind())).Int("actor", actorID).Int("target", act.Target().ID).Msg("action applied")

	ev := events.Event{SpeakerID: actorID, TargetID: act.Target().ID, Text: res.Message}
	if a := act.Actor(); a != nil {
		ev.Speaker = a.Name
	}
	switch act.Kind() {
	case models.ActionKill:
		ev.Kind, ev.Audience = events.KindNightAction, events.Faction(models.CampHostile)
	case models.ActionInspect:
		ev.Kind, ev.Audience = events.KindInspection, events.Only(actorID)
	case models.ActionCure, models.ActionPoison:
		ev.Kind, ev.Audience = events.KindNightAction, events.Only(actorID)
	case models.ActionBallot:
		ev.Kind = events.KindBallot
	case models.ActionShoot:
		e.announce(res.Message)
		return res
	}
	e.publish(ev)
	return res
}
