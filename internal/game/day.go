package game

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/aaronzipp/werewolf/internal/events"
	"github.com/aaronzipp/werewolf/internal/models"
)

func (e *Engine) day(ctx context.Context) {
	e.setPhase(models.PhaseDay)
	e.announceDeaths(ctx)

	e.rec.Direction = models.Clockwise
	if len(e.lastDeaths) == 0 {
		e.rec.LastDeathSeat = 0
	} else {
		e.rec.LastDeathSeat = e.minSeat(e.lastDeaths)
		if sheriff := e.rec.Sheriff(); sheriff != nil && sheriff.IsAlive() {
			dir := ask(ctx, e, sheriff, "speaking direction", func(ctx context.Context, p Provider, v View) (models.Direction, error) {
				return p.ChooseDirection(ctx, v)
			})
			if dir == models.Counterclockwise {
				e.rec.Direction = dir
			}
			e.announce(fmt.Sprintf("Sheriff %s chooses %s speaking order.", sheriff.Label(), e.rec.Direction))
		}
	}

	order := SpeakingOrder(e.rec, e.rng)
	labels := make([]string, 0, len(order))
	for _, p := range order {
		labels = append(labels, p.Label())
	}
	e.announce("Speaking order: " + strings.Join(labels, ", "))

	for _, p := range order {
		if !p.IsAlive() {
			continue
		}
		text := strings.TrimSpace(ask(ctx, e, p, "speech", func(ctx context.Context, pr Provider, v View) (string, error) {
			return pr.Speak(ctx, v)
		}))
		if text == "" {
			e.publish(events.Event{Kind: events.KindSpeech, SpeakerID: p.ID, Speaker: p.Name, Text: "(stays silent)"})
			continue
		}
		e.rec.AddSpeech(p, text)
		e.publish(events.Event{Kind: events.KindSpeech, SpeakerID: p.ID, Speaker: p.Name, Text: text})
	}

	if e.rec.Round == 1 && !e.rec.ElectionDone {
		e.election(ctx)
	}
}

func (e *Engine) announceDeaths(ctx context.Context) {
	if len(e.lastDeaths) == 0 {
		e.announce(e.narrate(ctx, peacefulPrompt(e.rec.Round), "Last night was peaceful. Nobody died."))
		return
	}
	names := make([]string, 0, len(e.lastDeaths))
	for _, id := range e.lastDeaths {
		p, _ := e.rec.Participant(id)
		names = append(names, p.Label())
	}
	list := strings.Join(names, ", ")
	e.announce(e.narrate(ctx, deathPrompt(list), fmt.Sprintf("Last night, %s died.", list)))
}

func (e *Engine) minSeat(ids []int) int {
	seat := 0
	for _, id := range ids {
		if p, ok := e.rec.Participant(id); ok && (seat == 0 || p.Seat() < seat) {
			seat = p.Seat()
		}
	}
	return seat
}

// SpeakingOrder returns the living participants in today's speaking order.
// Round 1 is a random permutation. Later rounds go by ascending seat; after
// a death the order starts at the first living seat next to the lowest
// death seat, stepping in the sheriff's direction.
func SpeakingOrder(rec *models.Record, rng *rand.Rand) []*models.Participant {
	alive := rec.Alive()
	if rec.Round <= 1 {
		rng.Shuffle(len(alive), func(i, j int) { alive[i], alive[j] = alive[j], alive[i] })
		return alive
	}
	if rec.LastDeathSeat == 0 {
		return alive
	}
	start := rec.NextLivingSeat(rec.LastDeathSeat, rec.Direction)
	idx := slices.IndexFunc(alive, func(p *models.Participant) bool { return p.Seat() == start })
	if idx <= 0 {
		return alive
	}
	return slices.Concat(alive[idx:], alive[:idx])
}
