package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/aaronzipp/werewolf/internal/events"
	"github.com/aaronzipp/werewolf/internal/models"
)

// vote collects one ballot per living participant. A strict maximum is
// exiled; a tie at the top exiles nobody.
func (e *Engine) vote(ctx context.Context) {
	e.setPhase(models.PhaseVote)
	e.rec.ResetBallots()

	targets := e.rec.AliveIDs(nil)
	var ballots []Ballot
	for _, voter := range e.rec.Alive() {
		id := ask(ctx, e, voter, "exile ballot", func(ctx context.Context, p Provider, v View) (int, error) {
			return p.CastBallot(ctx, v, targets)
		})
		target := e.pickLiving(id, targets)
		if target == nil {
			e.publish(events.Event{Kind: events.KindBallot, SpeakerID: voter.ID, Speaker: voter.Name, Text: voter.Label() + " abstains"})
			continue
		}
		act := NewBallot(voter, target)
		if res := e.apply(act); res.Success {
			ballots = append(ballots, Ballot{VoterID: voter.ID, TargetID: target.ID, Weight: act.Weight})
		}
	}

	result := CountVotes(ballots)
	e.announce(e.tallyLine(result))
	if result.Winner == Abstain {
		if result.IsTie {
			e.announce("The vote is tied. Nobody is exiled today.")
		} else {
			e.announce("Nobody voted. Nobody is exiled today.")
		}
		e.log.Info().Int("round", e.rec.Round).Ints("tied", result.Leaders).Msg("no exile")
		return
	}

	exiled, _ := e.rec.Participant(result.Winner)
	e.announce(e.narrate(ctx, exilePrompt(exiled.Label(), result.Max),
		fmt.Sprintf("%s is exiled with %s votes.", exiled.Label(), formatWeight(result.Max))))
	e.resolveDeaths(ctx, []death{{id: exiled.ID, cause: CauseExiled}})
}

func (e *Engine) tallyLine(result *VoteResult) string {
	if len(result.Counts) == 0 {
		return "Vote tally: no ballots."
	}
	parts := make([]string, 0, len(result.Counts))
	for _, p := range e.rec.Roster() {
		if w, ok := result.Counts[p.ID]; ok {
			parts = append(parts, fmt.Sprintf("%s %s", p.Label(), formatWeight(w)))
		}
	}
	return "Vote tally: " + strings.Join(parts, ", ")
}
