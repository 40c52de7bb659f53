package game

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/aaronzipp/werewolf/internal/events"
	"github.com/aaronzipp/werewolf/internal/models"
)

// election runs the one-time sheriff election. Ties go to PK rounds among
// the tied candidates until someone wins outright, nobody votes, or the PK
// cap is reached.
func (e *Engine) election(ctx context.Context) {
	defer func() { e.rec.ElectionDone = true }()
	e.announce("The sheriff election begins.")

	var candidates []int
	for _, p := range e.rec.Alive() {
		if ask(ctx, e, p, "candidacy", func(ctx context.Context, pr Provider, v View) (bool, error) {
			return pr.DecideCandidacy(ctx, v)
		}) {
			candidates = append(candidates, p.ID)
		}
	}

	switch len(candidates) {
	case 0:
		e.announce("Nobody runs for sheriff. There will be no sheriff this game.")
		e.log.Info().Msg("election without candidates")
		return
	case 1:
		e.crown(candidates[0], "runs unopposed")
		return
	}
	e.announce("Candidates: " + e.labels(candidates))

	voters := e.rec.AliveIDs(func(p *models.Participant) bool { return !slices.Contains(candidates, p.ID) })
	contenders := candidates
	for pk := 0; ; pk++ {
		for _, id := range contenders {
			p, _ := e.rec.Participant(id)
			if !p.IsAlive() {
				continue
			}
			text := strings.TrimSpace(ask(ctx, e, p, "campaign speech", func(ctx context.Context, pr Provider, v View) (string, error) {
				return pr.CampaignSpeech(ctx, v)
			}))
			if text == "" {
				continue
			}
			e.rec.AddCampaignSpeech(p, text)
			e.publish(events.Event{Kind: events.KindCampaign, SpeakerID: p.ID, Speaker: p.Name, Text: text})
		}

		result := e.electionBallots(ctx, voters, contenders)
		switch {
		case len(result.Counts) == 0:
			e.announce("No votes were cast. There will be no sheriff this game.")
			e.log.Info().Int("pk", pk).Msg("election ended without votes")
			return
		case result.Winner != Abstain:
			e.crown(result.Winner, fmt.Sprintf("wins with %s votes", formatWeight(result.Max)))
			return
		case pk >= e.settings.MaxPKRounds:
			// PK otherwise repeats until a strict winner or an empty round;
			// voters who keep splitting evenly would never stop it
			e.announce("The election stays tied. There will be no sheriff this game.")
			e.log.Info().Int("pk", pk).Ints("tied", result.Leaders).Msg("election abandoned after PK cap")
			return
		}
		contenders = result.Leaders
		e.announce(fmt.Sprintf("Tie between %s. PK round %d: only they may speak and be voted for.",
			e.labels(contenders), pk+1))
	}
}

// electionBallots collects one unweighted ballot per living voter
func (e *Engine) electionBallots(ctx context.Context, voters, contenders []int) *VoteResult {
	var ballots []Ballot
	for _, id := range voters {
		voter, _ := e.rec.Participant(id)
		if !voter.IsAlive() {
			continue
		}
		choice := ask(ctx, e, voter, "election ballot", func(ctx context.Context, p Provider, v View) (int, error) {
			return p.CastElectionBallot(ctx, v, contenders)
		})
		target := e.pickLiving(choice, contenders)
		if target == nil {
			continue
		}
		act := NewElectionBallot(voter, target)
		if res := e.apply(act); res.Success {
			ballots = append(ballots, Ballot{VoterID: voter.ID, TargetID: target.ID, Weight: act.Weight})
		}
	}
	return CountVotes(ballots)
}

func (e *Engine) crown(id int, how string) {
	e.rec.SetSheriff(id)
	p, _ := e.rec.Participant(id)
	e.announce(fmt.Sprintf("%s %s and becomes sheriff.", p.Label(), how))
	e.publish(events.Event{Kind: events.KindSheriff, TargetID: id})
	e.log.Info().Int("sheriff", id).Msg("sheriff elected")
}

func (e *Engine) labels(ids []int) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if p, ok := e.rec.Participant(id); ok {
			out = append(out, p.Label())
		}
	}
	return strings.Join(out, ", ")
}

func formatWeight(w float64) string {
	return strings.TrimSuffix(fmt.Sprintf("%.1f", w), ".0")
}
