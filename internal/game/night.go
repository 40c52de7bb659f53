package game

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/aaronzipp/werewolf/internal/events"
	"github.com/aaronzipp/werewolf/internal/models"
)

// nightOrder lists the roles that act at night, lowest priority first
func nightOrder() []models.RoleKind {
	var kinds []models.RoleKind
	for _, k := range models.RoleKinds {
		if models.MustRole(k).HasNightAction() {
			kinds = append(kinds, k)
		}
	}
	slices.SortStableFunc(kinds, func(a, b models.RoleKind) int {
		return cmp.Compare(models.MustRole(a).Priority(), models.MustRole(b).Priority())
	})
	return kinds
}

func (e *Engine) night(ctx context.Context) {
	e.setPhase(models.PhaseNight)
	e.banner()
	e.announce(e.narrate(ctx, nightPrompt(e.rec.Round),
		fmt.Sprintf("Night %d falls. Everyone, close your eyes.", e.rec.Round)))

	for _, kind := range nightOrder() {
		if kind == models.RoleEliminator {
			e.eliminatorConsensus(ctx)
			continue
		}
		for _, p := range e.rec.AliveWithRole(kind) {
			if !p.Role.CanAct(e.rec, p) {
				continue
			}
			res := e.apply(e.nightAction(ctx, p))
			// every witch decision reaches the ledger, refusals as skips
			if kind == models.RoleCurer && !res.Success {
				e.rec.RecordCurerAction(models.ActionSkip, nil, p.Role)
			}
		}
	}
}

func (e *Engine) banner() {
	sheriff := "none"
	if s := e.rec.Sheriff(); s != nil && s.IsAlive() {
		sheriff = s.Label()
	}
	snap := e.rec.Snapshot()
	e.publish(events.Event{
		Kind: events.KindRound,
		Text: fmt.Sprintf("Round %d: %d werewolves vs %d villagers alive, sheriff %s",
			e.rec.Round, len(e.rec.AliveHostiles()), len(e.rec.AliveAllies()), sheriff),
		Snapshot: &snap,
	})
}

// eliminatorConsensus runs the werewolf discussion and kill proposals. The
// plurality target becomes the pending victim; ties are broken at random.
func (e *Engine) eliminatorConsensus(ctx context.Context) {
	pack := e.rec.AliveHostiles()
	if len(pack) == 0 {
		return
	}

	for round := 1; round <= e.settings.DiscussionRounds; round++ {
		for _, wolf := range pack {
			text := strings.TrimSpace(ask(ctx, e, wolf, "faction discussion",
				func(ctx context.Context, p Provider, v View) (string, error) {
					return p.FactionDiscussion(ctx, v, round)
				}))
			if text == "" {
				continue
			}
			e.rec.AddFactionMessage(models.CampHostile, wolf, text)
			e.publish(events.Event{
				Kind:      events.KindFaction,
				Audience:  events.Faction(models.CampHostile),
				SpeakerID: wolf.ID,
				Speaker:   wolf.Name,
				Text:      text,
			})
		}
	}

	// any living participant may be proposed, including the pack itself
	targets := e.rec.AliveIDs(nil)
	var ballots []Ballot
	for _, wolf := range pack {
		id := ask(ctx, e, wolf, "kill proposal", func(ctx context.Context, p Provider, v View) (int, error) {
			return p.ChooseNightTarget(ctx, v, targets, models.ActionKill)
		})
		target := e.pickLiving(id, targets)
		if target == nil {
			e.factionNote(wolf, "abstains from the kill")
			continue
		}
		ballots = append(ballots, Ballot{VoterID: wolf.ID, TargetID: target.ID, Weight: 1})
		e.factionNote(wolf, "proposes to kill "+target.Label())
	}

	result := CountVotes(ballots)
	victimID := PickPlurality(result, e.rng)
	if victimID == Abstain {
		e.factionNote(nil, "no kill tonight")
		e.log.Info().Int("round", e.rec.Round).Msg("werewolves made no kill")
		return
	}
	victim, _ := e.rec.Participant(victimID)
	if result.IsTie {
		e.log.Debug().Ints("tied", result.Leaders).Int("victim", victimID).Msg("kill proposals tied, picked at random")
	}
	e.apply(NewKill(nil, victim, true))
}

func (e *Engine) factionNote(wolf *models.Participant, text string) {
	e.rec.AddFactionMessage(models.CampHostile, wolf, text)
	ev := events.Event{
		Kind:     events.KindFaction,
		Audience: events.Faction(models.CampHostile),
		Text:     text,
	}
	if wolf != nil {
		ev.SpeakerID, ev.Speaker = wolf.ID, wolf.Name
	}
	e.publish(ev)
}

// nightAction asks the holder of a night role for tonight's action. It
// returns nil when the holder abstains.
func (e *Engine) nightAction(ctx context.Context, p *models.Participant) Action {
	switch p.Role.Kind() {
	case models.RoleSeer:
		targets := e.rec.AliveIDs(func(q *models.Participant) bool { return q.ID != p.ID })
		id := ask(ctx, e, p, "inspection", func(ctx context.Context, pr Provider, v View) (int, error) {
			return pr.ChooseNightTarget(ctx, v, targets, models.ActionInspect)
		})
		if target := e.pickLiving(id, targets); target != nil {
			return NewInspect(p, target)
		}
	case models.RoleCurer:
		return e.curerAction(ctx, p)
	}
	return nil
}

func (e *Engine) curerAction(ctx context.Context, p *models.Participant) Action {
	available := p.Role.AvailableActions(e.rec)
	opts := CurerOptions{
		CanCure:       slices.Contains(available, models.ActionCure),
		CanPoison:     slices.Contains(available, models.ActionPoison),
		PoisonTargets: e.rec.AliveIDs(func(q *models.Participant) bool { return q.ID != p.ID }),
	}
	if e.rec.IsAlive(e.rec.PendingVictim) {
		opts.Victim = e.rec.PendingVictim
	}
	e.log.Debug().Int("player", p.ID).Int("resources", p.Role.Resources()).Msg("witch wakes")
	e.publish(events.Event{
		Kind:     events.KindNightAction,
		Audience: events.Only(p.ID),
		TargetID: opts.Victim,
		Text:     curerBriefing(e.rec, opts),
	})

	choice := ask(ctx, e, p, "witch action", func(ctx context.Context, pr Provider, v View) (CurerChoice, error) {
		return pr.ChooseCurerAction(ctx, v, opts)
	})
	switch choice.Action {
	case models.ActionCure:
		if !opts.CanCure {
			return nil
		}
		victim, _ := e.rec.Participant(opts.Victim)
		return NewCure(p, victim)
	case models.ActionPoison:
		if !opts.CanPoison {
			return nil
		}
		if target := e.pickLiving(choice.Target, opts.PoisonTargets); target != nil {
			return NewPoison(p, target)
		}
	}
	return nil
}

func curerBriefing(rec *models.Record, opts CurerOptions) string {
	var b strings.Builder
	if opts.Victim == 0 {
		b.WriteString("Nobody was attacked tonight.")
	} else {
		victim, _ := rec.Participant(opts.Victim)
		b.WriteString("Tonight the werewolves attacked " + victim.Label() + ".")
	}
	if opts.CanCure {
		b.WriteString(" You can cure them.")
	}
	if opts.CanPoison {
		b.WriteString(" You can poison someone.")
	}
	return b.String()
}
