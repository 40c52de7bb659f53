package game

import (
	"context"
	"fmt"
	"slices"

	"github.com/aaronzipp/werewolf/internal/events"
	"github.com/aaronzipp/werewolf/internal/models"
)

// Cause is why a participant died
type Cause string

const (
	CauseKilled   Cause = "killed"
	CausePoisoned Cause = "poisoned"
	CauseShot     Cause = "shot"
	CauseExiled   Cause = "exiled"
)

type death struct {
	id      int
	cause   Cause
	applied bool // already moved to the dead partition by the action
}

// dawn turns the staged night outcome into deaths. A participant both
// attacked and poisoned dies once, by poison.
func (e *Engine) dawn(ctx context.Context) []int {
	var pending []death
	poisoned := slices.Compact(slices.Sorted(slices.Values(e.rec.Poisoned)))
	if v := e.rec.PendingVictim; v != 0 && !e.rec.Saved && !slices.Contains(poisoned, v) {
		pending = append(pending, death{id: v, cause: CauseKilled})
	}
	for _, id := range poisoned {
		pending = append(pending, death{id: id, cause: CausePoisoned})
	}
	if e.rec.Saved {
		e.log.Info().Int("round", e.rec.Round).Int("saved", e.rec.PendingVictim).Msg("victim cured")
	}
	e.rec.ClearNight()

	e.lastDeaths = e.resolveDeaths(ctx, pending)
	return e.lastDeaths
}

// resolveDeaths applies deaths and drains every cascade they trigger
// (hunter shots, sheriff succession) before returning the ids that died.
// A participant staged for poison keeps that cause even when a shot
// reaches them first.
func (e *Engine) resolveDeaths(ctx context.Context, queue []death) []int {
	poisoned := make(map[int]bool)
	for _, d := range queue {
		if d.cause == CausePoisoned {
			poisoned[d.id] = true
		}
	}

	var died []int
	for len(queue) > 0 {
		d := queue[0]
		queue = queue[1:]

		p, ok := e.rec.Participant(d.id)
		if !ok {
			continue
		}
		if !d.applied && !e.rec.MarkDead(d.id) {
			continue
		}
		died = append(died, d.id)
		e.log.Info().Int("round", e.rec.Round).Int("player", p.ID).Str("cause", string(d.cause)).Msg("player died")
		e.publish(events.Event{
			Kind:     events.KindDeath,
			TargetID: p.ID,
			Text:     deathLine(p, d.cause),
		})

		for _, next := range e.onDeath(ctx, p, d.cause) {
			if poisoned[next.id] {
				next.cause = CausePoisoned
			}
			queue = append(queue, next)
		}
	}
	return died
}

func deathLine(p *models.Participant, cause Cause) string {
	switch cause {
	case CauseShot:
		return p.Label() + " was shot."
	case CauseExiled:
		return p.Label() + " was exiled."
	default:
		// night causes stay hidden
		return p.Label() + " did not survive the night."
	}
}

// onDeath runs the dying participant's triggers: the role hook first,
// then sheriff succession.
func (e *Engine) onDeath(ctx context.Context, p *models.Participant, cause Cause) []death {
	var next []death
	if act := e.deathAction(ctx, p, cause); act != nil {
		if res := e.apply(act); res.Success {
			next = append(next, death{id: act.Target().ID, cause: CauseShot, applied: true})
		}
	}
	if e.rec.SheriffID() == p.ID {
		e.succession(ctx, p)
	}
	return next
}

// deathAction is the role's on-death hook; only the hunter has one
func (e *Engine) deathAction(ctx context.Context, p *models.Participant, cause Cause) Action {
	switch p.Role.Kind() {
	case models.RoleMarksman:
		if cause == CausePoisoned || !p.Role.CanShoot {
			e.log.Debug().Int("player", p.ID).Str("cause", string(cause)).Msg("hunter cannot shoot")
			return nil
		}
		targets := e.rec.AliveIDs(nil)
		if len(targets) == 0 {
			return nil
		}
		id := ask(ctx, e, p, "hunter shot", func(ctx context.Context, pr Provider, v View) (int, error) {
			return pr.ChooseNightTarget(ctx, v, targets, models.ActionShoot)
		})
		target := e.pickLiving(id, targets)
		if target == nil {
			e.announce(fmt.Sprintf("The hunter %s holds fire.", p.Label()))
			return nil
		}
		return NewShoot(p, target)
	}
	return nil
}

// succession asks the dying sheriff for an heir; no heir tears the badge
func (e *Engine) succession(ctx context.Context, sheriff *models.Participant) {
	candidates := e.rec.AliveIDs(nil)
	var heir *models.Participant
	if len(candidates) > 0 {
		id := ask(ctx, e, sheriff, "sheriff succession", func(ctx context.Context, p Provider, v View) (int, error) {
			return p.ChooseSuccessor(ctx, v, candidates)
		})
		heir = e.pickLiving(id, candidates)
	}

	if heir == nil {
		e.rec.SetSheriff(0)
		e.announce(fmt.Sprintf("Sheriff %s tears up the badge. There is no sheriff now.", sheriff.Label()))
		e.log.Info().Int("sheriff", sheriff.ID).Msg("sheriff badge torn")
	} else {
		e.rec.SetSheriff(heir.ID)
		e.announce(fmt.Sprintf("Sheriff %s passes the badge to %s.", sheriff.Label(), heir.Label()))
		e.log.Info().Int("sheriff", sheriff.ID).Int("heir", heir.ID).Msg("sheriff badge passed")
	}
	e.publish(events.Event{Kind: events.KindSheriff, SpeakerID: sheriff.ID, TargetID: e.rec.SheriffID()})
}
