package game

import (
	"fmt"

	"github.com/aaronzipp/werewolf/internal/models"
)

// Result is the outcome of applying an Action
type Result struct {
	Success bool
	Message string
	Data    map[string]any
	Err     error // wraps ErrPrecondition when the action was refused
}

// Action is one proposed effect with a precondition check and an apply step.
// An action is applied at most once; callers must not re-invoke Execute.
type Action interface {
	Kind() models.ActionKind
	Actor() *models.Participant
	Target() *models.Participant
	CanExecute(rec *models.Record) bool
	Execute(rec *models.Record) Result
}

func precondition(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPrecondition, fmt.Sprintf(format, args...))
}

type command struct {
	actor    *models.Participant
	target   *models.Participant
	executed bool
}

func (c *command) Actor() *models.Participant  { return c.actor }
func (c *command) Target() *models.Participant { return c.target }

// run applies the effect once the check passes
func (c *command) run(rec *models.Record, check func(*models.Record) error, apply func(*models.Record) Result) Result {
	if c.executed {
		err := precondition("action already executed")
		return Result{Message: err.Error(), Err: err}
	}
	if err := check(rec); err != nil {
		return Result{Message: err.Error(), Err: err}
	}
	res := apply(rec)
	res.Success = true
	c.executed = true
	return res
}

func requireLivingTarget(t *models.Participant) error {
	if t == nil {
		return precondition("no target")
	}
	if !t.IsAlive() {
		return precondition("%s is dead", t.Label())
	}
	return nil
}

func requireLivingActor(a *models.Participant, kind models.RoleKind) error {
	if a == nil || !a.Is(kind) {
		return precondition("actor is not a %s", kind)
	}
	if !a.IsAlive() {
		return precondition("%s is dead", a.Label())
	}
	return nil
}

// KillAction stages the werewolves' victim for dawn
type KillAction struct {
	command
	AllowFaction bool // the pack's consensus may pick a werewolf
}

// NewKill creates a kill; actor may be nil when the pack decides together
func NewKill(actor, target *models.Participant, allowFaction bool) *KillAction {
	return &KillAction{command: command{actor: actor, target: target}, AllowFaction: allowFaction}
}

func (a *KillAction) Kind() models.ActionKind { return models.ActionKill }

func (a *KillAction) check(rec *models.Record) error {
	if err := requireLivingTarget(a.target); err != nil {
		return err
	}
	if len(rec.AliveHostiles()) == 0 {
		return precondition("no werewolf alive")
	}
	if !a.AllowFaction && a.target.IsHostile() {
		return precondition("%s is a werewolf", a.target.Label())
	}
	return nil
}

func (a *KillAction) CanExecute(rec *models.Record) bool { return a.check(rec) == nil }

func (a *KillAction) Execute(rec *models.Record) Result {
	return a.run(rec, a.check, func(rec *models.Record) Result {
		rec.PendingVictim = a.target.ID
		return Result{
			Message: "the werewolves chose " + a.target.Label(),
			Data:    map[string]any{"victim_id": a.target.ID},
		}
	})
}

// InspectAction reveals a target's camp to the seer
type InspectAction struct {
	command
}

func NewInspect(actor, target *models.Participant) *InspectAction {
	return &InspectAction{command{actor: actor, target: target}}
}

func (a *InspectAction) Kind() models.ActionKind { return models.ActionInspect }

func (a *InspectAction) check(rec *models.Record) error {
	if err := requireLivingActor(a.actor, models.RoleSeer); err != nil {
		return err
	}
	if err := requireLivingTarget(a.target); err != nil {
		return err
	}
	if a.target.ID == a.actor.ID {
		return precondition("cannot inspect self")
	}
	return nil
}

func (a *InspectAction) CanExecute(rec *models.Record) bool { return a.check(rec) == nil }

func (a *InspectAction) Execute(rec *models.Record) Result {
	return a.run(rec, a.check, func(rec *models.Record) Result {
		a.actor.Role.Inspected = append(a.actor.Role.Inspected, a.target.ID)
		in := rec.RecordInspection(a.actor.ID, a.target)
		verdict := "not a werewolf"
		if in.Hostile {
			verdict = "a werewolf"
		}
		return Result{
			Message: fmt.Sprintf("%s is %s", a.target.Label(), verdict),
			Data:    map[string]any{"target_id": a.target.ID, "is_werewolf": in.Hostile},
		}
	})
}

// CureAction spends the curer's cure on tonight's pending victim
type CureAction struct {
	command
}

func NewCure(actor, target *models.Participant) *CureAction {
	return &CureAction{command{actor: actor, target: target}}
}

func (a *CureAction) Kind() models.ActionKind { return models.ActionCure }

func (a *CureAction) check(rec *models.Record) error {
	if err := requireLivingActor(a.actor, models.RoleCurer); err != nil {
		return err
	}
	if !a.actor.Role.HasCure {
		return precondition("cure already used")
	}
	if err := requireLivingTarget(a.target); err != nil {
		return err
	}
	if rec.PendingVictim == 0 || rec.PendingVictim != a.target.ID {
		return precondition("%s is not tonight's victim", a.target.Label())
	}
	return nil
}

func (a *CureAction) CanExecute(rec *models.Record) bool { return a.check(rec) == nil }

func (a *CureAction) Execute(rec *models.Record) Result {
	return a.run(rec, a.check, func(rec *models.Record) Result {
		a.actor.Role.HasCure = false
		rec.Saved = true
		rec.RecordCurerAction(models.ActionCure, a.target, a.actor.Role)
		return Result{
			Message: "the witch saved " + a.target.Label(),
			Data:    map[string]any{"saved_id": a.target.ID},
		}
	})
}

// PoisonAction spends the curer's poison; the target dies at dawn
type PoisonAction struct {
	command
}

func NewPoison(actor, target *models.Participant) *PoisonAction {
	return &PoisonAction{command{actor: actor, target: target}}
}

func (a *PoisonAction) Kind() models.ActionKind { return models.ActionPoison }

func (a *PoisonAction) check(rec *models.Record) error {
	if err := requireLivingActor(a.actor, models.RoleCurer); err != nil {
		return err
	}
	if !a.actor.Role.HasPoison {
		return precondition("poison already used")
	}
	return requireLivingTarget(a.target)
}

func (a *PoisonAction) CanExecute(rec *models.Record) bool { return a.check(rec) == nil }

func (a *PoisonAction) Execute(rec *models.Record) Result {
	return a.run(rec, a.check, func(rec *models.Record) Result {
		a.actor.Role.HasPoison = false
		rec.Poisoned = append(rec.Poisoned, a.target.ID)
		rec.RecordCurerAction(models.ActionPoison, a.target, a.actor.Role)
		return Result{
			Message: "the witch poisoned " + a.target.Label(),
			Data:    map[string]any{"poisoned_id": a.target.ID},
		}
	})
}

// ShootAction is the marksman's dying shot; the target dies immediately
type ShootAction struct {
	command
}

func NewShoot(actor, target *models.Participant) *ShootAction {
	return &ShootAction{command{actor: actor, target: target}}
}

func (a *ShootAction) Kind() models.ActionKind { return models.ActionShoot }

func (a *ShootAction) check(rec *models.Record) error {
	if a.actor == nil || !a.actor.Is(models.RoleMarksman) {
		return precondition("actor is not a %s", models.RoleMarksman)
	}
	if !a.actor.Role.CanShoot {
		return precondition("shot already used")
	}
	return requireLivingTarget(a.target)
}

func (a *ShootAction) CanExecute(rec *models.Record) bool { return a.check(rec) == nil }

func (a *ShootAction) Execute(rec *models.Record) Result {
	return a.run(rec, a.check, func(rec *models.Record) Result {
		a.actor.Role.CanShoot = false
		rec.MarkDead(a.target.ID)
		return Result{
			Message: fmt.Sprintf("the hunter %s shot %s", a.actor.Label(), a.target.Label()),
			Data:    map[string]any{"shot_id": a.target.ID},
		}
	})
}

// BallotAction adds a weighted ballot against a target
type BallotAction struct {
	command
	Weight   float64
	Election bool // sheriff election ballot rather than exile
}

// NewBallot creates an exile ballot; the sheriff's weighs more
func NewBallot(voter, target *models.Participant) *BallotAction {
	w := BallotWeight
	if voter != nil && voter.Sheriff {
		w = SheriffWeight
	}
	return &BallotAction{command: command{actor: voter, target: target}, Weight: w}
}

// NewElectionBallot creates an unweighted sheriff election ballot
func NewElectionBallot(voter, candidate *models.Participant) *BallotAction {
	return &BallotAction{command: command{actor: voter, target: candidate}, Weight: BallotWeight, Election: true}
}

func (a *BallotAction) Kind() models.ActionKind { return models.ActionBallot }

func (a *BallotAction) check(rec *models.Record) error {
	if a.actor == nil || !a.actor.IsAlive() {
		return precondition("voter is not alive")
	}
	return requireLivingTarget(a.target)
}

func (a *BallotAction) CanExecute(rec *models.Record) bool { return a.check(rec) == nil }

func (a *BallotAction) Execute(rec *models.Record) Result {
	return a.run(rec, a.check, func(rec *models.Record) Result {
		if a.Election {
			rec.AddElectionBallot(a.actor, a.target)
		} else {
			a.target.Ballots += a.Weight
			rec.AddBallot(a.actor, a.target)
		}
		return Result{
			Message: fmt.Sprintf("%s votes for %s", a.actor.Label(), a.target.Label()),
			Data:    map[string]any{"voter_id": a.actor.ID, "target_id": a.target.ID, "weight": a.Weight},
		}
	})
}
