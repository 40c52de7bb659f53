package game

import (
	"context"
	"slices"

	"github.com/aaronzipp/werewolf/internal/models"
)

// View is the read-only context handed to a provider with every request.
// It is copied out of the record, so a provider that outlives its deadline
// never reads state the engine is mutating.
type View struct {
	Self        models.PlayerSummary
	Description string
	HasCure     bool
	HasPoison   bool
	CanShoot    bool

	Game          models.Snapshot
	Public        []models.LogEntry
	Faction       []models.LogEntry   // werewolf-private log, werewolves only
	Teammates     []int               // fellow werewolves, werewolves only
	Inspections   []models.Inspection // own results, seer only
	PendingVictim int                 // tonight's victim, witch only
	LastDeaths    []int
}

// Living returns the ids of living participants other than self
func (v View) Living() []int {
	var ids []int
	for _, p := range v.Game.Players {
		if p.Alive && p.ID != v.Self.ID {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// CurerOptions lists what the witch may do tonight
type CurerOptions struct {
	Victim        int // pending victim, 0 when the werewolves did not kill
	CanCure       bool
	CanPoison     bool
	PoisonTargets []int
}

// CurerChoice is the witch's decision; Action is ActionSkip to do nothing
type CurerChoice struct {
	Action models.ActionKind
	Target int
}

// Provider is the decision contract every participant exposes to the
// engine, whether a person or an autonomous player answers it. Returning
// Abstain, an empty string, or an error all mean "no choice".
type Provider interface {
	Speak(ctx context.Context, v View) (string, error)
	CastBallot(ctx context.Context, v View, candidates []int) (int, error)
	ChooseNightTarget(ctx context.Context, v View, targets []int, kind models.ActionKind) (int, error)
	FactionDiscussion(ctx context.Context, v View, round int) (string, error)
	ChooseCurerAction(ctx context.Context, v View, opts CurerOptions) (CurerChoice, error)
	DecideCandidacy(ctx context.Context, v View) (bool, error)
	CampaignSpeech(ctx context.Context, v View) (string, error)
	CastElectionBallot(ctx context.Context, v View, candidates []int) (int, error)
	ChooseDirection(ctx context.Context, v View) (models.Direction, error)
	ChooseSuccessor(ctx context.Context, v View, candidates []int) (int, error)
}

// view builds the request context for one participant
func (e *Engine) view(p *models.Participant) View {
	hostile := p.IsHostile()
	snap := e.rec.Snapshot().Conceal(func(s models.PlayerSummary) bool {
		return s.ID == p.ID || (hostile && s.Camp == models.CampHostile)
	})
	self, _ := snap.Player(p.ID)
	v := View{
		Self:        self,
		Description: p.Role.Description(),
		Game:        snap,
		Public:      slices.Clone(e.rec.Log),
		LastDeaths:  slices.Clone(e.lastDeaths),
	}
	switch p.Role.Kind() {
	case models.RoleEliminator:
		v.Faction = e.rec.FactionLog(models.CampHostile)
		for _, h := range e.rec.Roster() {
			if h.IsHostile() && h.ID != p.ID {
				v.Teammates = append(v.Teammates, h.ID)
			}
		}
	case models.RoleSeer:
		v.Inspections = slices.Clone(e.rec.Inspections[p.ID])
	case models.RoleCurer:
		v.HasCure = p.Role.HasCure
		v.HasPoison = p.Role.HasPoison
		v.PendingVictim = e.rec.PendingVictim
	case models.RoleMarksman:
		v.CanShoot = p.Role.CanShoot
	}
	return v
}
