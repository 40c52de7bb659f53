package models

import (
	"fmt"
	"strings"
)

// Camp is the faction a role plays for
type Camp string

const (
	CampHostile Camp = "werewolf"
	CampAllied  Camp = "villager"
	CampNeutral Camp = "neutral"
)

// RoleKind identifies one of the fixed role variants
type RoleKind string

const (
	RoleEliminator RoleKind = "werewolf"
	RoleSeer       RoleKind = "seer"
	RoleCurer      RoleKind = "witch"
	RoleMarksman   RoleKind = "hunter"
	RolePlain      RoleKind = "villager"
)

// RoleKinds lists every variant in night priority order, passive roles last
var RoleKinds = []RoleKind{RoleEliminator, RoleSeer, RoleCurer, RoleMarksman, RolePlain}

// NoPriority is the priority of roles that never act at night
const NoPriority = 999

// ActionKind names the effect an action applies
type ActionKind string

const (
	ActionKill    ActionKind = "kill"
	ActionInspect ActionKind = "check"
	ActionCure    ActionKind = "save"
	ActionPoison  ActionKind = "poison"
	ActionShoot   ActionKind = "shoot"
	ActionBallot  ActionKind = "vote"
	ActionSkip    ActionKind = "skip"
)

// ParseRoleKind accepts the classic role names and their generic aliases
func ParseRoleKind(name string) (RoleKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "werewolf", "wolf", "eliminator":
		return RoleEliminator, nil
	case "seer", "prophet":
		return RoleSeer, nil
	case "witch", "curer":
		return RoleCurer, nil
	case "hunter", "marksman":
		return RoleMarksman, nil
	case "villager", "plain":
		return RolePlain, nil
	default:
		return "", fmt.Errorf("unknown role %q", name)
	}
}

// Role holds a participant's capability: fixed camp and priority derived
// from its kind, plus the role's consumable state.
type Role struct {
	kind RoleKind

	HasCure   bool  // curer: cure not used yet
	HasPoison bool  // curer: poison not used yet
	CanShoot  bool  // marksman: shot permission not used yet
	Inspected []int // seer: ids inspected so far, repeats allowed
}

// NewRole creates a role with its full starting resources
func NewRole(kind RoleKind) (*Role, error) {
	r := &Role{kind: kind}
	switch kind {
	case RoleEliminator, RoleSeer, RolePlain:
	case RoleCurer:
		r.HasCure = true
		r.HasPoison = true
	case RoleMarksman:
		r.CanShoot = true
	default:
		return nil, fmt.Errorf("unknown role kind %q", kind)
	}
	return r, nil
}

// MustRole is NewRole for kinds known at compile time
func MustRole(kind RoleKind) *Role {
	r, err := NewRole(kind)
	if err != nil {
		panic(err)
	}
	return r
}

// Kind returns the role variant
func (r *Role) Kind() RoleKind {
	return r.kind
}

// Camp returns the faction of the role
func (r *Role) Camp() Camp {
	switch r.kind {
	case RoleEliminator:
		return CampHostile
	case RoleSeer, RoleCurer, RoleMarksman, RolePlain:
		return CampAllied
	default:
		return CampNeutral
	}
}

// Priority orders night actions, lower acts first
func (r *Role) Priority() int {
	switch r.kind {
	case RoleEliminator:
		return 1
	case RoleSeer:
		return 2
	case RoleCurer:
		return 3
	default:
		return NoPriority
	}
}

// HasNightAction reports whether the role ever acts at night
func (r *Role) HasNightAction() bool {
	return r.Priority() != NoPriority
}

// CanAct reports whether the role may act tonight for the given holder
func (r *Role) CanAct(rec *Record, self *Participant) bool {
	switch r.kind {
	case RoleEliminator:
		return len(rec.AliveHostiles()) > 0
	case RoleSeer:
		return self.IsAlive()
	case RoleCurer:
		return self.IsAlive() && (r.HasCure || r.HasPoison)
	default:
		return false
	}
}

// AvailableActions lists what the role can do in the current state
func (r *Role) AvailableActions(rec *Record) []ActionKind {
	switch r.kind {
	case RoleEliminator:
		return []ActionKind{ActionKill, ActionSkip}
	case RoleSeer:
		return []ActionKind{ActionInspect, ActionSkip}
	case RoleCurer:
		actions := []ActionKind{ActionSkip}
		if r.HasCure && rec.IsAlive(rec.PendingVictim) {
			actions = append(actions, ActionCure)
		}
		if r.HasPoison {
			actions = append(actions, ActionPoison)
		}
		return actions
	default:
		return nil
	}
}

// Resources counts the curer's remaining single-use resources
func (r *Role) Resources() int {
	n := 0
	if r.HasCure {
		n++
	}
	if r.HasPoison {
		n++
	}
	return n
}

// Description is the rules text shown to the holder at game start
func (r *Role) Description() string {
	switch r.kind {
	case RoleEliminator:
		return "You are a werewolf. Each night you confer with your pack and choose someone to kill. " +
			"You win when werewolves are no fewer than the villagers."
	case RoleSeer:
		return "You are the seer. Each night you may inspect one living player and learn whether they are a werewolf."
	case RoleCurer:
		return "You are the witch. You hold one cure and one poison, each usable once per game. " +
			"The cure saves tonight's victim, the poison kills any other player. At most one per night."
	case RoleMarksman:
		return "You are the hunter. When you die you may shoot one living player, " +
			"unless you were poisoned."
	case RolePlain:
		return "You are a villager. You have no night power; find the werewolves by talking and voting."
	default:
		return "Unknown role."
	}
}

func (r *Role) String() string {
	return string(r.kind)
}
