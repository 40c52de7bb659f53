package game

import "time"

const (
	// DiscussionRounds is how many times the werewolves talk before proposing a kill
	DiscussionRounds = 3

	// MaxPKRounds caps the sheriff tie-break re-votes before the badge is dropped
	MaxPKRounds = 5

	// MaxRounds stops a game that never reaches a victory condition
	MaxRounds = 20

	// BallotWeight is the weight of an ordinary exile ballot
	BallotWeight = 1.0

	// SheriffWeight is the weight of the sheriff's exile ballot
	SheriffWeight = 1.5

	// DecisionTimeout bounds one autonomous decision
	DecisionTimeout = 45 * time.Second

	// HumanTimeout bounds one interactive decision
	HumanTimeout = 5 * time.Minute

	// Abstain is the id returned by a provider that makes no choice
	Abstain = 0
)

// Settings holds the per-game policy knobs
type Settings struct {
	DiscussionRounds int
	MaxPKRounds      int
	MaxRounds        int
	DecisionTimeout  time.Duration
	HumanTimeout     time.Duration
}

// DefaultSettings returns the standard policy
func DefaultSettings() Settings {
	return Settings{
		DiscussionRounds: DiscussionRounds,
		MaxPKRounds:      MaxPKRounds,
		MaxRounds:        MaxRounds,
		DecisionTimeout:  DecisionTimeout,
		HumanTimeout:     HumanTimeout,
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.DiscussionRounds <= 0 {
		s.DiscussionRounds = d.DiscussionRounds
	}
	if s.MaxPKRounds <= 0 {
		s.MaxPKRounds = d.MaxPKRounds
	}
	if s.MaxRounds <= 0 {
		s.MaxRounds = d.MaxRounds
	}
	if s.DecisionTimeout <= 0 {
		s.DecisionTimeout = d.DecisionTimeout
	}
	if s.HumanTimeout <= 0 {
		s.HumanTimeout = d.HumanTimeout
	}
	return s
}
