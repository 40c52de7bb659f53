package game

import "errors"

var (
	// ErrInvalidComposition means the role setup cannot produce a fair game
	ErrInvalidComposition = errors.New("invalid role composition")

	// ErrPrecondition means an action's eligibility check failed
	ErrPrecondition = errors.New("action precondition failed")

	// ErrAbstain lets a provider decline a decision explicitly
	ErrAbstain = errors.New("abstained")

	// ErrDecisionTimeout means a provider did not answer in time
	ErrDecisionTimeout = errors.New("decision timed out")

	// ErrProviderPanic wraps a recovered panic from a provider call
	ErrProviderPanic = errors.New("provider panicked")
)
