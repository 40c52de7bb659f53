package game

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/aaronzipp/werewolf/internal/models"
)

// ask runs one provider call under the participant's deadline. Timeouts,
// provider errors and panics all degrade to the zero value of T, which
// every call site treats as abstain.
func ask[T any](ctx context.Context, e *Engine, p *models.Participant, decision string, call func(context.Context, Provider, View) (T, error)) T {
	var zero T
	provider, ok := e.providers[p.ID]
	if !ok {
		e.log.Warn().Int("player", p.ID).Str("decision", decision).Msg("no provider registered, abstaining")
		return zero
	}

	timeout := e.settings.DecisionTimeout
	if p.Human {
		timeout = e.settings.HumanTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type reply struct {
		value T
		err   error
	}
	// buffered so a late answer never blocks the abandoned goroutine
	replies := make(chan reply, 1)
	v := e.view(p)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				replies <- reply{err: fmt.Errorf("%w: %v", ErrProviderPanic, r)}
			}
		}()
		value, err := call(ctx, provider, v)
		replies <- reply{value: value, err: err}
	}()

	select {
	case r := <-replies:
		if r.err != nil {
			e.degraded(p, decision, r.err)
			return zero
		}
		return r.value
	case <-ctx.Done():
		e.degraded(p, decision, fmt.Errorf("%w after %s: %w", ErrDecisionTimeout, timeout, ctx.Err()))
		return zero
	}
}

func (e *Engine) degraded(p *models.Participant, decision string, err error) {
	ev := e.log.Warn()
	if errors.Is(err, ErrAbstain) {
		ev = e.log.Debug()
	}
	ev.Err(err).
		Int("player", p.ID).
		Str("decision", decision).
		Int("round", e.rec.Round).
		Msg("decision degraded to abstain")
}

// pickLiving resolves a chosen id to a living participant from the offered set
func (e *Engine) pickLiving(id int, offered []int) *models.Participant {
	if id == Abstain {
		return nil
	}
	if offered != nil && !slices.Contains(offered, id) {
		e.log.Debug().Int("target", id).Ints("offered", offered).Msg("choice outside offered set ignored")
		return nil
	}
	p, ok := e.rec.Participant(id)
	if !ok || !p.IsAlive() {
		return nil
	}
	return p
}
