package players

import (
	"context"
	"fmt"
	"strings"

	"github.com/aaronzipp/werewolf/internal/game"
	"github.com/aaronzipp/werewolf/internal/models"
)

// Option is one entry of a menu
type Option struct {
	Label string
	Value int
}

// Prompter asks the person at the terminal. Choose returns the Value of the
// picked option; Ask returns the entered line, empty when skipped.
type Prompter interface {
	Choose(ctx context.Context, title string, options []Option) (int, error)
	Ask(ctx context.Context, title string) (string, error)
}

// Human answers every decision through a Prompter
type Human struct {
	prompt Prompter
}

var _ game.Provider = (*Human)(nil)

func NewHuman(p Prompter) *Human {
	return &Human{prompt: p}
}

func (h *Human) menu(v game.View, ids []int, none string) []Option {
	opts := make([]Option, 0, len(ids)+1)
	for _, id := range ids {
		opts = append(opts, Option{Label: label(v, id), Value: id})
	}
	if none != "" {
		opts = append(opts, Option{Label: none, Value: game.Abstain})
	}
	return opts
}

func (h *Human) Speak(ctx context.Context, v game.View) (string, error) {
	text, err := h.prompt.Ask(ctx, fmt.Sprintf("Your turn to speak, %s (enter to stay silent)", v.Self.Name))
	return strings.TrimSpace(text), err
}

func (h *Human) CastBallot(ctx context.Context, v game.View, candidates []int) (int, error) {
	return h.prompt.Choose(ctx, "Vote to exile", h.menu(v, candidates, "Abstain"))
}

func (h *Human) ChooseNightTarget(ctx context.Context, v game.View, targets []int, kind models.ActionKind) (int, error) {
	title := map[models.ActionKind]string{
		models.ActionKill:    "Choose tonight's victim",
		models.ActionInspect: "Choose a player to inspect",
		models.ActionPoison:  "Choose a player to poison",
		models.ActionShoot:   "You may shoot one player",
	}[kind]
	if title == "" {
		title = "Choose a target"
	}
	return h.prompt.Choose(ctx, title, h.menu(v, targets, "Skip"))
}

func (h *Human) FactionDiscussion(ctx context.Context, _ game.View, round int) (string, error) {
	text, err := h.prompt.Ask(ctx, fmt.Sprintf("Werewolf channel, round %d: who should die tonight?", round))
	return strings.TrimSpace(text), err
}

// ChooseCurerAction offers one potion per night, then a poison target
func (h *Human) ChooseCurerAction(ctx context.Context, v game.View, opts game.CurerOptions) (game.CurerChoice, error) {
	const (
		skip = iota
		cure
		poison
	)
	menu := []Option{{Label: "Do nothing", Value: skip}}
	if opts.CanCure && opts.Victim != game.Abstain {
		menu = append(menu, Option{Label: "Use the cure on " + label(v, opts.Victim), Value: cure})
	}
	if opts.CanPoison && len(opts.PoisonTargets) > 0 {
		menu = append(menu, Option{Label: "Use the poison", Value: poison})
	}

	title := "Nobody was attacked tonight"
	if opts.Victim != game.Abstain {
		title = label(v, opts.Victim) + " was attacked tonight"
	}
	picked, err := h.prompt.Choose(ctx, title, menu)
	if err != nil {
		return game.CurerChoice{Action: models.ActionSkip}, err
	}
	switch picked {
	case cure:
		return game.CurerChoice{Action: models.ActionCure, Target: opts.Victim}, nil
	case poison:
		target, err := h.prompt.Choose(ctx, "Choose a player to poison", h.menu(v, opts.PoisonTargets, "Changed my mind"))
		if err != nil || target == game.Abstain {
			return game.CurerChoice{Action: models.ActionSkip}, err
		}
		return game.CurerChoice{Action: models.ActionPoison, Target: target}, nil
	default:
		return game.CurerChoice{Action: models.ActionSkip}, nil
	}
}

func (h *Human) DecideCandidacy(ctx context.Context, _ game.View) (bool, error) {
	picked, err := h.prompt.Choose(ctx, "Run for sheriff?", []Option{{Label: "Yes", Value: 1}, {Label: "No", Value: 0}})
	return picked == 1, err
}

func (h *Human) CampaignSpeech(ctx context.Context, _ game.View) (string, error) {
	text, err := h.prompt.Ask(ctx, "Your campaign speech")
	return strings.TrimSpace(text), err
}

func (h *Human) CastElectionBallot(ctx context.Context, v game.View, candidates []int) (int, error) {
	return h.prompt.Choose(ctx, "Vote for sheriff", h.menu(v, candidates, "Abstain"))
}

func (h *Human) ChooseDirection(ctx context.Context, _ game.View) (models.Direction, error) {
	picked, err := h.prompt.Choose(ctx, "Speaking direction", []Option{
		{Label: "Clockwise", Value: 0},
		{Label: "Counterclockwise", Value: 1},
	})
	if err != nil || picked == 0 {
		return models.Clockwise, err
	}
	return models.Counterclockwise, nil
}

func (h *Human) ChooseSuccessor(ctx context.Context, v game.View, candidates []int) (int, error) {
	return h.prompt.Choose(ctx, "Pass the sheriff badge", h.menu(v, candidates, "Tear up the badge"))
}
