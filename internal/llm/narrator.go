package llm

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Narrator speaks for the game master. It never fails: any generation
// problem yields the fallback line.
type Narrator struct {
	gen Generator
	log zerolog.Logger
}

func NewNarrator(gen Generator, log zerolog.Logger) *Narrator {
	if gen == nil {
		gen = Disabled{}
	}
	return &Narrator{gen: gen, log: log}
}

func (n *Narrator) Narrate(ctx context.Context, prompt, fallback string) string {
	text, err := n.gen.Generate(ctx, prompt)
	if err != nil {
		if !errors.Is(err, ErrDisabled) {
			n.log.Debug().Err(err).Msg("narration fell back")
		}
		return fallback
	}
	return text
}
