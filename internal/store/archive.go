// Package store archives finished games: in memory, as JSON files, and in
// SQLite.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aaronzipp/werewolf/internal/models"
)

var (
	ErrMissingID     = errors.New("store: game id is required")
	ErrNotFound      = errors.New("store: game not found")
	ErrAlreadyExists = errors.New("store: game already archived")
)

// Archive persists one finished game
type Archive interface {
	Save(ctx context.Context, doc models.GameLog) error
}

// SaveAll writes doc to every archive. A failing archive does not stop the
// others; the joined error reports all failures.
func SaveAll(ctx context.Context, log zerolog.Logger, doc models.GameLog, archives ...Archive) error {
	var errs []error
	for _, a := range archives {
		if a == nil {
			continue
		}
		if err := a.Save(ctx, doc); err != nil {
			log.Error().Err(err).Str("game", doc.GameInfo.GameID).Str("archive", fmt.Sprintf("%T", a)).Msg("archive failed")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
