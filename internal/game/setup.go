package game

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"

	"github.com/aaronzipp/werewolf/internal/models"
)

// Composition counts how many of each role a game deals
type Composition map[models.RoleKind]int

// Boards are the named compositions
var Boards = map[string]Composition{
	"basic": {
		models.RoleEliminator: 3,
		models.RolePlain:      3,
		models.RoleSeer:       1,
		models.RoleCurer:      1,
		models.RoleMarksman:   1,
	},
}

// BoardComposition resolves a board name. A custom composition overrides
// the board, which is then only a label.
func BoardComposition(board string, custom Composition) (Composition, error) {
	if len(custom) > 0 {
		return custom, custom.Validate()
	}
	c, ok := Boards[board]
	if !ok {
		return nil, fmt.Errorf("%w: unknown board %q (set a custom role list to use it)", ErrInvalidComposition, board)
	}
	return c, c.Validate()
}

// Size is the number of seats
func (c Composition) Size() int {
	n := 0
	for _, k := range c {
		n += k
	}
	return n
}

// Validate requires at least one werewolf and one villager-camp role and
// fewer werewolves than villagers, so the game cannot end before it starts.
func (c Composition) Validate() error {
	hostile, allied := 0, 0
	for kind, n := range c {
		if n < 0 {
			return fmt.Errorf("%w: negative count for %s", ErrInvalidComposition, kind)
		}
		role, err := models.NewRole(kind)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidComposition, err)
		}
		switch role.Camp() {
		case models.CampHostile:
			hostile += n
		case models.CampAllied:
			allied += n
		}
	}
	switch {
	case hostile < 1:
		return fmt.Errorf("%w: need at least one werewolf", ErrInvalidComposition)
	case allied < 1:
		return fmt.Errorf("%w: need at least one villager-camp role", ErrInvalidComposition)
	case hostile >= allied:
		return fmt.Errorf("%w: %d werewolves must be fewer than %d villagers", ErrInvalidComposition, hostile, allied)
	}
	return nil
}

// Deal expands the composition into a shuffled role list, one per seat
func (c Composition) Deal(rng *rand.Rand) []models.RoleKind {
	kinds := make([]models.RoleKind, 0, c.Size())
	// fixed order before shuffling so the seed alone decides the deal
	for _, kind := range models.RoleKinds {
		for range c[kind] {
			kinds = append(kinds, kind)
		}
	}
	rng.Shuffle(len(kinds), func(i, j int) { kinds[i], kinds[j] = kinds[j], kinds[i] })
	return kinds
}

// Table describes who sits down
type Table struct {
	HumanName string // seat 1 when set
	Autoplay  bool   // every seat is autonomous
}

// SeatRoster deals roles to seats 1..N; id equals seat number. Seat 1 is
// the interactive participant unless the table is on autoplay.
func SeatRoster(c Composition, table Table, rng *rand.Rand) []*models.Participant {
	kinds := c.Deal(rng)
	roster := make([]*models.Participant, 0, len(kinds))
	for i, kind := range kinds {
		seat := i + 1
		name := "AI-" + strconv.Itoa(seat)
		human := seat == 1 && !table.Autoplay
		if human {
			name = table.HumanName
			if name == "" {
				name = "Player"
			}
		}
		roster = append(roster, models.NewParticipant(seat, name, seat, models.MustRole(kind), human))
	}
	return roster
}

// NewGame validates the composition and creates a seated record
func NewGame(board string, custom Composition, table Table, rng *rand.Rand) (*models.Record, error) {
	c, err := BoardComposition(board, custom)
	if err != nil {
		return nil, err
	}
	rec := models.NewRecord(uuid.NewString(), SeatRoster(c, table, rng))
	rec.Board = board
	if len(custom) > 0 {
		rec.Board = "custom"
	}
	return rec, nil
}
