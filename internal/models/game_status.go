package models

// Phase represents the current state of the game
type Phase string

const (
	PhaseInit  Phase = "init"
	PhaseNight Phase = "night"
	PhaseDay   Phase = "day"
	PhaseVote  Phase = "vote"
	PhaseEnd   Phase = "end"
)

// Direction is the sheriff's speaking-order preference
type Direction string

const (
	Clockwise        Direction = "clockwise"        // increasing seat numbers
	Counterclockwise Direction = "counterclockwise" // decreasing seat numbers
)

// Step moves one seat in the direction, wrapping over seats 1..total
func (d Direction) Step(seat, total int) int {
	if total <= 0 {
		return seat
	}
	if d == Counterclockwise {
		return ((seat-2)%total+total)%total + 1
	}
	return seat%total + 1
}
