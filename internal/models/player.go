package models

import "fmt"

// Participant represents one seat at the table, human or autonomous
type Participant struct {
	ID       int
	Name     string
	Role     *Role
	Human    bool
	Ballots  float64  // weighted ballots received this round
	Speeches []string // public speeches in order
	Sheriff  bool     // maintained by Record.SetSheriff only

	seat  int
	alive bool
}

// NewParticipant creates a living participant bound to a fixed seat
func NewParticipant(id int, name string, seat int, role *Role, human bool) *Participant {
	return &Participant{
		ID:    id,
		Name:  name,
		Role:  role,
		Human: human,
		seat:  seat,
		alive: true,
	}
}

// Seat returns the seat number assigned at creation
func (p *Participant) Seat() int {
	return p.seat
}

// IsAlive reports the participant's life status
func (p *Participant) IsAlive() bool {
	return p.alive
}

// Camp returns the participant's faction
func (p *Participant) Camp() Camp {
	return p.Role.Camp()
}

// IsHostile reports whether the participant plays for the werewolves
func (p *Participant) IsHostile() bool {
	return p.Camp() == CampHostile
}

// Is reports whether the participant holds the given role
func (p *Participant) Is(kind RoleKind) bool {
	return p.Role.Kind() == kind
}

// Label formats the participant for logs and announcements
func (p *Participant) Label() string {
	return fmt.Sprintf("%s (#%d)", p.Name, p.ID)
}

// AddSpeech appends to the participant's public speech log
func (p *Participant) AddSpeech(speech string) {
	p.Speeches = append(p.Speeches, speech)
}

// ResetBallots clears the current-round ballot count
func (p *Participant) ResetBallots() {
	p.Ballots = 0
}
