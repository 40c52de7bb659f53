package models

import (
	"slices"
	"time"
)

// Record is the single mutable game state shared by the engine and the
// actions it applies. Only the engine mutates it; presenters read Snapshot.
type Record struct {
	GameID string
	Board  string
	Round  int
	Phase  Phase

	PendingVictim int   // tonight's kill target before cure/poison, 0 for none
	Poisoned      []int // tonight's poison targets
	Saved         bool  // tonight's victim was cured

	ElectionDone  bool
	Direction     Direction
	LastDeathSeat int // minimum seat of the latest dawn deaths, 0 for none

	Log         []LogEntry           // public conversation, append-only
	CurerLedger []CurerEntry         // every curer decision including skips
	Inspections map[int][]Inspection // seer id -> private inspection log

	Clock func() time.Time

	roster    []*Participant
	byID      map[int]*Participant
	bySeat    map[int]*Participant
	alive     []*Participant
	dead      []*Participant
	faction   map[Camp][]LogEntry
	sheriffID int
}

// NewRecord creates a record for a roster; every participant starts alive
func NewRecord(gameID string, roster []*Participant) *Record {
	seated := slices.Clone(roster)
	slices.SortFunc(seated, func(a, b *Participant) int { return a.seat - b.seat })

	rec := &Record{
		GameID:      gameID,
		Phase:       PhaseInit,
		Direction:   Clockwise,
		Inspections: make(map[int][]Inspection),
		Clock:       time.Now,
		roster:      seated,
		byID:        make(map[int]*Participant, len(seated)),
		bySeat:      make(map[int]*Participant, len(seated)),
		faction:     map[Camp][]LogEntry{CampHostile: nil},
	}
	for _, p := range seated {
		p.alive = true
		rec.byID[p.ID] = p
		rec.bySeat[p.seat] = p
		rec.alive = append(rec.alive, p)
	}
	return rec
}

// Roster returns every participant in seat order
func (r *Record) Roster() []*Participant {
	return slices.Clone(r.roster)
}

// Alive returns the living participants in seat order
func (r *Record) Alive() []*Participant {
	return slices.Clone(r.alive)
}

// Dead returns the dead participants in order of death
func (r *Record) Dead() []*Participant {
	return slices.Clone(r.dead)
}

// SeatCount is the number of seats at the table, dead or alive
func (r *Record) SeatCount() int {
	return len(r.roster)
}

// Participant looks up a participant by id
func (r *Record) Participant(id int) (*Participant, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// IsAlive reports whether id names a living participant
func (r *Record) IsAlive(id int) bool {
	p, ok := r.byID[id]
	return ok && p.alive
}

// AliveIDs returns the ids of living participants that pass keep
func (r *Record) AliveIDs(keep func(*Participant) bool) []int {
	ids := make([]int, 0, len(r.alive))
	for _, p := range r.alive {
		if keep == nil || keep(p) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// AliveHostiles returns the living werewolf-camp participants
func (r *Record) AliveHostiles() []*Participant {
	return r.aliveInCamp(CampHostile)
}

// AliveAllies returns the living villager-camp participants, neutrals excluded
func (r *Record) AliveAllies() []*Participant {
	return r.aliveInCamp(CampAllied)
}

func (r *Record) aliveInCamp(camp Camp) []*Participant {
	var out []*Participant
	for _, p := range r.alive {
		if p.Camp() == camp {
			out = append(out, p)
		}
	}
	return out
}

// AliveWithRole returns living holders of a role in seat order
func (r *Record) AliveWithRole(kind RoleKind) []*Participant {
	var out []*Participant
	for _, p := range r.alive {
		if p.Is(kind) {
			out = append(out, p)
		}
	}
	return out
}

// MarkDead moves a living participant to the dead partition.
// It reports false when the participant is unknown or already dead.
func (r *Record) MarkDead(id int) bool {
	p, ok := r.byID[id]
	if !ok || !p.alive {
		return false
	}
	p.alive = false
	r.alive = slices.DeleteFunc(r.alive, func(q *Participant) bool { return q.ID == id })
	r.dead = append(r.dead, p)
	return true
}

// SetSheriff makes id the only sheriff; 0 or an unknown id clears the badge
func (r *Record) SetSheriff(id int) {
	for _, p := range r.roster {
		p.Sheriff = false
	}
	r.sheriffID = 0
	if p, ok := r.byID[id]; ok {
		p.Sheriff = true
		r.sheriffID = id
	}
}

// SheriffID returns the current sheriff id, 0 for none
func (r *Record) SheriffID() int {
	return r.sheriffID
}

// Sheriff returns the current sheriff or nil
func (r *Record) Sheriff() *Participant {
	if r.sheriffID == 0 {
		return nil
	}
	return r.byID[r.sheriffID]
}

// ResetBallots clears every participant's ballot count
func (r *Record) ResetBallots() {
	for _, p := range r.roster {
		p.ResetBallots()
	}
}

// ClearNight drops the pending night outcome after dawn resolution
func (r *Record) ClearNight() {
	r.PendingVictim = 0
	r.Poisoned = nil
	r.Saved = false
}

// NextLivingSeat steps from seat in the direction until it reaches a living
// seat. It returns 0 when nobody is alive.
func (r *Record) NextLivingSeat(seat int, dir Direction) int {
	total := len(r.roster)
	next := dir.Step(seat, total)
	for range total {
		if p, ok := r.bySeat[next]; ok && p.alive {
			return next
		}
		next = dir.Step(next, total)
	}
	return 0
}
