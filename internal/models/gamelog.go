package models

import (
	"slices"
	"time"
)

// NoWinner marks a game stopped by the round cap
const NoWinner Camp = "draw"

// PlayerSummary is a read-only view of one participant
type PlayerSummary struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Seat    int      `json:"seat"`
	Role    RoleKind `json:"role"`
	Camp    Camp     `json:"camp"`
	Alive   bool     `json:"is_alive"`
	Sheriff bool     `json:"is_sheriff"`
	Human   bool     `json:"is_human"`
}

// Snapshot is what presenters read; it shares nothing mutable with the Record
type Snapshot struct {
	GameID    string          `json:"game_id"`
	Round     int             `json:"round"`
	Phase     Phase           `json:"phase"`
	SheriffID int             `json:"sheriff_id"`
	Direction Direction       `json:"direction"`
	Players   []PlayerSummary `json:"players"`
}

// Player returns the summary for id
func (s Snapshot) Player(id int) (PlayerSummary, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return PlayerSummary{}, false
}

// AliveCount counts living participants in the snapshot
func (s Snapshot) AliveCount() int {
	n := 0
	for _, p := range s.Players {
		if p.Alive {
			n++
		}
	}
	return n
}

// Conceal returns a copy with role and camp cleared for every participant
// keep rejects
func (s Snapshot) Conceal(keep func(PlayerSummary) bool) Snapshot {
	out := s
	out.Players = make([]PlayerSummary, len(s.Players))
	for i, p := range s.Players {
		if !keep(p) {
			p.Role = ""
			p.Camp = ""
		}
		out.Players[i] = p
	}
	return out
}

// Snapshot copies the presenter-visible state
func (r *Record) Snapshot() Snapshot {
	s := Snapshot{
		GameID:    r.GameID,
		Round:     r.Round,
		Phase:     r.Phase,
		SheriffID: r.sheriffID,
		Direction: r.Direction,
		Players:   make([]PlayerSummary, 0, len(r.roster)),
	}
	for _, p := range r.roster {
		s.Players = append(s.Players, PlayerSummary{
			ID:      p.ID,
			Name:    p.Name,
			Seat:    p.seat,
			Role:    p.Role.Kind(),
			Camp:    p.Camp(),
			Alive:   p.alive,
			Sheriff: p.Sheriff,
			Human:   p.Human,
		})
	}
	return s
}

// GameInfo holds the end-of-game metadata
type GameInfo struct {
	GameID       string    `json:"game_id"`
	EndTime      time.Time `json:"end_time"`
	Winner       Camp      `json:"winner"`
	TotalRounds  int       `json:"total_rounds"`
	Board        string    `json:"board"`
	TotalPlayers int       `json:"total_players"`
	AlivePlayers int       `json:"alive_players"`
	DeadPlayers  int       `json:"dead_players"`
}

// GameLog is the exported record of a finished game
type GameLog struct {
	GameInfo      GameInfo             `json:"game_info"`
	Players       []PlayerSummary      `json:"players"`
	Conversation  []LogEntry           `json:"conversation_history"`
	CurerActions  []CurerEntry         `json:"witch_actions"`
	Inspections   map[int][]Inspection `json:"seer_checks"`
	VictoryReason string               `json:"victory_reason"`
}

// Export builds the game log for a finished game
func (r *Record) Export(winner Camp, reason string) GameLog {
	snap := r.Snapshot()
	inspections := make(map[int][]Inspection, len(r.Inspections))
	for id, checks := range r.Inspections {
		inspections[id] = slices.Clone(checks)
	}
	return GameLog{
		GameInfo: GameInfo{
			GameID:       r.GameID,
			EndTime:      r.Clock(),
			Winner:       winner,
			TotalRounds:  r.Round,
			Board:        r.Board,
			TotalPlayers: len(r.roster),
			AlivePlayers: len(r.alive),
			DeadPlayers:  len(r.dead),
		},
		Players:       snap.Players,
		Conversation:  slices.Clone(r.Log),
		CurerActions:  slices.Clone(r.CurerLedger),
		Inspections:   inspections,
		VictoryReason: reason,
	}
}
