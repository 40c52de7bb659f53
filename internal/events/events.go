package events

import "github.com/aaronzipp/werewolf/internal/models"

// Kind names what happened
type Kind string

const (
	KindGameStart    Kind = "game-start"
	KindRole         Kind = "role-reveal"
	KindPhase        Kind = "phase"
	KindRound        Kind = "round"
	KindAnnouncement Kind = "announcement"
	KindSpeech       Kind = "speech"
	KindCampaign     Kind = "campaign"
	KindBallot       Kind = "ballot"
	KindFaction      Kind = "faction"
	KindInspection   Kind = "inspection"
	KindNightAction  Kind = "night-action"
	KindDeath        Kind = "death"
	KindSheriff      Kind = "sheriff"
	KindGameOver     Kind = "game-over"
)

// Audience limits who may see an event; the zero value is public
type Audience struct {
	Camp          models.Camp // only members of this camp
	ParticipantID int         // only this participant
}

// Public is visible to every viewer
var Public = Audience{}

// Faction restricts an event to one camp
func Faction(camp models.Camp) Audience {
	return Audience{Camp: camp}
}

// Only restricts an event to one participant
func Only(id int) Audience {
	return Audience{ParticipantID: id}
}

// IsPublic reports whether anyone may see the event
func (a Audience) IsPublic() bool {
	return a == Public
}

// Viewer is whoever a listener renders for
type Viewer struct {
	ID         int
	Camp       models.Camp
	Omniscient bool // spectators of an autoplay game see everything
}

// Spectator sees every event
var Spectator = Viewer{Omniscient: true}

// Visible reports whether the viewer may see an event with this audience
func (a Audience) Visible(v Viewer) bool {
	switch {
	case v.Omniscient || a.IsPublic():
		return true
	case a.ParticipantID != 0:
		return a.ParticipantID == v.ID
	default:
		return a.Camp == v.Camp
	}
}

// Knows reports whether the viewer may see p's role
func (v Viewer) Knows(p models.PlayerSummary) bool {
	return v.Omniscient || p.ID == v.ID || (v.Camp == models.CampHostile && p.Camp == models.CampHostile)
}

// Event is one thing the engine tells presenters about
type Event struct {
	Kind      Kind
	Round     int
	Phase     models.Phase
	Audience  Audience
	SpeakerID int
	Speaker   string
	TargetID  int
	Text      string
	Snapshot  *models.Snapshot // set on round, phase and game-over events
	GameLog   *models.GameLog  // set on game-over
}
