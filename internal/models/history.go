package models

import (
	"slices"
	"time"
)

// EntryKind classifies a conversation log entry
type EntryKind string

const (
	EntrySpeech       EntryKind = "speech"
	EntryCampaign     EntryKind = "campaign"
	EntryBallot       EntryKind = "vote"
	EntryAnnouncement EntryKind = "announcement"
	EntryPrivate      EntryKind = "private_speech"
)

// SystemSpeaker is the speaker id used for announcements
const SystemSpeaker = 0

// LogEntry is one line of the public or a faction-private conversation
type LogEntry struct {
	Round       int       `json:"round"`
	Phase       Phase     `json:"phase"`
	SpeakerID   int       `json:"player_id"`
	SpeakerName string    `json:"player_name"`
	Kind        EntryKind `json:"action_type"`
	Content     string    `json:"content"`
	TargetID    int       `json:"target_id,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// CurerEntry records one curer decision with the resources left after it
type CurerEntry struct {
	Round      int        `json:"round"`
	Action     ActionKind `json:"action_type"`
	TargetID   int        `json:"target_id"`
	TargetName string     `json:"target_name"`
	HasCure    bool       `json:"remaining_antidote"`
	HasPoison  bool       `json:"remaining_poison"`
	Timestamp  time.Time  `json:"timestamp"`
}

// Inspection is one seer result
type Inspection struct {
	Round      int    `json:"round"`
	TargetID   int    `json:"target_id"`
	TargetName string `json:"target_name"`
	Hostile    bool   `json:"is_werewolf"`
}

func (r *Record) entry(p *Participant, kind EntryKind, content string) LogEntry {
	e := LogEntry{
		Round:       r.Round,
		Phase:       r.Phase,
		SpeakerID:   SystemSpeaker,
		SpeakerName: "System",
		Kind:        kind,
		Content:     content,
		Timestamp:   r.Clock(),
	}
	if p != nil {
		e.SpeakerID = p.ID
		e.SpeakerName = p.Name
	}
	return e
}

// AddSpeech logs a public day speech
func (r *Record) AddSpeech(p *Participant, content string) {
	p.AddSpeech(content)
	r.Log = append(r.Log, r.entry(p, EntrySpeech, content))
}

// AddCampaignSpeech logs a sheriff campaign or PK speech
func (r *Record) AddCampaignSpeech(p *Participant, content string) {
	r.Log = append(r.Log, r.entry(p, EntryCampaign, "[campaign] "+content))
}

// AddBallot logs a public exile ballot
func (r *Record) AddBallot(voter, target *Participant) {
	e := r.entry(voter, EntryBallot, "votes for "+target.Label())
	e.Phase = PhaseVote
	e.TargetID = target.ID
	r.Log = append(r.Log, e)
}

// AddElectionBallot logs a sheriff election ballot
func (r *Record) AddElectionBallot(voter, candidate *Participant) {
	e := r.entry(voter, EntryBallot, "supports "+candidate.Label()+" for sheriff")
	e.TargetID = candidate.ID
	r.Log = append(r.Log, e)
}

// AddAnnouncement logs a system announcement visible to everyone
func (r *Record) AddAnnouncement(content string) {
	r.Log = append(r.Log, r.entry(nil, EntryAnnouncement, content))
}

// AddFactionMessage logs a message visible only inside a camp
func (r *Record) AddFactionMessage(camp Camp, p *Participant, content string) {
	r.faction[camp] = append(r.faction[camp], r.entry(p, EntryPrivate, content))
}

// FactionLog returns a copy of a camp's private conversation
func (r *Record) FactionLog(camp Camp) []LogEntry {
	return slices.Clone(r.faction[camp])
}

// RecordCurerAction appends to the curer ledger; target may be nil for skips
func (r *Record) RecordCurerAction(action ActionKind, target *Participant, role *Role) {
	e := CurerEntry{
		Round:      r.Round,
		Action:     action,
		TargetName: "none",
		HasCure:    role.HasCure,
		HasPoison:  role.HasPoison,
		Timestamp:  r.Clock(),
	}
	if target != nil {
		e.TargetID = target.ID
		e.TargetName = target.Name
	}
	r.CurerLedger = append(r.CurerLedger, e)
}

// RecordInspection appends to a seer's private inspection log
func (r *Record) RecordInspection(seerID int, target *Participant) Inspection {
	in := Inspection{
		Round:      r.Round,
		TargetID:   target.ID,
		TargetName: target.Name,
		Hostile:    target.IsHostile(),
	}
	r.Inspections[seerID] = append(r.Inspections[seerID], in)
	return in
}

// SpeechesBy returns a participant's public speeches in order
func (r *Record) SpeechesBy(id int) []LogEntry {
	var out []LogEntry
	for _, e := range r.Log {
		if e.SpeakerID == id && e.Kind == EntrySpeech {
			out = append(out, e)
		}
	}
	return out
}

// BallotsBy returns a participant's exile ballots in order
func (r *Record) BallotsBy(id int) []LogEntry {
	var out []LogEntry
	for _, e := range r.Log {
		if e.SpeakerID == id && e.Kind == EntryBallot && e.Phase == PhaseVote {
			out = append(out, e)
		}
	}
	return out
}
