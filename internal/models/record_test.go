package models

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestRecord(t *testing.T, kinds ...RoleKind) *Record {
	t.Helper()
	roster := make([]*Participant, 0, len(kinds))
	// seats are assigned in reverse to check NewRecord sorts by seat
	for i := len(kinds) - 1; i >= 0; i-- {
		seat := i + 1
		roster = append(roster, NewParticipant(seat, "P"+string(rune('0'+seat)), seat, MustRole(kinds[i]), false))
	}
	rec := NewRecord("test", roster)
	rec.Clock = func() time.Time { return fixedNow }
	return rec
}

func assertPartition(t *testing.T, rec *Record) {
	t.Helper()
	seen := map[int]int{}
	for _, p := range rec.Alive() {
		assert.True(t, p.IsAlive())
		seen[p.ID]++
	}
	for _, p := range rec.Dead() {
		assert.False(t, p.IsAlive())
		seen[p.ID]++
	}
	require.Len(t, seen, rec.SeatCount())
	for id, n := range seen {
		assert.Equal(t, 1, n, "participant %d in both partitions", id)
	}
}

func seatsOf(ps []*Participant) []int {
	out := make([]int, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Seat())
	}
	return out
}

func TestNewRecordSortsBySeat(t *testing.T) {
	rec := newTestRecord(t, RoleEliminator, RoleSeer, RolePlain, RolePlain)

	if diff := cmp.Diff([]int{1, 2, 3, 4}, seatsOf(rec.Roster())); diff != "" {
		t.Errorf("roster seats mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, PhaseInit, rec.Phase)
	assert.Equal(t, Clockwise, rec.Direction)
	assertPartition(t, rec)
}

func TestMarkDeadKeepsPartition(t *testing.T) {
	rec := newTestRecord(t, RoleEliminator, RoleSeer, RolePlain, RolePlain)

	require.True(t, rec.MarkDead(2))
	assert.False(t, rec.MarkDead(2), "second death is a no-op")
	assert.False(t, rec.MarkDead(42), "unknown id")

	assert.False(t, rec.IsAlive(2))
	assert.Equal(t, []int{1, 3, 4}, rec.AliveIDs(nil))
	assert.Equal(t, []int{2}, seatsOf(rec.Dead()))
	assertPartition(t, rec)
}

func TestCampQueries(t *testing.T) {
	rec := newTestRecord(t, RoleEliminator, RoleEliminator, RoleSeer, RoleCurer, RoleMarksman, RolePlain)

	assert.Len(t, rec.AliveHostiles(), 2)
	assert.Len(t, rec.AliveAllies(), 4)
	assert.Equal(t, []int{4}, seatsOf(rec.AliveWithRole(RoleCurer)))

	rec.MarkDead(1)
	assert.Len(t, rec.AliveHostiles(), 1)
	assert.Equal(t, []int{2, 3}, rec.AliveIDs(func(p *Participant) bool {
		return p.Is(RoleEliminator) || p.Is(RoleSeer)
	}))
}

func TestSetSheriffIsExclusive(t *testing.T) {
	rec := newTestRecord(t, RoleEliminator, RoleSeer, RolePlain)

	rec.SetSheriff(1)
	rec.SetSheriff(3)

	count := 0
	for _, p := range rec.Roster() {
		if p.Sheriff {
			count++
			assert.Equal(t, rec.SheriffID(), p.ID)
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, 3, rec.Sheriff().ID)

	rec.SetSheriff(0)
	assert.Zero(t, rec.SheriffID())
	assert.Nil(t, rec.Sheriff())
	for _, p := range rec.Roster() {
		assert.False(t, p.Sheriff)
	}

	rec.SetSheriff(99)
	assert.Zero(t, rec.SheriffID(), "unknown id clears the badge")
}

func TestDirectionStep(t *testing.T) {
	tests := []struct {
		dir  Direction
		seat int
		want int
	}{
		{Clockwise, 1, 2},
		{Clockwise, 9, 1},
		{Counterclockwise, 1, 9},
		{Counterclockwise, 5, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.dir.Step(tt.seat, 9), "%s from %d", tt.dir, tt.seat)
	}
}

func TestNextLivingSeat(t *testing.T) {
	rec := newTestRecord(t, RolePlain, RolePlain, RolePlain, RolePlain, RolePlain)
	rec.MarkDead(4)
	rec.MarkDead(5)
	rec.MarkDead(1)

	assert.Equal(t, 2, rec.NextLivingSeat(3, Clockwise), "wraps past dead 4, 5 and 1")
	assert.Equal(t, 3, rec.NextLivingSeat(1, Counterclockwise), "wraps past dead 5 and 4")
	assert.Equal(t, 3, rec.NextLivingSeat(2, Clockwise))

	for _, id := range []int{2, 3} {
		rec.MarkDead(id)
	}
	assert.Zero(t, rec.NextLivingSeat(1, Clockwise))
}

func TestClearNight(t *testing.T) {
	rec := newTestRecord(t, RoleEliminator, RolePlain)
	rec.PendingVictim = 2
	rec.Poisoned = []int{1}
	rec.Saved = true

	rec.ClearNight()

	assert.Zero(t, rec.PendingVictim)
	assert.Empty(t, rec.Poisoned)
	assert.False(t, rec.Saved)
}

func TestHistory(t *testing.T) {
	rec := newTestRecord(t, RoleEliminator, RoleSeer, RolePlain)
	rec.Round = 1
	rec.Phase = PhaseDay
	wolf, _ := rec.Participant(1)
	seer, _ := rec.Participant(2)
	plain, _ := rec.Participant(3)

	rec.AddSpeech(seer, "I checked 1")
	rec.AddCampaignSpeech(seer, "vote me")
	rec.AddBallot(plain, wolf)
	rec.AddAnnouncement("night falls")
	rec.AddFactionMessage(CampHostile, wolf, "kill 2")

	require.Len(t, rec.Log, 4)
	assert.Equal(t, "[campaign] vote me", rec.Log[1].Content)
	assert.Equal(t, EntryBallot, rec.Log[2].Kind)
	assert.Equal(t, PhaseVote, rec.Log[2].Phase)
	assert.Equal(t, 1, rec.Log[2].TargetID)
	assert.Equal(t, SystemSpeaker, rec.Log[3].SpeakerID)
	assert.Equal(t, fixedNow, rec.Log[0].Timestamp)
	assert.Equal(t, []string{"I checked 1"}, seer.Speeches)
	assert.Len(t, rec.SpeechesBy(2), 1)
	assert.Len(t, rec.BallotsBy(3), 1)

	private := rec.FactionLog(CampHostile)
	require.Len(t, private, 1)
	assert.Equal(t, EntryPrivate, private[0].Kind)
	for _, e := range rec.Log {
		assert.NotEqual(t, "kill 2", e.Content, "faction message leaked to public log")
	}
	assert.Empty(t, rec.FactionLog(CampAllied))
}

func TestCurerLedgerAndInspections(t *testing.T) {
	rec := newTestRecord(t, RoleEliminator, RoleSeer, RoleCurer)
	rec.Round = 2
	wolf, _ := rec.Participant(1)
	curer, _ := rec.Participant(3)

	curer.Role.HasCure = false
	rec.RecordCurerAction(ActionCure, wolf, curer.Role)
	rec.RecordCurerAction(ActionSkip, nil, curer.Role)

	want := []CurerEntry{
		{Round: 2, Action: ActionCure, TargetID: 1, TargetName: "P1", HasPoison: true, Timestamp: fixedNow},
		{Round: 2, Action: ActionSkip, TargetName: "none", HasPoison: true, Timestamp: fixedNow},
	}
	if diff := cmp.Diff(want, rec.CurerLedger); diff != "" {
		t.Errorf("ledger mismatch (-want +got):\n%s", diff)
	}

	in := rec.RecordInspection(2, wolf)
	assert.True(t, in.Hostile)
	assert.Len(t, rec.Inspections[2], 1)
}

func TestExport(t *testing.T) {
	rec := newTestRecord(t, RoleEliminator, RoleSeer, RolePlain)
	rec.Board = "custom"
	rec.Round = 3
	rec.MarkDead(1)
	rec.SetSheriff(2)
	seer, _ := rec.Participant(2)
	wolf, _ := rec.Participant(1)
	rec.RecordInspection(2, wolf)
	rec.AddSpeech(seer, "hello")

	doc := rec.Export(CampAllied, "all werewolves are dead")

	assert.Equal(t, GameInfo{
		GameID:       "test",
		EndTime:      fixedNow,
		Winner:       CampAllied,
		TotalRounds:  3,
		Board:        "custom",
		TotalPlayers: 3,
		AlivePlayers: 2,
		DeadPlayers:  1,
	}, doc.GameInfo)
	require.Len(t, doc.Players, 3)
	assert.False(t, doc.Players[0].Alive)
	assert.True(t, doc.Players[1].Sheriff)
	assert.Equal(t, RoleSeer, doc.Players[1].Role)
	assert.Len(t, doc.Conversation, 1)
	assert.Len(t, doc.Inspections[2], 1)
	assert.Equal(t, "all werewolves are dead", doc.VictoryReason)

	// the export does not alias the record
	doc.Conversation[0].Content = "changed"
	assert.Equal(t, "hello", rec.Log[0].Content)
}

func TestSnapshotConceal(t *testing.T) {
	rec := newTestRecord(t, RoleEliminator, RolePlain, RoleSeer)
	snap := rec.Snapshot()

	hidden := snap.Conceal(func(p PlayerSummary) bool { return p.ID == 1 })

	first, _ := hidden.Player(1)
	second, _ := hidden.Player(2)
	assert.NotEmpty(t, first.Role)
	assert.Empty(t, second.Role)
	assert.Empty(t, second.Camp)
	orig, _ := snap.Player(2)
	assert.NotEmpty(t, orig.Role, "the source snapshot is untouched")
}
