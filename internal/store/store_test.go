package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronzipp/werewolf/internal/models"
)

var ended = time.Date(2025, 3, 4, 21, 30, 0, 0, time.UTC)

func gameLog(id string, end time.Time) models.GameLog {
	return models.GameLog{
		GameInfo: models.GameInfo{
			GameID:       id,
			EndTime:      end,
			Winner:       models.CampAllied,
			TotalRounds:  3,
			Board:        "basic",
			TotalPlayers: 9,
			AlivePlayers: 4,
			DeadPlayers:  5,
		},
		Players: []models.PlayerSummary{
			{ID: 1, Name: "Ada", Seat: 1, Role: models.RoleSeer, Camp: models.CampAllied, Alive: true, Human: true},
		},
		Conversation: []models.LogEntry{
			{Round: 1, Phase: models.PhaseDay, SpeakerID: 1, SpeakerName: "Ada", Kind: models.EntrySpeech, Content: "hi", Timestamp: end},
		},
		Inspections:   map[int][]models.Inspection{1: {{Round: 1, TargetID: 2, TargetName: "AI-2", Hostile: true}}},
		VictoryReason: "Every werewolf has been eliminated. The village is safe.",
	}
}

func TestMemoryArchive(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Save(context.Background(), gameLog("b", ended)))
	require.NoError(t, m.Save(context.Background(), gameLog("a", ended.Add(time.Hour))))

	assert.True(t, m.Exists("a"))
	got, ok := m.Get("b")
	require.True(t, ok)
	assert.Equal(t, "basic", got.GameInfo.Board)

	list := m.List()
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].GameID, "oldest first")

	m.Delete("b")
	assert.False(t, m.Exists("b"))
	assert.ErrorIs(t, m.Save(context.Background(), models.GameLog{}), ErrMissingID)
}

func TestFilesWriteAndRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	f := NewFiles(dir)
	f.now = func() time.Time { return ended }
	doc := gameLog(uuid.NewString(), ended)

	path, err := f.Write(doc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "game_20250304_213000.json"), path)

	back, err := ReadFile(path)
	require.NoError(t, err)
	if diff := cmp.Diff(doc, back); diff != "" {
		t.Errorf("game log changed on disk (-want +got):\n%s", diff)
	}
}

func openTempSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	_, err := OpenSQLite(context.Background(), " ")
	assert.Error(t, err)
}

func TestSQLiteArchive(t *testing.T) {
	s := openTempSQLite(t)
	ctx := context.Background()
	doc := gameLog("game-1", ended)

	require.NoError(t, s.Save(ctx, doc))
	assert.ErrorIs(t, s.Save(ctx, doc), ErrAlreadyExists)
	require.NoError(t, s.Save(ctx, gameLog("game-0", ended.Add(-time.Hour))))

	got, err := s.Get(ctx, "game-1")
	require.NoError(t, err)
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Errorf("archived game mismatch (-want +got):\n%s", diff)
	}

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "game-0", list[0].GameID)
	if diff := cmp.Diff(doc.GameInfo, list[1]); diff != "" {
		t.Errorf("listed game mismatch (-want +got):\n%s", diff)
	}
}

type failing struct{}

func (failing) Save(context.Context, models.GameLog) error { return errors.New("disk full") }

func TestSaveAllKeepsGoing(t *testing.T) {
	m := NewMemory()

	err := SaveAll(context.Background(), zerolog.Nop(), gameLog("g", ended), failing{}, nil, m)

	assert.ErrorContains(t, err, "disk full")
	assert.True(t, m.Exists("g"), "later archives still run")
}
