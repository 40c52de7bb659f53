package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/aaronzipp/werewolf/internal/models"
)

// Memory keeps finished games for the life of the process
type Memory struct {
	games map[string]models.GameLog
	mu    sync.RWMutex
}

// NewMemory creates an empty in-memory archive
func NewMemory() *Memory {
	return &Memory{
		games: make(map[string]models.GameLog),
	}
}

// Get retrieves a game by id
func (s *Memory) Get(id string) (models.GameLog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, exists := s.games[id]
	return doc, exists
}

// Set stores a game under its id
func (s *Memory) Set(doc models.GameLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[doc.GameInfo.GameID] = doc
}

// Delete removes a game
func (s *Memory) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
}

// Exists checks if a game id is archived
func (s *Memory) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.games[id]
	return exists
}

// List returns the archived games oldest first
func (s *Memory) List() []models.GameInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.GameInfo, 0, len(s.games))
	for _, doc := range s.games {
		out = append(out, doc.GameInfo)
	}
	slices.SortFunc(out, func(a, b models.GameInfo) int {
		if c := a.EndTime.Compare(b.EndTime); c != 0 {
			return c
		}
		return strings.Compare(a.GameID, b.GameID)
	})
	return out
}

func (s *Memory) Save(_ context.Context, doc models.GameLog) error {
	if doc.GameInfo.GameID == "" {
		return ErrMissingID
	}
	s.Set(doc)
	return nil
}
