package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aaronzipp/werewolf/internal/models"
)

// Files writes each game to <dir>/game_<timestamp>.json
type Files struct {
	dir string
	now func() time.Time
}

func NewFiles(dir string) *Files {
	return &Files{dir: dir, now: time.Now}
}

// Write stores doc and returns the file path
func (f *Files) Write(doc models.GameLog) (string, error) {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return "", fmt.Errorf("create log dir: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode game log: %w", err)
	}
	path := filepath.Join(f.dir, fmt.Sprintf("game_%s.json", f.now().Format("20060102_150405")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write game log: %w", err)
	}
	return path, nil
}

func (f *Files) Save(_ context.Context, doc models.GameLog) error {
	_, err := f.Write(doc)
	return err
}

// ReadFile loads a game log written by Files
func ReadFile(path string) (models.GameLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.GameLog{}, fmt.Errorf("read game log: %w", err)
	}
	var doc models.GameLog
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.GameLog{}, fmt.Errorf("decode game log: %w", err)
	}
	return doc, nil
}
