package services

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/YashJain2410/StudyBuddy/models"
)

var ErrBadStateKey = errors.New("invalid state key")

var stateKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// VideoStat is the per-content rollup kept in the tracker state blob.
type VideoStat struct {
	TotalSeconds int `json:"totalSeconds"`
	TotalViews   int `json:"totalViews"`
}

// TrackerState is the client-continuity blob: a non-authoritative mirror of
// the tracker used to resume offline or between devices. The server account
// document remains the source of truth.
type TrackerState struct {
	History        []models.WatchSession `json:"history"`
	Notes          map[string]string     `json:"notes"`
	Stats          map[string]VideoStat  `json:"stats"`
	Coins          int                   `json:"coins"`
	Streak         int                   `json:"streak"`
	LastDayWatched *time.Time            `json:"lastDayWatched"`
}

// NewDefaultState is the single place defaults come from; no handler
// invents its own fallback blob.
func NewDefaultState() *TrackerState {
	return &TrackerState{
		History: []models.WatchSession{},
		Notes:   map[string]string{},
		Stats:   map[string]VideoStat{},
		Coins:   InitialCoins,
		Streak:  0,
	}
}

// StateRepository persists one TrackerState blob per key.
type StateRepository interface {
	Load(key string) (*TrackerState, error)
	Save(key string, state *TrackerState) error
}

// FileStateRepository keeps each blob as a JSON file under dir.
type FileStateRepository struct {
	dir string
}

func NewFileStateRepository(dir string) *FileStateRepository {
	return &FileStateRepository{dir: dir}
}

func (r *FileStateRepository) path(key string) (string, error) {
	if !stateKeyPattern.MatchString(key) {
		return "", ErrBadStateKey
	}
	return filepath.Join(r.dir, key+".json"), nil
}

// Load returns the stored blob, or a fresh default state when none exists
// or the stored one is unreadable.
func (r *FileStateRepository) Load(key string) (*TrackerState, error) {
	p, err := r.path(key)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(p)
	if err != nil {
		return NewDefaultState(), nil
	}

	state := NewDefaultState()
	if err := json.Unmarshal(raw, state); err != nil {
		return NewDefaultState(), nil
	}
	return state, nil
}

func (r *FileStateRepository) Save(key string, state *TrackerState) error {
	p, err := r.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return err
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return os.WriteFile(p, raw, 0o644)
}
