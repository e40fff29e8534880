package services

import (
	"sync"
	"time"

	"github.com/YashJain2410/StudyBuddy/models"
)

// SessionManager holds at most one live SessionRecorder per user. Events
// from the player (samples, visibility losses, teardown) address the
// recorder by user id.
type SessionManager struct {
	mu        sync.Mutex
	recorders map[string]*SessionRecorder
}

func NewSessionManager() *SessionManager {
	return &SessionManager{recorders: make(map[string]*SessionRecorder)}
}

func (m *SessionManager) recorder(userID string) (*SessionRecorder, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recorders[userID]
	return r, ok
}

// Start opens a session for the user. A still-active session must be
// finalized or canceled first.
func (m *SessionManager) Start(userID, contentID, sourceURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recorders[userID]; ok {
		return ErrSessionActive
	}
	r := NewSessionRecorder()
	if err := r.Start(contentID, sourceURL); err != nil {
		return err
	}
	m.recorders[userID] = r
	return nil
}

// Sample feeds a playback-position sample into the user's live session.
func (m *SessionManager) Sample(userID string, pos float64) error {
	r, ok := m.recorder(userID)
	if !ok {
		return ErrNoSession
	}
	r.Sample(pos)
	return nil
}

// RecordSwitch counts one visibility loss for the user's live session.
func (m *SessionManager) RecordSwitch(userID string) error {
	r, ok := m.recorder(userID)
	if !ok {
		return ErrNoSession
	}
	r.RecordSwitch()
	return nil
}

// SetNote attaches a note and tag to the user's live session.
func (m *SessionManager) SetNote(userID, note, tag string) error {
	r, ok := m.recorder(userID)
	if !ok {
		return ErrNoSession
	}
	r.SetNote(note, tag)
	return nil
}

// Finalize closes the user's live session exactly once and returns the
// completed WatchSession, or nil when it fell under the anti-spam floor.
// A second call without a new Start returns ErrNoSession.
func (m *SessionManager) Finalize(userID string, now time.Time) (*models.WatchSession, error) {
	m.mu.Lock()
	r, ok := m.recorders[userID]
	delete(m.recorders, userID)
	m.mu.Unlock()
	if !ok {
		return nil, ErrNoSession
	}
	return r.Finalize(now)
}

// Cancel drops the user's live session with no ledger or history effect.
func (m *SessionManager) Cancel(userID string) {
	m.mu.Lock()
	delete(m.recorders, userID)
	m.mu.Unlock()
}
