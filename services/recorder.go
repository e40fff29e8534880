package services

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/YashJain2410/StudyBuddy/models"
)

var (
	ErrSessionActive = errors.New("a session is already active")
	ErrNoSession     = errors.New("no active session")
)

// Watch-time accounting bounds.
const (
	// Playback-position deltas at or above this are seeks, not watch time.
	maxSampleDeltaSeconds = 60
	// Sessions shorter than this with no tab switches are discarded.
	minSessionSeconds = 5
)

// SessionRecorder tracks one in-progress watch session: accumulated watched
// seconds from playback-position samples plus a visibility-loss counter.
// One recorder per loaded content instance; a session finalizes exactly once.
type SessionRecorder struct {
	mu sync.Mutex

	active    bool
	contentID string
	sourceURL string

	lastPos   float64
	hasSample bool
	played    float64
	switches  int

	note string
	tag  string
}

func NewSessionRecorder() *SessionRecorder {
	return &SessionRecorder{}
}

// Start begins tracking a new content instance. The previous session must
// have been finalized (or never started) first.
func (r *SessionRecorder) Start(contentID, sourceURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active {
		return ErrSessionActive
	}
	r.active = true
	r.contentID = contentID
	r.sourceURL = sourceURL
	r.lastPos = 0
	r.hasSample = false
	r.played = 0
	r.switches = 0
	r.note = ""
	r.tag = ""
	return nil
}

// Sample feeds the current playback position, on the polling cadence, while
// playback is active. The first sample only sets the baseline. Positive
// deltas below the seek bound accumulate; a backwards jump rebases without
// accumulating.
func (r *SessionRecorder) Sample(pos float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active {
		return
	}
	if !r.hasSample {
		r.hasSample = true
		r.lastPos = pos
		return
	}
	delta := pos - r.lastPos
	if delta > 0 && delta < maxSampleDeltaSeconds {
		r.played += delta
	}
	r.lastPos = pos
}

// RecordSwitch counts one visibility-loss transition during the session.
func (r *SessionRecorder) RecordSwitch() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active {
		return
	}
	r.switches++
}

// SetNote attaches a free-form note and tag to the in-progress session.
func (r *SessionRecorder) SetNote(note, tag string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active {
		return
	}
	r.note = note
	r.tag = tag
}

// Elapsed returns the accumulated watched seconds so far.
func (r *SessionRecorder) Elapsed() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.played
}

// Switches returns the visibility-loss count so far.
func (r *SessionRecorder) Switches() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.switches
}

// Finalize closes the session and returns the completed WatchSession, or
// (nil, nil) when it falls under the anti-spam floor. Calling Finalize again
// without an intervening Start returns ErrNoSession, so teardown paths that
// race a natural end-of-content cannot double-apply a session. All
// in-progress state is cleared either way.
func (r *SessionRecorder) Finalize(now time.Time) (*models.WatchSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active {
		return nil, ErrNoSession
	}

	seconds := int(math.Floor(r.played))
	switches := r.switches
	session := &models.WatchSession{
		VideoID:        r.contentID,
		URL:            r.sourceURL,
		SecondsWatched: seconds,
		TabSwitches:    switches,
		WatchedAt:      now,
		Note:           r.note,
		Tag:            r.tag,
	}

	r.active = false
	r.contentID = ""
	r.sourceURL = ""
	r.lastPos = 0
	r.hasSample = false
	r.played = 0
	r.switches = 0
	r.note = ""
	r.tag = ""

	if seconds < minSessionSeconds && switches == 0 {
		return nil, nil
	}
	return session, nil
}
