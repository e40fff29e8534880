package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/YashJain2410/StudyBuddy/services"
)

var testNow = time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC)

func startedRecorder(t *testing.T) *services.SessionRecorder {
	t.Helper()
	r := services.NewSessionRecorder()
	if err := r.Start("dQw4w9WgXcQ", "https://youtu.be/dQw4w9WgXcQ"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return r
}

func TestStart_WhileActive(t *testing.T) {
	r := startedRecorder(t)
	if err := r.Start("other", "https://youtu.be/other"); !errors.Is(err, services.ErrSessionActive) {
		t.Fatalf("second Start err = %v, want ErrSessionActive", err)
	}
}

func TestSample_AccumulatesPositiveDeltas(t *testing.T) {
	r := startedRecorder(t)
	r.Sample(10) // baseline
	r.Sample(10.8)
	r.Sample(11.6)
	if got := r.Elapsed(); got < 1.59 || got > 1.61 {
		t.Fatalf("elapsed = %v, want ~1.6", got)
	}
}

func TestSample_SeekJumpIgnored(t *testing.T) {
	r := startedRecorder(t)
	r.Sample(0)
	r.Sample(10)
	before := r.Elapsed()

	// A 90-second jump is a seek, not watch time.
	r.Sample(100)
	if got := r.Elapsed(); got != before {
		t.Fatalf("elapsed = %v after seek, want unchanged %v", got, before)
	}

	// Accumulation resumes from the new position.
	r.Sample(101)
	if got := r.Elapsed(); got != before+1 {
		t.Fatalf("elapsed = %v after post-seek sample, want %v", got, before+1)
	}
}

func TestSample_BackwardSeekRebases(t *testing.T) {
	r := startedRecorder(t)
	r.Sample(50)
	r.Sample(55)
	r.Sample(20) // seek backwards: no accumulation, new baseline
	r.Sample(21)
	if got := r.Elapsed(); got != 6 {
		t.Fatalf("elapsed = %v, want 6", got)
	}
}

func TestFinalize_BelowFloorDiscarded(t *testing.T) {
	r := startedRecorder(t)
	r.Sample(0)
	r.Sample(3.2)

	session, err := r.Finalize(testNow)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if session != nil {
		t.Fatalf("session = %+v, want nil for a %ds session with no switches", session, 3)
	}
}

func TestFinalize_SwitchOnlySessionKept(t *testing.T) {
	// Short but with a recorded switch: still persisted.
	r := startedRecorder(t)
	r.Sample(0)
	r.Sample(2)
	r.RecordSwitch()

	session, err := r.Finalize(testNow)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if session == nil {
		t.Fatal("session with a tab switch was discarded")
	}
	if session.TabSwitches != 1 {
		t.Fatalf("tabSwitches = %d, want 1", session.TabSwitches)
	}
}

func TestFinalize_RoundsDownAndClears(t *testing.T) {
	r := startedRecorder(t)
	r.Sample(0)
	r.Sample(7.9)
	r.RecordSwitch()
	r.RecordSwitch()
	r.SetNote("derivatives intro", "math")

	session, err := r.Finalize(testNow)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if session == nil {
		t.Fatal("expected a session")
	}
	if session.SecondsWatched != 7 {
		t.Errorf("secondsWatched = %d, want 7 (floored)", session.SecondsWatched)
	}
	if session.TabSwitches != 2 {
		t.Errorf("tabSwitches = %d, want 2", session.TabSwitches)
	}
	if session.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("videoId = %q", session.VideoID)
	}
	if !session.WatchedAt.Equal(testNow) {
		t.Errorf("watchedAt = %v, want %v", session.WatchedAt, testNow)
	}
	if session.Note != "derivatives intro" || session.Tag != "math" {
		t.Errorf("note/tag = %q/%q", session.Note, session.Tag)
	}

	// Recorder is reusable after finalize.
	if err := r.Start("next", "https://youtu.be/next"); err != nil {
		t.Fatalf("Start after Finalize: %v", err)
	}
	if got := r.Elapsed(); got != 0 {
		t.Fatalf("elapsed carried over: %v", got)
	}
}

func TestFinalize_Twice(t *testing.T) {
	r := startedRecorder(t)
	r.Sample(0)
	r.Sample(30)

	first, err := r.Finalize(testNow)
	if err != nil || first == nil {
		t.Fatalf("first Finalize = (%v, %v)", first, err)
	}

	second, err := r.Finalize(testNow)
	if !errors.Is(err, services.ErrNoSession) {
		t.Fatalf("second Finalize err = %v, want ErrNoSession", err)
	}
	if second != nil {
		t.Fatalf("second Finalize returned a session: %+v", second)
	}
}

func TestSampleAndSwitch_InactiveNoOp(t *testing.T) {
	r := services.NewSessionRecorder()
	r.Sample(100)
	r.RecordSwitch()
	if _, err := r.Finalize(testNow); !errors.Is(err, services.ErrNoSession) {
		t.Fatal("expected ErrNoSession on a never-started recorder")
	}
}
