package services_test

import (
	"testing"
	"time"

	"github.com/YashJain2410/StudyBuddy/services"
)

func TestDayKey(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"morning", time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC), "2025-01-10"},
		{"midnight", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), "2025-01-10"},
		{"just before midnight", time.Date(2025, 1, 10, 23, 59, 59, 0, time.UTC), "2025-01-10"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := services.DayKey(tc.in); got != tc.want {
				t.Fatalf("DayKey = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 1, 10, 1, 0, 0, 0, time.UTC)
	b := time.Date(2025, 1, 10, 23, 0, 0, 0, time.UTC)
	c := time.Date(2025, 1, 11, 0, 1, 0, 0, time.UTC)

	if !services.SameDay(a, b) {
		t.Error("expected same day for two times on 2025-01-10")
	}
	if services.SameDay(b, c) {
		t.Error("expected different days across midnight")
	}
}

func TestDayGap(t *testing.T) {
	last := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 1, 11, 12, 0, 0, 0, time.UTC)

	if got := services.DayGap(last, now); got != 1.5 {
		t.Fatalf("DayGap = %v, want 1.5", got)
	}
}

func TestDayStart(t *testing.T) {
	in := time.Date(2025, 1, 10, 18, 30, 45, 0, time.UTC)
	want := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	if got := services.DayStart(in); !got.Equal(want) {
		t.Fatalf("DayStart = %v, want %v", got, want)
	}
}
