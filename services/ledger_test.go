package services_test

import (
	"testing"
	"time"

	"github.com/YashJain2410/StudyBuddy/services"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestApplySession_FirstEver(t *testing.T) {
	prev := services.LedgerState{Coins: services.InitialCoins, Streak: 0, LastDayWatched: nil}
	now := time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC)

	next := services.ApplySession(prev, now)

	if next.Streak != 1 {
		t.Errorf("streak = %d, want 1", next.Streak)
	}
	if next.Coins != services.InitialCoins+services.DailyBonus {
		t.Errorf("coins = %d, want %d (daily bonus once, no streak bonus)", next.Coins, services.InitialCoins+services.DailyBonus)
	}
	if next.LastDayWatched == nil || services.DayKey(*next.LastDayWatched) != "2025-01-10" {
		t.Errorf("lastDayWatched = %v, want 2025-01-10", next.LastDayWatched)
	}
}

func TestApplySession_SameDayNoChange(t *testing.T) {
	prev := services.LedgerState{Coins: 60, Streak: 4, LastDayWatched: day(2025, 1, 10)}
	now := time.Date(2025, 1, 10, 22, 0, 0, 0, time.UTC)

	next := services.ApplySession(prev, now)

	if next.Coins != prev.Coins || next.Streak != prev.Streak {
		t.Errorf("same-day session changed state: coins %d->%d streak %d->%d",
			prev.Coins, next.Coins, prev.Streak, next.Streak)
	}
	if !next.LastDayWatched.Equal(*prev.LastDayWatched) {
		t.Errorf("lastDayWatched moved on a same-day session")
	}
}

func TestApplySession_ConsecutiveDay(t *testing.T) {
	prev := services.LedgerState{Coins: 60, Streak: 3, LastDayWatched: day(2025, 1, 10)}
	now := time.Date(2025, 1, 11, 9, 0, 0, 0, time.UTC)

	next := services.ApplySession(prev, now)

	if next.Streak != 4 {
		t.Errorf("streak = %d, want 4", next.Streak)
	}
	if want := 60 + services.DailyBonus + services.StreakBonus; next.Coins != want {
		t.Errorf("coins = %d, want %d (daily + streak bonus)", next.Coins, want)
	}
	if services.DayKey(*next.LastDayWatched) != "2025-01-11" {
		t.Errorf("lastDayWatched = %v, want 2025-01-11", next.LastDayWatched)
	}
}

func TestApplySession_GapResetsStreak(t *testing.T) {
	prev := services.LedgerState{Coins: 60, Streak: 7, LastDayWatched: day(2025, 1, 10)}
	now := time.Date(2025, 1, 13, 9, 0, 0, 0, time.UTC)

	next := services.ApplySession(prev, now)

	if next.Streak != 1 {
		t.Errorf("streak = %d, want 1 after a 3-day gap", next.Streak)
	}
	if want := 60 + services.DailyBonus; next.Coins != want {
		t.Errorf("coins = %d, want %d (daily bonus only)", next.Coins, want)
	}
}

func TestApplySession_FirstStreakDayGetsNoStreakBonus(t *testing.T) {
	// A prior day exists but streak was zeroed; resulting streak of 1
	// earns no streak bonus.
	prev := services.LedgerState{Coins: 50, Streak: 0, LastDayWatched: day(2025, 1, 10)}
	now := time.Date(2025, 1, 11, 9, 0, 0, 0, time.UTC)

	next := services.ApplySession(prev, now)

	if next.Streak != 1 {
		t.Errorf("streak = %d, want 1", next.Streak)
	}
	if want := 50 + services.DailyBonus; next.Coins != want {
		t.Errorf("coins = %d, want %d", next.Coins, want)
	}
}

func TestApplyPenalty_ClampsAtZero(t *testing.T) {
	coins := 12
	for i := 0; i < 10; i++ {
		coins = services.ApplyPenalty(coins, services.TabSwitchCost)
		if coins < 0 {
			t.Fatalf("coins went negative after %d penalties: %d", i+1, coins)
		}
	}
	if coins != 0 {
		t.Fatalf("coins = %d, want 0 after repeated penalties", coins)
	}
}

func TestApplyPenalty(t *testing.T) {
	tests := []struct {
		name  string
		coins int
		loss  int
		want  int
	}{
		{"normal deduction", 50, 5, 45},
		{"exact to zero", 5, 5, 0},
		{"below zero clamps", 3, 5, 0},
		{"negative loss ignored", 10, -5, 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := services.ApplyPenalty(tc.coins, tc.loss); got != tc.want {
				t.Fatalf("ApplyPenalty(%d, %d) = %d, want %d", tc.coins, tc.loss, got, tc.want)
			}
		})
	}
}
