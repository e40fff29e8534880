package services

import (
	"math"
	"time"

	"github.com/YashJain2410/StudyBuddy/models"
)

// RecentHistoryLimit caps history payloads in API responses. The full log
// stays in the user document.
const RecentHistoryLimit = 5

// DayActivity is one calendar day's total for the monthly view.
type DayActivity struct {
	TotalSeconds int `json:"totalSeconds"`
}

// RecentHistory returns at most n entries from a newest-first history.
func RecentHistory(history []models.WatchSession, n int) []models.WatchSession {
	if history == nil {
		return []models.WatchSession{}
	}
	if len(history) > n {
		return history[:n]
	}
	return history
}

// WeeklyStats buckets the last 7 calendar days (ending on now's day) into
// minutes watched per day. Days without sessions report zero.
func WeeklyStats(history []models.WatchSession, now time.Time) map[string]int {
	weekStart := DayStart(now).AddDate(0, 0, -6)

	stats := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		stats[DayKey(weekStart.AddDate(0, 0, i))] = 0
	}

	for _, entry := range history {
		if entry.WatchedAt.Before(weekStart) {
			continue
		}
		key := DayKey(entry.WatchedAt)
		if _, ok := stats[key]; ok {
			stats[key] += int(math.Round(float64(entry.SecondsWatched) / 60))
		}
	}
	return stats
}

// MonthlyActivity buckets the whole history into per-day watch totals for
// the calendar view. Only days with activity appear.
func MonthlyActivity(history []models.WatchSession) map[string]DayActivity {
	activity := make(map[string]DayActivity)
	for _, entry := range history {
		key := DayKey(entry.WatchedAt)
		day := activity[key]
		day.TotalSeconds += entry.SecondsWatched
		activity[key] = day
	}
	return activity
}

// GetRecentHistory loads the account and returns its newest n sessions.
func GetRecentHistory(userID string, n int) ([]models.WatchSession, error) {
	user, err := GetAccount(userID)
	if err != nil {
		return nil, err
	}
	return RecentHistory(user.History, n), nil
}
