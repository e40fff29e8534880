package controllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/YashJain2410/StudyBuddy/config"
	"github.com/YashJain2410/StudyBuddy/helpers"
	"github.com/YashJain2410/StudyBuddy/models"
	"github.com/YashJain2410/StudyBuddy/services"

	"github.com/gin-gonic/gin"
)

var stateRepo services.StateRepository = services.NewFileStateRepository(config.GuestStateDir())

func getUserID(c *gin.Context) string {
	claimsVal, ok := c.Get("claims")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return ""
	}
	claims, ok := claimsVal.(*helpers.Claims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid claims"})
		return ""
	}
	return claims.UserID
}

// writeServiceError maps service failures onto the uniform envelope without
// leaking internals.
func writeServiceError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrAccountNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	log.Println("tracking error:", err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
}

// AddHistory applies one finalized watch session: rewards via the ledger,
// then the entry goes to the head of the history. Sessions under the
// anti-spam floor are acknowledged but never persisted.
func AddHistory() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body struct {
			VideoID        string  `json:"videoId"`
			URL            string  `json:"url"`
			SecondsWatched float64 `json:"secondsWatched"`
			TabSwitches    int     `json:"tabSwitches"`
			Note           string  `json:"note"`
			Tag            string  `json:"tag"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid session payload"})
			return
		}

		if body.SecondsWatched < 5 {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Session too short, not saved"})
			return
		}
		if body.TabSwitches < 0 {
			body.TabSwitches = 0
		}

		now := time.Now()
		entry := models.WatchSession{
			VideoID:        body.VideoID,
			URL:            body.URL,
			SecondsWatched: int(math.Round(body.SecondsWatched)),
			TabSwitches:    body.TabSwitches,
			WatchedAt:      now,
			Note:           body.Note,
			Tag:            body.Tag,
		}

		user, err := services.ApplyCompletedSession(userID, entry, now)
		if err != nil {
			writeServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"history": services.RecentHistory(user.History, services.RecentHistoryLimit),
		})
	}
}

// AddCoins credits coins to the current user.
func AddCoins() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body struct {
			Amount int `json:"amount"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid payload"})
			return
		}
		if body.Amount <= 0 {
			body.Amount = 1
		}

		coins, err := services.AddCoins(userID, body.Amount)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "coins": coins})
	}
}

// CoinsLoss applies the live tab-switch penalty, clamped at zero.
func CoinsLoss() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body struct {
			Loss int `json:"loss"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid payload"})
			return
		}
		if body.Loss <= 0 {
			body.Loss = services.TabSwitchCost
		}

		user, err := services.DeductSwitchPenalty(userID, body.Loss)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":        true,
			"coins":          user.Coins,
			"videosSwitched": user.VideosSwitched,
		})
	}
}

// VideosWatched bumps the watched counter and maintains the streak.
func VideosWatched() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}

		user, err := services.RecordVideoWatched(userID, time.Now())
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":        true,
			"videosWatched":  user.VideosWatched,
			"streak":         user.Streak,
			"lastDayWatched": user.LastDayWatched,
		})
	}
}

// GetHistory returns the newest 5 sessions.
func GetHistory() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}

		history, err := services.GetRecentHistory(userID, services.RecentHistoryLimit)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "history": history})
	}
}

// GetWeeklyStats reports minutes watched per day over the past 7 days,
// zero-filled.
func GetWeeklyStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}

		user, err := services.GetAccount(userID)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"stats":   services.WeeklyStats(user.History, time.Now()),
		})
	}
}

// GetMonthlyActivity reports per-day watch totals for the calendar view.
func GetMonthlyActivity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}

		user, err := services.GetAccount(userID)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"activity": services.MonthlyActivity(user.History),
		})
	}
}

// GetStats returns the raw counters.
func GetStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}

		user, err := services.GetAccount(userID)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"coins":          user.Coins,
			"videosWatched":  user.VideosWatched,
			"videosSwitched": user.VideosSwitched,
		})
	}
}

// GetDashboard returns the combined dashboard snapshot.
func GetDashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}

		user, err := services.GetAccount(userID)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":        true,
			"coins":          user.Coins,
			"streak":         user.Streak,
			"videosWatched":  user.VideosWatched,
			"videosSwitched": user.VideosSwitched,
			"history":        services.RecentHistory(user.History, services.RecentHistoryLimit),
		})
	}
}

// GetState returns the user's continuity blob (default state when none saved).
func GetState() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}

		state, err := stateRepo.Load(userID)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "state": state})
	}
}

// PutState replaces the user's continuity blob. This is the single sync
// point with the client cache; nothing else writes it.
func PutState() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var state services.TrackerState
		if err := c.BindJSON(&state); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid state payload"})
			return
		}

		if err := stateRepo.Save(userID, &state); err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
