package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/YashJain2410/StudyBuddy/services"

	"github.com/gin-gonic/gin"
)

var sessions = services.NewSessionManager()

// StartSession opens a live watch session for the current user.
func StartSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body struct {
			VideoID string `json:"videoId"`
			URL     string `json:"url"`
		}
		if err := c.BindJSON(&body); err != nil || body.VideoID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "videoId is required"})
			return
		}

		if err := sessions.Start(userID, body.VideoID, body.URL); err != nil {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "A session is already active"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// SampleSession feeds one playback-position sample.
func SampleSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body struct {
			Position float64 `json:"position"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid payload"})
			return
		}

		if err := sessions.Sample(userID, body.Position); err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "No active session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// SwitchSession counts one visibility loss on the live session. The coin
// penalty stays on /coins-loss; this only feeds the session's counter.
func SwitchSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}

		if err := sessions.RecordSwitch(userID); err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "No active session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// NoteSession attaches a note and tag to the live session.
func NoteSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body struct {
			Note string `json:"note"`
			Tag  string `json:"tag"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid payload"})
			return
		}

		if err := sessions.SetNote(userID, body.Note, body.Tag); err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "No active session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// FinalizeSession closes the live session and, when it survives the
// anti-spam floor, applies the ledger rewards and appends it to history.
// The page-teardown path calls this fire-and-forget; a repeat call is a
// no-op, never a double-apply.
func FinalizeSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}

		now := time.Now()
		session, err := sessions.Finalize(userID, now)
		if errors.Is(err, services.ErrNoSession) {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "No active session"})
			return
		}
		if err != nil {
			writeServiceError(c, err)
			return
		}
		if session == nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Session too short, not saved"})
			return
		}

		user, err := services.ApplyCompletedSession(userID, *session, now)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"coins":   user.Coins,
			"streak":  user.Streak,
			"history": services.RecentHistory(user.History, services.RecentHistoryLimit),
		})
	}
}

// CancelSession drops the live session without saving anything.
func CancelSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		sessions.Cancel(userID)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
