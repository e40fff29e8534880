package controllers

import (
	"log"
	"net/http"

	"github.com/YashJain2410/StudyBuddy/config"
	"github.com/YashJain2410/StudyBuddy/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  64 * 1024,
	WriteBufferSize: 4 * 1024,
	// The frontend dev server runs on a different origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// AnalyzerFactory spawns one analysis resource per detection connection.
type AnalyzerFactory func() (services.AnalysisService, error)

// NewDetectorAnalyzer starts the configured external detector process.
func NewDetectorAnalyzer() (services.AnalysisService, error) {
	return services.StartDetector(config.DetectorCommand())
}

// DetectionSocket relays webcam frames from one websocket client to its
// analysis process and streams result records back. Frame payloads pass
// through verbatim; per-frame and per-line failures never terminate the
// connection, only client disconnect does.
func DetectionSocket(newAnalyzer AnalyzerFactory) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the HTTP error.
			return
		}
		defer conn.Close()

		connID := uuid.NewString()
		log.Println("detection client connected:", connID)

		analyzer, err := newAnalyzer()
		if err != nil {
			log.Println("failed to start analyzer:", err)
			_ = conn.WriteMessage(websocket.TextMessage, services.ErrorRecord("analysis service unavailable"))
			return
		}
		defer func() {
			if err := analyzer.Close(); err != nil {
				log.Println("analyzer close:", connID, err)
			}
		}()

		// Result pump: one websocket message per analysis record. After a
		// write failure the channel is still drained so the analyzer's
		// readers can finish.
		done := make(chan struct{})
		go func() {
			defer close(done)
			writeFailed := false
			for rec := range analyzer.Results() {
				if writeFailed {
					continue
				}
				if err := conn.WriteMessage(websocket.TextMessage, rec); err != nil {
					writeFailed = true
				}
			}
		}()

		for {
			_, frame, err := conn.ReadMessage()
			if err != nil {
				break
			}
			if len(frame) == 0 {
				continue
			}
			if err := analyzer.SubmitFrame(frame); err != nil {
				log.Println("submit frame:", connID, err)
				break
			}
		}

		log.Println("detection client disconnected:", connID)
		_ = analyzer.Close()
		_ = conn.Close()
		<-done
	}
}
