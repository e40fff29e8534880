package routes

import (
	"github.com/YashJain2410/StudyBuddy/controllers"
	"github.com/YashJain2410/StudyBuddy/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.RouterGroup) {
	router.POST("/auth/signup", controllers.Signup())
	router.POST("/auth/login", controllers.Login())

	// The relay carries no account state, so no token is required.
	router.GET("/detection", controllers.DetectionSocket(controllers.NewDetectorAnalyzer))

	protected := router.Group("/")
	protected.Use(middleware.Authenticate())
	{
		protected.GET("/auth/me", controllers.GetMe())

		tracking := protected.Group("/tracking")
		{
			tracking.POST("/add-history", controllers.AddHistory())
			tracking.POST("/coins", controllers.AddCoins())
			tracking.POST("/coins-loss", controllers.CoinsLoss())
			tracking.POST("/videos-watched", controllers.VideosWatched())
			tracking.GET("/history", controllers.GetHistory())
			tracking.GET("/weekly-stats", controllers.GetWeeklyStats())
			tracking.GET("/monthly-activity", controllers.GetMonthlyActivity())
			tracking.GET("/stats", controllers.GetStats())
			tracking.GET("/dashboard", controllers.GetDashboard())
			tracking.GET("/state", controllers.GetState())
			tracking.PUT("/state", controllers.PutState())

			tracking.POST("/session/start", controllers.StartSession())
			tracking.POST("/session/sample", controllers.SampleSession())
			tracking.POST("/session/switch", controllers.SwitchSession())
			tracking.POST("/session/note", controllers.NoteSession())
			tracking.POST("/session/finalize", controllers.FinalizeSession())
			tracking.POST("/session/cancel", controllers.CancelSession())
		}
	}
}
