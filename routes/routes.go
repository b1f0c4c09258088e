package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amravati-mc/e-library-backend/controllers"
	"github.com/amravati-mc/e-library-backend/middleware"
	"github.com/amravati-mc/e-library-backend/models"
	"github.com/amravati-mc/e-library-backend/ws"
)

func SetupRouter(r *gin.Engine, db *gorm.DB, hub *ws.Hub) *gin.Engine {
	r.Use(middleware.DBMiddleware(db))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck(hub))

	api := r.Group("/api")
	api.Use(middleware.AccessLogMiddleware())

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/logout", controllers.Logout)
		auth.GET("/me", middleware.AuthMiddleware(), controllers.Me)
	}

	// Public catalog
	api.GET("/books", controllers.GetBooks)
	api.GET("/books/:id", controllers.GetBook)
	api.GET("/categories", controllers.GetCategories)
	api.GET("/categories/:id/books", controllers.GetCategoryBooks)
	api.GET("/announcements", controllers.GetAnnouncements)

	leaderboard := api.Group("/leaderboard")
	{
		leaderboard.GET("/top-readers", controllers.GetTopReaders)
		leaderboard.GET("/streak-leaders", controllers.GetStreakLeaders)
		leaderboard.GET("/most-reviewers", controllers.GetMostReviewers)
	}

	// Reading progress, session required
	history := api.Group("/reading-history")
	{
		history.Use(middleware.AuthMiddleware())
		history.GET("", controllers.GetHistory)
		history.GET("/recent", controllers.GetRecentReads)
		history.POST("", controllers.SaveProgress)
		history.POST("/bookmark/:bookId", controllers.ToggleBookmark)
	}

	user := api.Group("/user")
	{
		user.Use(middleware.AuthMiddleware())
		user.GET("/reading-streak", controllers.GetReadingStreak)
		user.GET("/reading-goal", controllers.GetReadingGoal)
		user.POST("/reading-goal", controllers.UpdateReadingGoal)
		user.GET("/achievements", controllers.GetAchievements)
		user.GET("/wishlist", controllers.GetWishlist)
	}

	admin := api.Group("")
	{
		admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.RoleAdmin))

		// Catalog management
		admin.POST("/books", controllers.CreateBook)
		admin.PATCH("/books/:id", controllers.UpdateBook)
		admin.DELETE("/books/:id", controllers.DeleteBook)
		admin.POST("/books/:id/generate-summary", controllers.GenerateSummary)
		admin.POST("/categories", controllers.CreateCategory)
		admin.DELETE("/categories/:id", controllers.DeleteCategory)

		// Announcements
		admin.POST("/announcements", controllers.CreateAnnouncement)
		admin.DELETE("/announcements/:id", controllers.DeleteAnnouncement)

		// File uploads (covers, PDFs)
		admin.POST("/upload", controllers.UploadFile)

		// Back-office dashboards
		admin.GET("/admin/analytics", controllers.GetAnalytics)
		admin.GET("/admin/analytics-data", controllers.GetAnalyticsData)
		admin.GET("/admin/activity-logs", controllers.GetActivityLogs)
		admin.GET("/admin/sessions", controllers.GetActiveSessions)
		admin.GET("/admin/user-activity/:period", controllers.GetUserActivity)
		admin.GET("/admin/users", controllers.GetUsers)
		admin.PATCH("/admin/users/:id/block", controllers.BlockUser)
		admin.GET("/admin/generate-report", controllers.GenerateReport)
		admin.GET("/admin/export-excel", controllers.ExportExcel)
	}

	r.GET("/ws", ws.HandleActiveUsers(hub))

	return r
}
