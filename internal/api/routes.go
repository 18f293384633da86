package api

import (
	"net/http"

	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires all handlers onto the Gin engine.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	userService service.UserService,
	scheduleService service.ScheduleService,
	goalService service.GoalService,
) {
	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	scheduleHandler := NewScheduleHandler(scheduleService)
	goalHandler := NewGoalHandler(goalService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Profile ---
		protected.GET("/me", userHandler.GetMe)
		protected.PUT("/me", userHandler.UpdateMe)
		protected.POST("/me/avatar", userHandler.RequestAvatarUpload)
		protected.PUT("/me/avatar", userHandler.ConfirmAvatar)

		// --- Workout schedule ---
		scheduleGroup := protected.Group("/schedule")
		{
			scheduleGroup.GET("", scheduleHandler.GetSchedule)
			scheduleGroup.POST("", scheduleHandler.CreateSession)
			// Static segments before the :id routes so Gin does not
			// treat "advice" or "stats" as session ids.
			scheduleGroup.GET("/advice", scheduleHandler.GetAdvice)
			scheduleGroup.GET("/stats/summary", scheduleHandler.GetStats)
			scheduleGroup.GET("/:id", scheduleHandler.GetSession)
			scheduleGroup.PUT("/:id", scheduleHandler.UpdateSession)
			scheduleGroup.DELETE("/:id", scheduleHandler.DeleteSession)
			scheduleGroup.POST("/:id/completions", scheduleHandler.LogCompletion)
		}

		// --- Goals ---
		goalGroup := protected.Group("/goals")
		{
			goalGroup.GET("", goalHandler.GetGoals)
			goalGroup.POST("", goalHandler.CreateGoal)
			goalGroup.PUT("/:id", goalHandler.UpdateGoal)
			goalGroup.PATCH("/:id/progress", goalHandler.UpdateProgress)
			goalGroup.DELETE("/:id", goalHandler.DeleteGoal)
		}
	}
}
