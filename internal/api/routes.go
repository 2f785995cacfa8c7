package api

import (
	"alcyxob/fitcoach/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(
	router *gin.Engine,
	authService service.AuthService,
	onboardingService service.OnboardingService,
	dashboardService service.DashboardService,
) {
	authHandler := NewAuthHandler(authService)
	onboardingHandler := NewOnboardingHandler(onboardingService)
	dashboardHandler := NewDashboardHandler(dashboardService)

	authMiddleware := AuthMiddleware(authService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/google", authHandler.GoogleLogin)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Onboarding ---
		onboardingGroup := protected.Group("/onboarding")
		{
			onboardingGroup.GET("", onboardingHandler.GetState)
			onboardingGroup.GET("/options", onboardingHandler.Options)
			onboardingGroup.PATCH("/profile", onboardingHandler.UpdateProfile)
			onboardingGroup.POST("/next", onboardingHandler.Next)
			onboardingGroup.POST("/back", onboardingHandler.Back)
		}

		// --- Dashboard ---
		// Every route answers 409 until onboarding is finished.
		dashboardGroup := protected.Group("/dashboard")
		{
			dashboardGroup.GET("", dashboardHandler.Overview())
			dashboardGroup.GET("/workouts", dashboardHandler.Workouts())
			dashboardGroup.GET("/nutrition", dashboardHandler.Nutrition())
			dashboardGroup.GET("/supplements", dashboardHandler.Supplements())
			dashboardGroup.GET("/progress", dashboardHandler.Progress())
			dashboardGroup.GET("/community", dashboardHandler.Community())
			dashboardGroup.PUT("/tab", dashboardHandler.SetActiveTab)

			dashboardGroup.POST("/progress/photos/:slot", dashboardHandler.PhotoUploadURL)
			dashboardGroup.GET("/progress/photos/:slot", dashboardHandler.PhotoDownloadURL)
		}
	}
}
