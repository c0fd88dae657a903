package api

import (
	"net/http"
	"time"

	"github.com/openwellness/wellness-planner/internal/service"

	"github.com/gin-gonic/gin"
)

// authPage is the minimal sign-in entry point unauthenticated browser
// navigations get redirected to. API clients use /api/v1/auth directly.
const authPage = `<!DOCTYPE html>
<html>
<head><title>Wellness Planner - Sign In</title></head>
<body>
<h1>Wellness Planner</h1>
<p>Sign in via POST /api/v1/auth/login or create an account via POST /api/v1/auth/register.</p>
</body>
</html>`

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	jwtExpiration time.Duration,
	authService service.AuthService,
	workoutService service.WorkoutService,
	nutritionService service.NutritionService,
	plannerService service.PlannerService,
	profileService service.ProfileService,
) {
	authHandler := NewAuthHandler(authService, jwtExpiration)
	workoutHandler := NewWorkoutHandler(workoutService, plannerService)
	nutritionHandler := NewNutritionHandler(nutritionService, plannerService)
	profileHandler := NewProfileHandler(profileService)
	dashboardHandler := NewDashboardHandler(workoutService, nutritionService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.GET("/auth", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(authPage))
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
		protected.GET("/me", profileHandler.GetProfile)
		protected.PATCH("/me", profileHandler.UpdateProfile)
		protected.POST("/me/avatar-url", profileHandler.RequestAvatarUploadURL)
		protected.POST("/me/avatar", profileHandler.ConfirmAvatarUpload)

		protected.GET("/dashboard", dashboardHandler.GetDashboard)
		protected.GET("/calendar", workoutHandler.GetCalendar)

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			workoutGroup.GET("", workoutHandler.GetWorkouts)
			workoutGroup.POST("/generate", workoutHandler.GenerateWorkouts)
			workoutGroup.GET("/:id", workoutHandler.GetWorkoutByID)
			workoutGroup.PATCH("/:id", workoutHandler.UpdateWorkout)
			workoutGroup.POST("/:id/complete", workoutHandler.CompleteWorkout)
		}

		nutritionGroup := protected.Group("/nutrition")
		{
			nutritionGroup.POST("", nutritionHandler.CreateNutritionPlan)
			nutritionGroup.GET("", nutritionHandler.GetNutritionPlans)
			nutritionGroup.POST("/generate", nutritionHandler.GenerateNutritionPlan)
			nutritionGroup.PATCH("/:id", nutritionHandler.UpdateNutritionPlan)
		}
	}
}
