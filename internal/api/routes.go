package api

import (
	"alcyxob/fitness-tracker/internal/auth"
	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig carries everything the HTTP layer needs.
type RouterConfig struct {
	Services  *service.Services
	Verifier  auth.TokenVerifier
	Metrics   *metrics.Manager
	AuthRealm string
	// Gatherer backs /metrics; the endpoint is not mounted when nil.
	Gatherer prometheus.Gatherer
}

// NewRouter builds a gin engine with the shared middleware and every route.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger(), RequestMetrics(cfg.Metrics), PanicRecovery(cfg.Metrics))
	SetupRoutes(router, cfg)
	return router
}

func SetupRoutes(router *gin.Engine, cfg RouterConfig) {
	registerValidation()

	profileHandler := NewProfileHandler(cfg.Services.Profiles)
	programHandler := NewProgramHandler(cfg.Services.Programs)
	logHandler := NewLogHandler(cfg.Services.WorkoutLogs, cfg.Services.PersonalRecords)
	foodLogHandler := NewFoodLogHandler(cfg.Services.FoodLogs)
	mediaHandler := NewMediaHandler(cfg.Services.Media)
	exerciseHandler := NewExerciseHandler(cfg.Services.Exercises)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if cfg.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	apiV1 := router.Group("/api/v1")
	apiV1.Use(BasicAuth(cfg.Verifier, cfg.AuthRealm))

	// The profile endpoints run before a profile may exist.
	profileGroup := apiV1.Group("/profile")
	{
		profileGroup.GET("", profileHandler.GetProfile)
		profileGroup.POST("", profileHandler.CreateProfile)
		profileGroup.PATCH("", profileHandler.UpdateProfile)
		profileGroup.DELETE("", profileHandler.DeleteProfile)
	}

	protected := apiV1.Group("")
	protected.Use(RequireProfile(cfg.Services.Profiles))
	{
		programGroup := protected.Group("/workout-programs")
		{
			programGroup.GET("", programHandler.ListPrograms)
			programGroup.POST("", programHandler.CreateProgram)
			programGroup.GET("/:id", programHandler.GetProgram)
			programGroup.POST("/:id", programHandler.CopyProgram)
			programGroup.PATCH("/:id", programHandler.UpdateProgram)
			programGroup.DELETE("/:id", programHandler.DeleteProgram)
		}

		protected.PUT("/workout-logs", logHandler.PutWorkoutLog)
		protected.GET("/workout-logs/:id", logHandler.GetHistory)
		protected.GET("/personal-record", logHandler.ListPersonalRecords)
		protected.PUT("/personal-record", logHandler.PutPersonalRecord)

		foodLogGroup := protected.Group("/food-logs")
		{
			foodLogGroup.GET("", foodLogHandler.ListFoodLogs)
			foodLogGroup.POST("", foodLogHandler.CreateFoodLog)
			foodLogGroup.DELETE("/:id", foodLogHandler.DeleteFoodLog)
		}

		mediaGroup := protected.Group("/media")
		{
			mediaGroup.GET("", mediaHandler.ListMedia)
			mediaGroup.POST("", mediaHandler.CreateMedia)
			mediaGroup.GET("/:id", mediaHandler.GetMedia)
			mediaGroup.DELETE("/:id", mediaHandler.DeleteMedia)
		}

		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
		}
	}
}
