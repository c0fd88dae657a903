package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openwellness/wellness-planner/internal/api"
	"github.com/openwellness/wellness-planner/internal/config"
	"github.com/openwellness/wellness-planner/internal/generation"
	"github.com/openwellness/wellness-planner/internal/repository/mongo"
	"github.com/openwellness/wellness-planner/internal/service"
	"github.com/openwellness/wellness-planner/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @title Wellness Planner API
// @version 1.0
// @description API for personal workout and nutrition planning with AI-assisted generation.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Local development convenience; absent .env files are fine.
	_ = godotenv.Load()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	logger.Info("Starting Wellness Planner server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatalw("Could not load config", "error", err)
	}
	if cfg.JWT.Secret == "" {
		logger.Fatal("JWT_SECRET must be set")
	}

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Fatalw("Could not connect to MongoDB", "error", err)
	}
	defer func() {
		logger.Info("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Errorw("Failed to disconnect MongoDB", "error", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Infow("Database connection established", "database", cfg.Database.Name)

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts"))
		mongo.EnsureNutritionPlanIndexes(ctx, appDB.Collection("nutrition_plans"))
		logger.Info("Index creation process completed.")
	}()

	// --- Initialize Storage (optional) ---
	var fileStorage storage.FileStorage
	if cfg.S3.BucketName != "" {
		fileStorage, err = storage.NewS3Storage(cfg.S3, logger)
		if err != nil {
			logger.Fatalw("Failed to initialize S3 storage", "error", err)
		}
		logger.Infow("Avatar storage initialized", "bucket", cfg.S3.BucketName)
	} else {
		logger.Warn("S3 bucket not configured; avatar uploads disabled.")
	}

	// --- Initialize Generation Client (optional) ---
	var completionClient generation.CompletionClient
	if cfg.Groq.APIKey != "" {
		groqCfg := generation.DefaultGroqConfig(cfg.Groq.APIKey)
		if cfg.Groq.BaseURL != "" {
			groqCfg.BaseURL = cfg.Groq.BaseURL
		}
		if cfg.Groq.Model != "" {
			groqCfg.Model = cfg.Groq.Model
		}
		if cfg.Groq.Temperature > 0 {
			groqCfg.Temperature = cfg.Groq.Temperature
		}
		if cfg.Groq.MaxTokens > 0 {
			groqCfg.MaxTokens = cfg.Groq.MaxTokens
		}
		completionClient = generation.NewGroqClient(groqCfg)
		logger.Infow("Generation provider configured", "model", groqCfg.Model)
	} else {
		logger.Warn("GROQ API key not configured; plan generation runs in demo mode.")
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	nutritionRepo := mongo.NewMongoNutritionPlanRepository(appDB)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	workoutService := service.NewWorkoutService(workoutRepo)
	nutritionService := service.NewNutritionService(nutritionRepo)
	plannerService := service.NewPlannerService(workoutRepo, nutritionRepo, completionClient, logger)
	profileService := service.NewProfileService(userRepo, fileStorage)

	// --- Initialize Gin Engine ---
	router := gin.Default()

	// --- Setup Routes ---
	api.SetupRoutes(
		router,
		cfg.JWT.Secret,
		cfg.JWT.Expiration,
		authService,
		workoutService,
		nutritionService,
		plannerService,
		profileService,
	)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout: 10 * time.Second,
		// Generation requests wait on the provider, which gets up to 60s.
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Infow("Server starting", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("ListenAndServe error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Fatalw("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exiting.")
}
