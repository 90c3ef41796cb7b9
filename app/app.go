package app

import (
	"context"
	"database/sql"
	"go-quiz-api/config"
	"go-quiz-api/db"
	"go-quiz-api/handler"
	"go-quiz-api/logger"
	"go-quiz-api/repository"
	"go-quiz-api/router"
	"go-quiz-api/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
)

// TestApp exposes the wired router and database handle for integration tests.
type TestApp struct {
	DB     *sql.DB
	Router http.Handler
}

func NewTestApp(database *sql.DB, redisClient *redis.Client) *TestApp {
	r, _ := buildRouter(database, redisClient)
	return &TestApp{DB: database, Router: r}
}

func buildRouter(database *sql.DB, redisClient *redis.Client) (http.Handler, *service.TokenCleanupService) {
	userRepo := repository.NewUserRepository(database)
	tokenRepo := repository.NewTokenRepository(database)
	blacklistRepo := repository.NewBlacklistRepository(database)
	problemRepo := repository.NewProblemRepository(database)
	sessionRepo := repository.NewSessionRepository(database)
	solvedRepo := repository.NewSolvedProblemRepository(database)

	authService := service.NewAuthService(userRepo, tokenRepo)
	userService := service.NewUserService(userRepo, authService)
	var cache service.ICacheClient
	if redisClient != nil {
		cache = redisClient
	}
	problemService := service.NewProblemService(problemRepo, cache)
	geminiService := service.NewGeminiService(config.AppConfig.Gemini.APIKey, config.AppConfig.Gemini.APIURL)
	solvingService := service.NewSolvingService(solvedRepo, problemRepo, sessionRepo, geminiService)
	sessionService := service.NewSessionService(sessionRepo, solvedRepo, problemService)
	statisticsService := service.NewStatisticsService(solvedRepo, problemRepo)

	sweepInterval := time.Duration(config.AppConfig.JWT.SweepMinutes) * time.Minute
	cleanupService := service.NewTokenCleanupService(blacklistRepo, tokenRepo, sweepInterval)

	r := router.NewRouter(router.Dependencies{
		AuthService:       authService,
		TokenRepo:         tokenRepo,
		BlacklistRepo:     blacklistRepo,
		UserRepo:          userRepo,
		UserHandler:       handler.NewUserHandler(userService),
		TokenHandler:      handler.NewTokenHandler(authService),
		ProblemHandler:    handler.NewProblemHandler(problemService, solvingService),
		SessionHandler:    handler.NewSessionHandler(sessionService, solvingService),
		StatisticsHandler: handler.NewStatisticsHandler(statisticsService),
	})
	return r, cleanupService
}

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations("file://db/migrations"); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		// The problem cache degrades to direct reads without redis.
		logger.Log.Warnf("Redis unavailable, continuing without cache: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	r, cleanupService := buildRouter(database, redisClient)

	cleanupService.Start()
	logger.Log.Info("Token cleanup service started")

	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	cleanupService.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
