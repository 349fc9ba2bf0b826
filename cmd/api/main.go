package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"tasktracker/configs"
	v1 "tasktracker/internal/api/v1"
	"tasktracker/internal/api/v1/handlers"
	"tasktracker/internal/auth"
	"tasktracker/internal/middleware"
	"tasktracker/internal/repository"
	"tasktracker/internal/ws"
	"tasktracker/pkg/database"
	"tasktracker/pkg/logger"
)

func main() {
	logger.InitLoggers()
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	cfg := configs.LoadConfig()
	if cfg.JWTSecret == "" {
		logger.ErrorLogger.Error("JWT_SECRET must be set")
		return
	}

	db := database.ConnectDB(cfg)
	defer db.Close()
	logger.SystemLogger.Info("Database Connected")

	repository.CreateTableIfNotExists(db)

	redisClient := database.ConnectRedis(context.Background(), cfg)
	defer redisClient.Close()

	// Every dependency is built once here and passed down explicitly.
	issuer := auth.NewIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL)
	verifier := auth.NewVerifier([]byte(cfg.JWTSecret))
	users := repository.NewUserRepo(db)
	tasks := repository.NewTaskRepo(db, redisClient)

	hub := ws.NewHub()
	go hub.Run()

	h := handlers.New(users, tasks, issuer, validator.New(), hub)

	app := fiber.New()

	// Middleware
	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	v1.RegisterRoutes(app, h, verifier, hub)

	addr := fmt.Sprintf(":%d", cfg.ListenPort)
	logger.SystemLogger.Info("Application ready", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}
