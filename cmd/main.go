package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"imovia/docs/swagger"
	"imovia/internal/api"
	"imovia/internal/cache"
	"imovia/internal/config"
	"imovia/internal/db"
	"imovia/internal/storage"
	"imovia/internal/tasks"
	"imovia/internal/utils/logger"

	"github.com/joho/godotenv"
)

// @title Imovia API
// @version 1.0
// @description Real estate listing API: public catalogue, anonymous favorites, admin back office.
// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {

	logger := logger.New("imovia")

	// check if .env file exists
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		logger.Info("No .env file found, skipping environment variable loading")
	} else {
		logger.Info("Loading environment variables from .env file")
		if err := godotenv.Load(); err != nil {
			log.Fatalf("Failed to load environment variables: %v", err)
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := db.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		err := db.Close()
		if err != nil {
			log.Fatalf("Failed to close database connection: %v", err)
		}
	}()

	dbInstance := db.GetDB()

	// Select the image store
	switch cfg.Storage.Provider {
	case "s3":
		s3Store, err := storage.NewS3Store(cfg.Storage.S3)
		if err != nil {
			log.Fatalf("Failed to initialize S3 image store: %v", err)
		}
		storage.Register(s3Store)
	default:
		localStore, err := storage.NewLocalStore(cfg.Storage.UploadDir)
		if err != nil {
			log.Fatalf("Failed to initialize local image store: %v", err)
		}
		storage.Register(localStore)
	}

	// Listing cache invalidates itself on property mutation events
	listingCache := cache.New(cfg.Redis)
	listingCache.SubscribeInvalidation()

	// Task client enqueues image cleanup when properties are deleted
	taskClient := tasks.NewTaskClient(cfg.Redis.Addr, cfg.Redis.Username, cfg.Redis.Password, cfg.Redis.DB)
	taskClient.SubscribeEvents()
	defer taskClient.Close()

	// Initialize task handlers
	taskHandler := tasks.NewTaskHandler(dbInstance)

	// Initialize task server
	taskServer := tasks.NewServer(
		cfg.Redis.Addr,
		cfg.Redis.Username,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Worker.Concurrency,
		taskHandler,
		logger,
	)

	// Create a context for task server
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	// Start task server
	go func() {
		if err := taskServer.Start(serverCtx); err != nil {
			logger.Error("Task server error", err)
		}
	}()

	// Initialize task scheduler
	taskScheduler := tasks.NewScheduler(
		cfg.Redis.Addr,
		cfg.Redis.Username,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Worker.SweepCron,
		logger,
	)

	// Start task scheduler
	go func() {
		if err := taskScheduler.Start(); err != nil {
			logger.Error("Task scheduler error", err)
		}
	}()

	// Initialize API server
	apiServer := api.NewServer(cfg, dbInstance, listingCache)
	go func() {
		logger.Success("API server started")

		// Swagger documentation
		swagger.SwaggerInfo.Title = "Imovia API Documentation"
		swagger.SwaggerInfo.Description = "Real estate listing API"
		swagger.SwaggerInfo.Version = "1.0"
		swagger.SwaggerInfo.Host = cfg.Server.PublicURL
		swagger.SwaggerInfo.Schemes = []string{"http", "https"}

		if err := apiServer.Start(); err != nil {
			logger.Error("API server error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the servers
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Create a deadline for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Stop task scheduler
	taskScheduler.Stop()

	// Stop task server
	serverCancel()

	// Shutdown API server
	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown API server", err)
	}

	logger.Info("Servers shutdown gracefully")
}
