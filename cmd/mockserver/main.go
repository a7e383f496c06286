package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shop_client/config"
	"shop_client/internal/delivery"
	"shop_client/internal/repository"
	"shop_client/pkg/db"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig(logger)
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
		logger.Warnf("Invalid LOG_LEVEL '%s', using default: %s", cfg.LogLevel, logLevel.String())
	}
	logger.SetLevel(logLevel)
	logger.Info("Starting mock shop endpoint...")

	var repo repository.DocumentRepository
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("FATAL: Database connection failed: %v", err)
		}
		defer database.Close()
		if err := repository.EnsureSchema(database); err != nil {
			logger.Fatalf("FATAL: Schema initialization failed: %v", err)
		}
		repo = repository.NewPostgresDocumentRepository(database, logger)
		logger.Info("Postgres document repository initialized.")
	} else {
		repo = repository.NewMemoryDocumentRepository(logger)
		logger.Info("In-memory document repository initialized (set DATABASE_URL to persist).")
	}

	orderHandler := delivery.NewOrderHandler(repo, logger)
	productHandler := delivery.NewProductHandler(repo, logger)
	logger.Info("Handlers initialized.")

	router := gin.Default()
	router.RedirectTrailingSlash = false
	orderHandler.RegisterRoutes(router)
	productHandler.RegisterRoutes(router)
	logger.Info("Routes registered.")

	port := cfg.MockServerPort
	logger.Infof("Mock endpoint listening on %s", port)
	if err := router.Run(port); err != nil {
		logger.Fatalf("Failed to run server: %v", err)
	}
}
