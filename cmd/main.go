package main

import (
	"catalog_service/config"
	"catalog_service/internal/delivery"
	"catalog_service/internal/repository"
	"catalog_service/internal/usecase"
	"catalog_service/pkg/db"
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"log"
)

func main() {
	//  Configuration and Logging Setup
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig(logger)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid LOG_LEVEL %q, defaulting to info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.Info("Starting Catalog Service...")

	// --- Database Connection ---
	client, err := db.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalf("FATAL: Failed to connect to database: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()
	logger.Info("Database connection established.")

	// --- Dependency Injection ---
	// Repository Layer
	productRepo := repository.NewMongoProductRepository(client, cfg.MongoDB, logger)
	adRepo := repository.NewMongoAdvertisementRepository(client, cfg.MongoDB, logger)
	logger.Info("Repositories initialized.")

	// Usecase Layer
	catalogUseCase := usecase.NewCatalogUseCase(productRepo, adRepo, logger)
	ratingUseCase := usecase.NewRatingUseCase(productRepo, logger)
	adUseCase := usecase.NewAdvertisementUseCase(adRepo, logger)
	logger.Info("Use cases initialized.")

	catalogHandler := delivery.NewCatalogHandler(catalogUseCase, cfg.EmptyCatalogStatus, logger)
	ratingHandler := delivery.NewRatingHandler(ratingUseCase, logger)
	adHandler := delivery.NewAdvertisementHandler(adUseCase, logger)
	imageHandler := delivery.NewImageHandler(cfg.ImageDir, logger)
	healthHandler := delivery.NewHealthHandler()
	logger.Info("Handlers initialized.")

	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(func(c *gin.Context) {
		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"ip":     c.ClientIP(),
		}).Info("Request received")
		c.Next()
		logger.WithFields(logrus.Fields{
			"status": c.Writer.Status(),
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Info("Request completed")
	})

	//Route Registration
	healthHandler.RegisterRoutes(router)
	catalogHandler.RegisterRoutes(router)
	ratingHandler.RegisterRoutes(router)
	adHandler.RegisterRoutes(router)
	imageHandler.RegisterRoutes(router)
	logger.Info("API Routes registered.")

	//  Start Server
	logger.Infof("Starting server on port %s", cfg.HTTPPort)
	if err := router.Run(cfg.HTTPPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
