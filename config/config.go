package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	MongoURI           string `envconfig:"MONGO_URI"            required:"true"`
	MongoDB            string `envconfig:"MONGO_DB"             default:"catalogo"`
	HTTPPort           string `envconfig:"HTTP_PORT"            default:":8080"`
	LogLevel           string `envconfig:"LOG_LEVEL"            default:"info"`
	ImageDir           string `envconfig:"IMAGE_DIR"            default:"images"`
	EmptyCatalogStatus int    `envconfig:"EMPTY_CATALOG_STATUS" default:"200"`
}

var (
	config Config
	once   sync.Once
)

func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		err = envconfig.Process("", &config)
		if err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}

		// 200 keeps an empty catalog a normal response; 503 pushes consumer
		// clients onto their locally cached copy.
		if config.EmptyCatalogStatus != 200 && config.EmptyCatalogStatus != 503 {
			logger.Warnf("Unsupported EMPTY_CATALOG_STATUS %d, falling back to 200", config.EmptyCatalogStatus)
			config.EmptyCatalogStatus = 200
		}

		logger.Infof("Configuration loaded: HTTP Port=%s, DB=%s, LogLevel=%s, ImageDir=%s",
			config.HTTPPort, config.MongoDB, config.LogLevel, config.ImageDir)
		if config.MongoURI != "" {
			logger.Info("Configuration loaded: MongoURI is set")
		} else {
			logger.Fatal("Configuration error: MONGO_URI is not set")
		}
	})
	return &config
}
