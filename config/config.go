package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ShopAPIURL         string `envconfig:"SHOP_API_URL"         default:"http://localhost:8081"`
	UserID             string `envconfig:"SHOP_USER_ID"         default:"u1"`
	HTTPTimeoutSeconds int    `envconfig:"HTTP_TIMEOUT_SECONDS" default:"10"`
	LogLevel           string `envconfig:"LOG_LEVEL"            default:"info"`
	MockServerPort     string `envconfig:"MOCKSERVER_PORT"      default:":8081"` // mockserver only
	DatabaseURL        string `envconfig:"DATABASE_URL"`                         // mockserver only, optional
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

		logger.Infof("Configuration loaded: API URL=%s, UserID=%s, LogLevel=%s", config.ShopAPIURL, config.UserID, config.LogLevel)
	})
	return &config
}
