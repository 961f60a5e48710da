package main

import (
	"github.com/pondside/AnglerBot_Go/internal/config"
	"github.com/pondside/AnglerBot_Go/internal/logger"
)

// initLogger initializes the default logger from app configuration.
func initLogger(cfg *config.Config) {
	loggerConfig := logger.ProductionConfig()
	loggerConfig.Level = cfg.LogLevel
	loggerConfig.Format = cfg.LogFormat

	logger.InitLogger(loggerConfig)
}
