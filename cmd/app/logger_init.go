package main

import (
	"github.com/osse101/SpinHall_Go/internal/config"
	"github.com/osse101/SpinHall_Go/internal/logger"
)

// initLogger installs a stdout-only logger, used when the log file
// cannot be opened
func initLogger(cfg *config.Config) {
	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		cfg.IsDevelopment(),
	)

	logger.InitLogger(loggerConfig)
}
