package main

import (
	"os"

	"github.com/osse101/TactasRNG_Go/internal/logger"
)

// initBootstrapLogger installs a stdout logger for the window before the
// configuration is loaded, so config failures use the same format.
func initBootstrapLogger() {
	format := os.Getenv("LOG_FORMAT")
	if format == "" {
		format = "text"
	}
	logger.InitLogger(logger.NewConfig("info", format, "tactasrng", "", os.Getenv("ENVIRONMENT"), false))
}
