// Package main is the entry point for the Spaceship Earth visualization.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/spaceship-earth/internal/app"
	"github.com/Faultbox/spaceship-earth/internal/config"
	"github.com/Faultbox/spaceship-earth/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Spaceship Earth ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg, config.Debug())
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		logger.Error("render loop failed", zap.Error(err))
		a.Close()
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("closed normally")
}
