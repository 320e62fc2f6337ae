// Package main is the entry point for the physics debug viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/physdebug/internal/config"
	"github.com/Faultbox/physdebug/internal/logger"
	"github.com/Faultbox/physdebug/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	path := config.Path()
	cfg, err := config.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== physview ===", zap.String("config", path))
	logger.Sugar.Debugf("Config: %+v", cfg)

	v, err := viewer.New(cfg, path, logger.Log)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
