// Package main runs the demo scenario headless and writes a YAML report of
// the debug lines it drew.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/physdebug/internal/config"
	"github.com/Faultbox/physdebug/internal/demo"
	"github.com/Faultbox/physdebug/internal/logger"
)

var (
	flagFrames    = flag.Int("frames", 120, "Number of frames to run")
	flagFrameTime = flag.Duration("frame-time", 16*time.Millisecond, "Simulated time per frame")
	flagFull      = flag.Bool("full", false, "Enable every feature group and list every line")
	flagFeatures  = flag.String("features", "", "Comma separated feature groups (default: viewer defaults)")
	flagOut       = flag.String("out", "", "Report file (default: stdout)")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr so the report can go to stdout.
	opts := logger.Options{Level: cfg.Logging.Level, Console: os.Stderr}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithOptions(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("physdump failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	features := demo.DefaultFeatures
	if *flagFeatures != "" {
		f, err := demo.ParseFeatures(*flagFeatures)
		if err != nil {
			return err
		}
		features = f
	}
	if *flagFull {
		features = demo.AllFeatures
	}

	logger.Info("recording",
		zap.Int("frames", *flagFrames),
		zap.Duration("frame_time", *flagFrameTime),
		zap.Stringer("features", features),
	)
	report, err := demo.Record(cfg, demo.RecordOptions{
		Frames:    *flagFrames,
		FrameTime: *flagFrameTime,
		Features:  features,
		Detail:    *flagFull,
	}, logger.Named("demo"))
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if *flagOut != "" {
		f, err := os.Create(*flagOut)
		if err != nil {
			return fmt.Errorf("creating report: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := report.WriteYAML(out); err != nil {
		return err
	}
	logger.Info("report written", zap.Int("lines", report.Lines), zap.String("out", *flagOut))
	return nil
}
