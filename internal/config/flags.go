package config

import (
	"flag"
	"strconv"
)

// optionalBool is a boolean flag that remembers whether it was set.
type optionalBool struct {
	set   bool
	value bool
}

func (b *optionalBool) String() string {
	if b == nil || !b.set {
		return ""
	}
	return strconv.FormatBool(b.value)
}

func (b *optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	b.set, b.value = true, v
	return nil
}

func (b *optionalBool) IsBoolFlag() bool { return true }

var (
	flagConfig    = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagWidth     = flag.Int("width", 0, "Window width")
	flagHeight    = flag.Int("height", 0, "Window height")
	flagSegments  = flag.Int("segments", 0, "Quarter-arc segment count for spheres and capsules")
	flagDepthTest = &optionalBool{}
)

func init() {
	flag.Var(flagDepthTest, "depth-test", "Depth test debug lines (overrides config)")
}

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagSegments != 0 {
		cfg.Draw.Segments = *flagSegments
	}
	if flagDepthTest.set {
		cfg.Draw.DepthTest = flagDepthTest.value
	}
}
