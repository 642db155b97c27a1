package commands

import (
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/roomprobe/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	EnvFile    string
	NoColor    bool

	// Overrides applied on top of the loaded config when set explicitly.
	BaseURL    string
	Timeout    time.Duration
	Room       string
	Transcript string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "roomprobe", "config.yaml")
}

// LoadConfig loads the configuration and applies flags the user set on c.
func (f *Flags) LoadConfig(c *cli.Command) error {
	cfg, err := config.Load(f.ConfigPath, f.EnvFile, c.IsSet("env-file"))
	if err != nil {
		return err
	}

	if c.IsSet("base-url") {
		cfg.BaseURL = f.BaseURL
	}
	if c.IsSet("timeout") {
		cfg.Timeout = f.Timeout
	}
	if c.IsSet("room") {
		cfg.TargetRoom = f.Room
	}
	if c.IsSet("transcript") {
		cfg.Transcript = f.Transcript
	}

	f.Config = cfg
	return nil
}

// GlobalFlags returns the flags shared by every command, bound to f.
func (f *Flags) GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error, fatal, panic)",
			Sources:     cli.EnvVars("ROOMPROBE_LOG_LEVEL"),
			Value:       "info",
			Destination: &f.LogLevel,
		},
		&cli.StringFlag{
			Name:        "log-file",
			Usage:       "path to log file (optional)",
			Sources:     cli.EnvVars("ROOMPROBE_LOG_FILE"),
			Destination: &f.LogFile,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "path to config file",
			Sources:     cli.EnvVars("ROOMPROBE_CONFIG"),
			Value:       DefaultConfigPath(),
			Destination: &f.ConfigPath,
		},
		&cli.StringFlag{
			Name:        "env-file",
			Usage:       "dotenv file loaded before reading ROOMPROBE_* variables",
			Value:       ".env",
			Destination: &f.EnvFile,
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "backend base url (overrides config and ROOMPROBE_BASE_URL)",
			Destination: &f.BaseURL,
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "per-request timeout, 0 disables (overrides config and ROOMPROBE_TIMEOUT)",
			Destination: &f.Timeout,
		},
		&cli.StringFlag{
			Name:        "room",
			Usage:       "room name fragment to inspect (overrides config and ROOMPROBE_ROOM)",
			Destination: &f.Room,
		},
		&cli.StringFlag{
			Name:        "transcript",
			Aliases:     []string{"o"},
			Usage:       "also write the run output, without colors, to this file",
			Destination: &f.Transcript,
		},
		&cli.BoolFlag{
			Name:        "no-color",
			Usage:       "disable colored output (also honors NO_COLOR)",
			Destination: &f.NoColor,
		},
	}
}
