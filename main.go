package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/roomprobe/internal/commands"
	"github.com/hay-kot/roomprobe/internal/printer"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	if err := setupLogger("info", ""); err != nil {
		panic(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var (
		p     = printer.New(os.Stderr)
		flags = &commands.Flags{}
	)
	ctx = printer.NewContext(ctx, p)

	app := &cli.Command{
		Name:      "roomprobe",
		Usage:     "Inspect the JSON shape of a chat backend's rooms and messages",
		UsageText: "roomprobe [global options] <username> <password>",
		Description: `roomprobe logs into a chat / support-ticket backend and prints what its
undocumented endpoints return: the login response token, the room list, a
sample active chat, and the last message of the target room with an analysis
of its sender field.

Run 'roomprobe doctor' to check configuration and reachability first.`,
		Version: build(),
		Flags:   flags.GlobalFlags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := setupLogger(flags.LogLevel, flags.LogFile); err != nil {
				return ctx, err
			}

			// Missing credentials only print the usage line.
			if commands.WantsUsage(c) {
				return ctx, nil
			}

			if err := flags.LoadConfig(c); err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			return ctx, nil
		},
	}

	app = commands.NewAnalyzeCmd(flags).Register(app)
	app = commands.NewConfigCmd(flags).Register(app)
	app = commands.NewDoctorCmd(flags).Register(app)

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		printer.Ctx(ctx).FatalError(err)
		exitCode = 1
	}

	cancel()
	os.Exit(exitCode)
}

func setupLogger(level string, logFile string) error {
	parsedLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}

	var output io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}

	if logFile != "" {
		logDir := filepath.Dir(logFile)
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}

		output = io.MultiWriter(
			zerolog.ConsoleWriter{Out: os.Stderr},
			file,
		)
	}

	log.Logger = log.Output(output).Level(parsedLevel)

	return nil
}
