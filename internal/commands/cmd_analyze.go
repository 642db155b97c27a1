package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/roomprobe/internal/backend"
	"github.com/hay-kot/roomprobe/internal/probe"
	"github.com/hay-kot/roomprobe/internal/printer"
)

// UsageLine is printed when credentials are missing.
const UsageLine = "Usage: roomprobe <username> <password>"

type AnalyzeCmd struct {
	flags *Flags

	// readPassword prompts for a password when "-" is given.
	readPassword func() (string, error)
}

// NewAnalyzeCmd creates the analyze command, which is also the root action.
func NewAnalyzeCmd(flags *Flags) *AnalyzeCmd {
	return &AnalyzeCmd{flags: flags, readPassword: promptPassword}
}

// credentialArgs stops flag parsing once the username is read, so the
// password reaches the backend byte for byte even when it starts with "-" or
// carries surrounding spaces. Global flags must precede the username.
func credentialArgs() *int {
	n := 1
	return &n
}

// WantsUsage reports whether the root invocation names no subcommand and is
// missing credentials, in which case only the usage line is printed.
func WantsUsage(c *cli.Command) bool {
	return c.Args().Len() < 2 && c.Command(c.Args().First()) == nil
}

// Register installs analyze as the root action and as the "analyze" subcommand.
func (cmd *AnalyzeCmd) Register(app *cli.Command) *cli.Command {
	app.ArgsUsage = "<username> <password>"
	app.Action = cmd.run
	app.StopOnNthArg = credentialArgs()

	app.Commands = append(app.Commands, &cli.Command{
		Name:         "analyze",
		Usage:        "Log in and inspect rooms and messages",
		UsageText:    "roomprobe analyze <username> <password>",
		StopOnNthArg: credentialArgs(),
		Description: `Logs in, lists rooms (falling back to the rooms endpoint when the support
rooms endpoint fails), prints a sample active chat, selects the target room
and prints its last message together with an analysis of the sender field.

Pass "-" as the password to be prompted for it. Everything after the
username is forwarded as typed. Put "--" before the credentials when the
username or password is empty or padded with spaces:

    roomprobe -- alice ""`,
		Action: cmd.run,
	})

	return app
}

func (cmd *AnalyzeCmd) run(ctx context.Context, c *cli.Command) error {
	out := c.Root().Writer

	if c.Args().Len() < 2 {
		_, _ = fmt.Fprintln(out, UsageLine)
		return nil
	}

	cfg := cmd.flags.Config
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	creds := backend.Credentials{
		Username: c.Args().Get(0),
		Password: c.Args().Get(1),
	}
	if creds.Password == "-" {
		pw, err := cmd.readPassword()
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		creds.Password = pw
	}

	p := cmd.flags.newPrinter(out)
	if cfg.Transcript != "" {
		f, err := printer.OpenTranscript(cfg.Transcript)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()

		p = p.Tee(f)
		_, _ = fmt.Fprintf(f, "Starting debug for %s against %s...\n", creds.Username, cfg.BaseURL)
	}

	runID := uuid.NewString()
	logger := log.With().Str("run_id", runID).Logger()

	client, err := backend.New(cfg.BaseURL,
		backend.WithTimeout(cfg.Timeout),
		backend.WithHeader("X-Request-ID", runID),
		backend.WithLogger(logger.With().Str("component", "backend").Logger()),
	)
	if err != nil {
		return err
	}

	analyzer := probe.New(backend.NewAPI(client, cfg), p, probe.Options{
		TargetRoom: cfg.TargetRoom,
		RoomsPath:  cfg.Endpoints.Rooms,
		Logger:     logger,
	})

	logger.Debug().Str("base_url", cfg.BaseURL).Str("username", creds.Username).Msg("starting probe")

	_, err = analyzer.Run(ctx, creds)

	var phaseErr *probe.PhaseError
	if errors.As(err, &phaseErr) {
		// Already reported by the analyzer.
		return cli.Exit("", 1)
	}
	return err
}

func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return readLine(os.Stdin)
	}

	_, _ = fmt.Fprint(os.Stderr, "Password: ")
	pw, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// readLine reads a single line from a non-interactive stdin.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
