package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/roomprobe/internal/backend"
	"github.com/hay-kot/roomprobe/internal/commands/doctor"
	"github.com/hay-kot/roomprobe/internal/printer"
)

type DoctorCmd struct {
	flags  *Flags
	format string
}

func NewDoctorCmd(flags *Flags) *DoctorCmd {
	return &DoctorCmd{flags: flags}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Check configuration and backend reachability",
		UsageText:   "roomprobe doctor [options]",
		Description: "Validates the configuration, checks that each endpoint answers HTTP without credentials, and that the transcript path is writable.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}

	checks := []doctor.Check{
		doctor.NewConfigCheck(cfg),
		doctor.NewTranscriptCheck(cfg.Transcript),
	}

	// Reachability only makes sense against a valid base url.
	if cfg.Validate() == nil {
		client, err := backend.New(cfg.BaseURL, backend.WithTimeout(cfg.Timeout))
		if err != nil {
			return err
		}
		checks = append(checks, doctor.NewConnectivityCheck(client,
			cfg.Endpoints.Login,
			cfg.Endpoints.SupportRooms,
			cfg.Endpoints.Rooms,
		))
	}

	results := doctor.RunAll(ctx, checks)

	if cmd.format == "json" {
		return cmd.outputJSON(c, results)
	}

	return cmd.outputText(ctx, results)
}

func (cmd *DoctorCmd) outputJSON(c *cli.Command, results []doctor.Result) error {
	report := doctor.NewReport(results)

	enc := json.NewEncoder(c.Root().Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return err
	}

	if !report.Healthy {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *DoctorCmd) outputText(ctx context.Context, results []doctor.Result) error {
	p := printer.Ctx(ctx)
	report := doctor.NewReport(results)

	for _, result := range report.Checks {
		p.Phase("%s", result.Name)

		for _, item := range result.Items {
			switch item.Status {
			case doctor.StatusPass:
				p.CheckItem(item.Label, item.Detail)
			case doctor.StatusWarn:
				p.WarnItem(item.Label, item.Detail)
			case doctor.StatusFail:
				p.FailItem(item.Label, item.Detail)
			}
		}
	}

	p.Printf("")
	p.Printf("Backend: %s", report.Backend)
	p.Printf("Summary: %d passed, %d warnings, %d failed",
		report.Summary.Passed, report.Summary.Warned, report.Summary.Failed)

	if !report.Healthy {
		return cli.Exit("", 1)
	}

	return nil
}
