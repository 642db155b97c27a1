// Package probe walks a chat backend through login, room discovery, active
// chat inspection, room selection and message inspection, printing the shape
// of every payload it sees. The first failure halts the run.
package probe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/roomprobe/internal/backend"
	"github.com/hay-kot/roomprobe/internal/core/inspect"
	"github.com/hay-kot/roomprobe/internal/printer"
)

// API is the set of backend calls a run makes.
type API interface {
	Login(ctx context.Context, creds backend.Credentials) (*backend.Response, error)
	Authorize(token string)
	SupportRooms(ctx context.Context) (*backend.Response, error)
	Rooms(ctx context.Context) (*backend.Response, error)
	Messages(ctx context.Context, roomID string) (*backend.Response, error)
}

// Options tune an Analyzer.
type Options struct {
	// TargetRoom is matched as a substring of room names.
	TargetRoom string
	// RoomsPath is only used in the active chats heading.
	RoomsPath string
	Logger    zerolog.Logger
	// Now defaults to time.Now; used to flag expired tokens.
	Now func() time.Time
}

// Report is what a run learned before it finished or halted.
type Report struct {
	Token       *inspect.TokenInfo
	Rooms       []inspect.Room
	ActiveChats int
	Room        inspect.Room
	Messages    int
	Sender      inspect.Field
}

// Analyzer runs the probe phases against an API.
type Analyzer struct {
	api    API
	p      *printer.Printer
	opts   Options
	logger zerolog.Logger
}

// New creates an Analyzer that prints to p.
func New(api API, p *printer.Printer, opts Options) *Analyzer {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RoomsPath == "" {
		opts.RoomsPath = "/api/rooms/"
	}
	return &Analyzer{
		api:    api,
		p:      p,
		opts:   opts,
		logger: opts.Logger.With().Str("component", "probe").Logger(),
	}
}

// Run executes every phase in order. On failure it prints the phase-labelled
// error, skips the remaining phases and returns a *PhaseError together with
// the partial report.
func (a *Analyzer) Run(ctx context.Context, creds backend.Credentials) (*Report, error) {
	report := &Report{}

	steps := []struct {
		phase Phase
		run   func(context.Context, backend.Credentials, *Report) error
	}{
		{PhaseLogin, a.login},
		{PhaseRooms, a.discoverRooms},
		{PhaseActiveChats, a.activeChats},
		{PhaseSelect, a.selectRoom},
		{PhaseMessages, a.messages},
	}

	for _, step := range steps {
		a.logger.Debug().Str("phase", string(step.phase)).Msg("phase start")

		if err := step.run(ctx, creds, report); err != nil {
			perr := &PhaseError{Phase: step.phase, Err: err}
			a.logger.Debug().Err(err).Str("phase", string(step.phase)).Msg("phase halted run")
			a.p.Errorf("%s", perr.Error())
			return report, perr
		}
	}

	return report, nil
}

func (a *Analyzer) login(ctx context.Context, creds backend.Credentials, report *Report) error {
	a.p.Printf("Logging in as %s...", creds.Username)

	resp, err := a.api.Login(ctx, creds)
	if err != nil {
		return err
	}
	if err := resp.Err(); err != nil {
		return err
	}

	body, err := resp.JSON()
	if err != nil {
		return err
	}

	token, ok := inspect.ExtractToken(body)
	if !ok {
		a.p.Section("LOGIN RESPONSE")
		a.p.JSON(inspect.Indent(body))
		return ErrNoToken
	}

	a.api.Authorize(token)
	a.p.Successf("Login successful.")
	a.describeToken(token, report)

	return nil
}

func (a *Analyzer) describeToken(token string, report *Report) {
	info, err := inspect.DescribeToken(token)
	if err != nil {
		a.logger.Debug().Err(err).Msg("access token is not a JWT")
		return
	}
	report.Token = &info

	a.p.KeyValue("Token algorithm", info.Algorithm)
	if info.Subject != "" {
		a.p.KeyValue("Token subject", info.Subject)
	}
	if info.UserID != "" {
		a.p.KeyValue("Token user_id", info.UserID)
	}
	if !info.ExpiresAt.IsZero() {
		a.p.KeyValue("Token expires", info.ExpiresAt.Format(time.RFC3339))
		if info.Expired(a.opts.Now()) {
			a.p.Warnf("Access token is already expired")
		}
	}
}

func (a *Analyzer) discoverRooms(ctx context.Context, _ backend.Credentials, report *Report) error {
	a.p.Phase("Fetching Rooms...")

	resp, err := a.api.SupportRooms(ctx)
	if err != nil {
		return err
	}

	if !resp.OK() {
		a.p.Warnf("%s returned %d, retrying with the rooms endpoint", resp.Path, resp.StatusCode)
		resp, err = a.api.Rooms(ctx)
		if err != nil {
			return err
		}
	}

	if err := resp.Err(); err != nil {
		return err
	}

	body, err := resp.JSON()
	if err != nil {
		return err
	}

	list, err := inspect.RequireList(body)
	if err != nil {
		return err
	}

	rooms, err := inspect.RoomsFrom(list)
	if err != nil {
		return err
	}
	report.Rooms = rooms

	a.p.Printf("Found %d rooms.", len(rooms))
	for _, r := range rooms {
		a.p.Printf("- Room %s: %s", r.ID, r.Name)
	}

	return nil
}

func (a *Analyzer) activeChats(ctx context.Context, _ backend.Credentials, report *Report) error {
	a.p.Phase("Fetching Active Chats (%s)...", a.opts.RoomsPath)

	resp, err := a.api.Rooms(ctx)
	if err != nil {
		return err
	}
	if err := resp.Err(); err != nil {
		return err
	}

	body, err := resp.JSON()
	if err != nil {
		return err
	}

	active := inspect.UnwrapOrEmpty(body)
	report.ActiveChats = len(active)

	a.p.Printf("Found %d active chats.", len(active))
	if len(active) > 0 {
		a.p.Section("SAMPLE ACTIVE CHAT ROOM STRUCTURE")
		a.p.JSON(inspect.Indent(active[0]))
	}

	return nil
}

func (a *Analyzer) selectRoom(_ context.Context, _ backend.Credentials, report *Report) error {
	room, ok := inspect.SelectRoom(report.Rooms, a.opts.TargetRoom)
	if !ok {
		return ErrNoRooms
	}
	report.Room = room

	a.p.Phase("Target Room: %s (%s)", room.Name, room.ID)
	return nil
}

func (a *Analyzer) messages(ctx context.Context, _ backend.Credentials, report *Report) error {
	room := report.Room
	a.p.Printf("Fetching Messages for Room: %s (ID: %s)...", room.Name, room.ID)

	resp, err := a.api.Messages(ctx, room.ID)
	if err != nil {
		return err
	}
	if err := resp.Err(); err != nil {
		return err
	}

	body, err := resp.JSON()
	if err != nil {
		return err
	}

	messages, err := inspect.RequireList(body)
	if err != nil {
		return err
	}
	report.Messages = len(messages)

	a.p.Printf("Found %d messages.", len(messages))
	if len(messages) == 0 {
		a.p.Infof("No messages in this room to analyze.")
		return nil
	}

	last := messages[len(messages)-1]
	a.p.Section("SAMPLE MESSAGE STRUCTURE")
	a.p.JSON(inspect.Indent(last))

	if _, ok := last.(map[string]any); !ok {
		return fmt.Errorf("%w: got %s", ErrMessageNotObject, inspect.KindOf(last))
	}

	report.Sender = inspect.FieldOf(last, "sender")
	a.printSender(report.Sender)

	return nil
}

func (a *Analyzer) printSender(f inspect.Field) {
	a.p.Section("SENDER FIELD ANALYSIS")

	if !f.Present {
		a.p.KeyValue("Sender value", "<missing>")
		a.p.KeyValue("Sender type", f.Kind)
		return
	}

	a.p.KeyValue("Sender value", inspect.Compact(f.Value))
	a.p.KeyValue("Sender type", f.Kind)

	if f.Kind.IsPrimitive() {
		a.p.Printf("Sender is PRIMITIVE: %s = %s", f.Kind, inspect.Compact(f.Value))
		return
	}
	a.p.Printf("Sender is %s.", strings.ToUpper(string(f.Kind)))
}
