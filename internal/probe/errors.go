package probe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hay-kot/roomprobe/internal/backend"
)

var (
	// ErrNoToken is returned when the login response carries no access token.
	ErrNoToken = errors.New("no access token found in login response")
	// ErrNoRooms is returned when room discovery yields an empty list.
	ErrNoRooms = errors.New("no rooms available")
	// ErrMessageNotObject is returned when the last message has no fields to
	// read a sender from.
	ErrMessageNotObject = errors.New("last message is not an object")
)

// Phase identifies one step of a probe run.
type Phase string

const (
	PhaseLogin       Phase = "Login"
	PhaseRooms       Phase = "Get support-rooms"
	PhaseActiveChats Phase = "Get Active Chats"
	PhaseSelect      Phase = "Room selection"
	PhaseMessages    Phase = "Get Messages"
)

// PhaseError is the error that halted a run.
type PhaseError struct {
	Phase Phase
	Err   error
}

// Error labels the cause with its phase. Unexpected statuses read
// "<phase> failed: <status> <body>", everything else
// "<phase> exception: <cause>".
func (e *PhaseError) Error() string {
	var statusErr *backend.StatusError
	if errors.As(e.Err, &statusErr) {
		msg := fmt.Sprintf("%s failed: %d", e.Phase, statusErr.StatusCode)
		if body := strings.TrimSpace(statusErr.Body); body != "" {
			msg += " " + body
		}
		return msg
	}
	return fmt.Sprintf("%s exception: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}
