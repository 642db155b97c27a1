// Package doctor runs preflight checks before probing a backend.
package doctor

import (
	"context"
	"fmt"
)

// Status is the outcome of one check item. Higher values are worse.
type Status int

const (
	StatusPass Status = iota
	StatusWarn
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// MarshalText renders the status by name in JSON output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name written by MarshalText.
func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "pass":
		*s = StatusPass
	case "warn":
		*s = StatusWarn
	case "fail":
		*s = StatusFail
	default:
		return fmt.Errorf("unknown status %q", b)
	}
	return nil
}

// CheckItem is one line of a check: an endpoint, a config field, a path.
type CheckItem struct {
	Label  string `json:"label"`
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Result groups the items reported by one check.
type Result struct {
	Name  string      `json:"name"`
	Items []CheckItem `json:"items"`
}

// Worst returns the most severe item status, StatusPass when empty.
func (r Result) Worst() Status {
	worst := StatusPass
	for _, item := range r.Items {
		if item.Status > worst {
			worst = item.Status
		}
	}
	return worst
}

// Check is a single preflight check.
type Check interface {
	Name() string
	Run(ctx context.Context) Result
}

// RunAll executes checks in order.
func RunAll(ctx context.Context, checks []Check) []Result {
	results := make([]Result, 0, len(checks))
	for _, check := range checks {
		results = append(results, check.Run(ctx))
	}
	return results
}

// Reachability verdicts for the backend check.
const (
	Reachable   = "reachable"
	Degraded    = "degraded"
	Unreachable = "unreachable"
	Unchecked   = "unchecked"
)

// Counts tallies item statuses across results.
type Counts struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

// Report is the doctor verdict printed by the command.
type Report struct {
	Healthy bool     `json:"healthy"`
	Backend string   `json:"backend"`
	Summary Counts   `json:"summary"`
	Checks  []Result `json:"checks"`
}

// NewReport summarises results. Backend is Unchecked when no connectivity
// check ran, which happens while the configuration is invalid.
func NewReport(results []Result) Report {
	report := Report{Backend: Unchecked, Checks: results}

	for _, r := range results {
		for _, item := range r.Items {
			switch item.Status {
			case StatusPass:
				report.Summary.Passed++
			case StatusWarn:
				report.Summary.Warned++
			case StatusFail:
				report.Summary.Failed++
			}
		}

		if r.Name == connectivityName {
			report.Backend = verdict(r)
		}
	}

	report.Healthy = report.Summary.Failed == 0
	return report
}

func verdict(r Result) string {
	if len(r.Items) == 0 {
		return Unchecked
	}
	switch r.Worst() {
	case StatusFail:
		return Unreachable
	case StatusWarn:
		return Degraded
	default:
		return Reachable
	}
}
