package doctor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// TranscriptCheck verifies the transcript file can be written.
type TranscriptCheck struct {
	path string
}

// NewTranscriptCheck creates a check for the transcript at path. An empty
// path reports that transcripts are disabled.
func NewTranscriptCheck(path string) *TranscriptCheck {
	return &TranscriptCheck{path: path}
}

func (c *TranscriptCheck) Name() string {
	return "Transcript"
}

func (c *TranscriptCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	if c.path == "" {
		result.Items = append(result.Items, CheckItem{
			Label:  "Transcript",
			Status: StatusPass,
			Detail: "disabled",
		})
		return result
	}

	dir := filepath.Dir(c.path)
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		result.Items = append(result.Items, CheckItem{
			Label:  dir,
			Status: StatusWarn,
			Detail: "directory does not exist and will be created",
		})
		return result
	case err != nil:
		result.Items = append(result.Items, CheckItem{Label: dir, Status: StatusFail, Detail: err.Error()})
		return result
	case !info.IsDir():
		result.Items = append(result.Items, CheckItem{Label: dir, Status: StatusFail, Detail: "not a directory"})
		return result
	}

	f, err := os.CreateTemp(dir, ".roomprobe-check-*")
	if err != nil {
		result.Items = append(result.Items, CheckItem{Label: dir, Status: StatusFail, Detail: "not writable: " + err.Error()})
		return result
	}
	_ = f.Close()
	_ = os.Remove(f.Name())

	result.Items = append(result.Items, CheckItem{
		Label:  c.path,
		Status: StatusPass,
		Detail: "writable",
	})
	return result
}
