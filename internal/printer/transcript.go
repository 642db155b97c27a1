package printer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/x/ansi"
)

// plainWriter strips ANSI escape sequences before writing. Printer emits one
// complete line per Write, so sequences are never split across calls.
type plainWriter struct {
	w io.Writer
}

func (pw plainWriter) Write(b []byte) (int, error) {
	if _, err := io.WriteString(pw.w, ansi.Strip(string(b))); err != nil {
		return 0, err
	}
	return len(b), nil
}

// Plain wraps w so that everything written to it has styling removed.
func Plain(w io.Writer) io.Writer {
	return plainWriter{w: w}
}

// OpenTranscript truncates (or creates) the file at path and returns it for
// use with Tee. The caller closes the file.
func OpenTranscript(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create transcript directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	return f, nil
}

// Tee returns a Printer that writes to p's writer and, unstyled, to w.
func (p *Printer) Tee(w io.Writer) *Printer {
	return &Printer{
		writer: io.MultiWriter(p.writer, Plain(w)),
		color:  p.color,
	}
}
