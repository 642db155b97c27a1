package commands

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/hay-kot/roomprobe/internal/printer"
)

// newPrinter returns a printer for w, colored only when w is a terminal and
// color was not disabled by flag or NO_COLOR.
func (f *Flags) newPrinter(w io.Writer) *printer.Printer {
	return printer.New(w, printer.WithColor(!f.NoColor && os.Getenv("NO_COLOR") == "" && isTerminal(w)))
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
