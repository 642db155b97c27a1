package printer

import (
	"strings"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/hay-kot/roomprobe/internal/styles"
)

// JSON prints an already formatted JSON document. With color enabled the
// document is syntax highlighted; on any highlighting failure it is printed
// as-is.
func (p *Printer) JSON(doc string) {
	if !p.color {
		p.write(doc)
		return
	}

	highlighted, ok := highlightJSON(doc)
	if !ok {
		p.write(doc)
		return
	}
	p.write(highlighted)
}

func highlightJSON(doc string) (string, bool) {
	lexer := lexers.Get("json")
	if lexer == nil {
		return "", false
	}

	iterator, err := lexer.Tokenise(nil, doc)
	if err != nil {
		return "", false
	}

	var b strings.Builder
	if err := formatters.TTY16m.Format(&b, chromastyles.Get(styles.ChromaStyle), iterator); err != nil {
		return "", false
	}

	return strings.TrimRight(b.String(), "\n"), true
}
