// Package tmpl renders Go templates used for request paths.
package tmpl

import (
	"bytes"
	"fmt"
	"net/url"
	"text/template"
)

var funcs = template.FuncMap{
	"path": url.PathEscape,
}

// Render executes a Go template string with the given data.
// Returns an error if the template is invalid or references undefined keys.
//
// Available template functions:
//   - path: escape a value for use as a single URL path segment
func Render(tmpl string, data any) (string, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
