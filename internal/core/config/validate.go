package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hay-kot/criterio"
	"github.com/hay-kot/roomprobe/pkg/tmpl"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// Validate checks that the configuration is usable. Problems are returned as
// criterio.FieldErrors keyed by their YAML path.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if err := validateBaseURL(c.BaseURL); err != nil {
		errs = errs.Append("base_url", err)
	}

	if c.Timeout < 0 {
		errs = errs.Append("timeout", fmt.Errorf("must not be negative, got %s", c.Timeout))
	}

	paths := []struct {
		field string
		value string
	}{
		{"endpoints.login", c.Endpoints.Login},
		{"endpoints.support_rooms", c.Endpoints.SupportRooms},
		{"endpoints.rooms", c.Endpoints.Rooms},
		{"endpoints.messages", c.Endpoints.Messages},
	}
	for _, p := range paths {
		if !strings.HasPrefix(p.value, "/") {
			errs = errs.Append(p.field, fmt.Errorf("path %q must start with /", p.value))
		}
	}

	if _, err := c.MessagesPath("1"); err != nil {
		errs = errs.Append("endpoints.messages", fmt.Errorf("template error: %w", err))
	}

	return errs.ToError()
}

// Warnings returns non-fatal issues worth surfacing to the user.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if u, err := url.Parse(c.BaseURL); err == nil && u.Scheme == "http" {
		warnings = append(warnings, ValidationWarning{
			Category: "Transport",
			Item:     "base_url",
			Message:  "credentials will be sent over plain http",
		})
	}

	if strings.TrimSpace(c.TargetRoom) == "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Rooms",
			Item:     "target_room",
			Message:  "empty target matches every room; the first room will always be selected",
		})
	}

	if c.Timeout == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Transport",
			Item:     "timeout",
			Message:  "requests have no timeout",
		})
	}

	return warnings
}

// MessagesPath renders the messages endpoint for the given room id.
func (c *Config) MessagesPath(roomID string) (string, error) {
	return tmpl.Render(c.Endpoints.Messages, MessagesTemplateData{ID: roomID})
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}

	return nil
}
