// Package config handles configuration loading and validation for roomprobe.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable roomprobe reads.
const EnvPrefix = "ROOMPROBE_"

// Config holds the application configuration.
type Config struct {
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	TargetRoom string        `yaml:"target_room"`
	Transcript string        `yaml:"transcript"`
	Endpoints  Endpoints     `yaml:"endpoints"`
}

// Endpoints are the request paths probed on the backend, relative to BaseURL.
type Endpoints struct {
	Login        string `yaml:"login"`
	SupportRooms string `yaml:"support_rooms"`
	Rooms        string `yaml:"rooms"`
	// Messages is a Go template; {{ .ID }} is the selected room id.
	Messages string `yaml:"messages"`
}

// MessagesTemplateData defines available fields for the messages endpoint template.
type MessagesTemplateData struct {
	ID string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "https://betunnel.worldstories.net",
		Timeout:    30 * time.Second,
		TargetRoom: "Player Support 2",
		Endpoints: Endpoints{
			Login:        "/api/auth/login/",
			SupportRooms: "/api/support-rooms/",
			Rooms:        "/api/rooms/",
			Messages:     "/api/rooms/{{ path .ID }}/messages/",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at configPath,
// the dotenv file at envFile and ROOMPROBE_* environment variables, in that
// order. A missing config file is not an error. A missing envFile is only an
// error when it was named explicitly (explicitEnv).
func Load(configPath, envFile string, explicitEnv bool) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if explicitEnv || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("load env file: %w", err)
			}
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// ApplyEnv overrides fields from ROOMPROBE_* variables returned by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "BASE_URL"); ok {
		c.BaseURL = v
	}
	if v, ok := lookup(EnvPrefix + "ROOM"); ok {
		c.TargetRoom = v
	}
	if v, ok := lookup(EnvPrefix + "TRANSCRIPT"); ok {
		c.Transcript = v
	}
	if v, ok := lookup(EnvPrefix + "TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse %sTIMEOUT: %w", EnvPrefix, err)
		}
		c.Timeout = d
	}
	return nil
}

// applyDefaults sets default values for any unset endpoint.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Endpoints.Login == "" {
		c.Endpoints.Login = defaults.Endpoints.Login
	}
	if c.Endpoints.SupportRooms == "" {
		c.Endpoints.SupportRooms = defaults.Endpoints.SupportRooms
	}
	if c.Endpoints.Rooms == "" {
		c.Endpoints.Rooms = defaults.Endpoints.Rooms
	}
	if c.Endpoints.Messages == "" {
		c.Endpoints.Messages = defaults.Endpoints.Messages
	}
}
