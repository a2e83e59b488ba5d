package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "atomico.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"
)

// ErrNotFound is returned when no atomico.json exists in the searched
// directories.
var ErrNotFound = errors.New("config: atomico.json not found")

// Config represents the complete atomico.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// Port is the server port.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Static contains static file serving configuration.
	Static StaticConfig `json:"static,omitempty"`

	// Session contains live-session configuration.
	Session SessionConfig `json:"session,omitempty"`

	// Assets contains asset manifest and publishing configuration.
	Assets AssetsConfig `json:"assets,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// Telemetry contains tracing configuration.
	Telemetry TelemetryConfig `json:"telemetry,omitempty"`

	// configPath stores the path the config was loaded from.
	configPath string
}

// StaticConfig contains static file serving configuration.
type StaticConfig struct {
	// Dir is the directory containing static files.
	Dir string `json:"dir,omitempty"`

	// Prefix is the URL prefix for static files.
	Prefix string `json:"prefix,omitempty"`
}

// SessionConfig contains live-session settings.
type SessionConfig struct {
	// MaxSessions caps concurrently connected sessions. 0 means
	// unlimited.
	MaxSessions int `json:"maxSessions,omitempty"`

	// IdleTimeout is how long a disconnected session stays resumable
	// (e.g. "30s").
	IdleTimeout string `json:"idleTimeout,omitempty"`

	// Store selects session persistence: "memory" or "bolt".
	Store string `json:"store,omitempty"`

	// StorePath is the database file for the bolt store.
	StorePath string `json:"storePath,omitempty"`
}

// AssetsConfig contains asset manifest and publishing settings.
type AssetsConfig struct {
	// Manifest is the path to the asset manifest file.
	Manifest string `json:"manifest,omitempty"`

	// BaseURL prefixes resolved asset paths. Typically a CDN origin in
	// production.
	BaseURL string `json:"baseUrl,omitempty"`

	// S3 configures publishing to an S3 bucket.
	S3 S3Config `json:"s3,omitempty"`
}

// S3Config identifies the bucket assets publish to.
type S3Config struct {
	Bucket string `json:"bucket,omitempty"`
	Region string `json:"region,omitempty"`
	Prefix string `json:"prefix,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is the minimum level: "debug", "info", "warn", "error".
	Level string `json:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty"`
}

// TelemetryConfig contains tracing settings.
type TelemetryConfig struct {
	// Enabled turns span creation on.
	Enabled bool `json:"enabled,omitempty"`

	// ServiceName names this deployment in traces.
	ServiceName string `json:"serviceName,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Version: "0.1.0",
		Port:    DefaultPort,
		Host:    DefaultHost,
		Static: StaticConfig{
			Dir:    "public",
			Prefix: "/static",
		},
		Session: SessionConfig{
			IdleTimeout: "30s",
			Store:       "memory",
			StorePath:   "atomico-sessions.db",
		},
		Assets: AssetsConfig{
			Manifest: "dist/manifest.json",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "atomico",
		},
	}
}

// Load reads configuration from atomico.json in the given directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w in %s", ErrNotFound, filepath.Dir(path))
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// Find searches dir and its ancestors for atomico.json.
func Find(dir string) (*Config, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for {
		path := filepath.Join(abs, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return nil, ErrNotFound
		}
		abs = parent
	}
}

// Save writes the configuration back to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config: no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from.
func (c *Config) Path() string { return c.configPath }

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// Addr returns the host:port the server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Static.Dir == "" {
		c.Static.Dir = "public"
	}
	if c.Static.Prefix == "" {
		c.Static.Prefix = "/static"
	}
	if c.Session.IdleTimeout == "" {
		c.Session.IdleTimeout = "30s"
	}
	if c.Session.Store == "" {
		c.Session.Store = "memory"
	}
	if c.Session.StorePath == "" {
		c.Session.StorePath = "atomico-sessions.db"
	}
	if c.Assets.Manifest == "" {
		c.Assets.Manifest = "dist/manifest.json"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = "atomico"
	}
}
