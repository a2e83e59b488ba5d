package server

import (
	"net/http"
	"time"

	"github.com/Eng-Zeus-Vianna/atomico/internal/config"
)

// ServerConfig configures the HTTP/WebSocket server.
type ServerConfig struct {
	// Address is the host:port to bind to.
	Address string

	// ReadBufferSize is the WebSocket read buffer size.
	ReadBufferSize int

	// WriteBufferSize is the WebSocket write buffer size.
	WriteBufferSize int

	// CheckOrigin validates WebSocket upgrade origins.
	CheckOrigin func(*http.Request) bool

	// MaxSessions caps concurrently connected sessions. 0 means
	// unlimited.
	MaxSessions int

	// IdleTimeout is how long a session may stay idle before eviction.
	IdleTimeout time.Duration

	// StaticDir serves static files when non-empty.
	StaticDir string

	// StaticPrefix is the URL prefix for static files.
	StaticPrefix string

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout bounds header reads on the HTTP server.
	ReadHeaderTimeout time.Duration
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:           "localhost:3000",
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		CheckOrigin:       func(*http.Request) bool { return true },
		IdleTimeout:       30 * time.Second,
		StaticPrefix:      "/static",
		ShutdownTimeout:   10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// FromProject builds a server configuration from an atomico.json
// project config.
func FromProject(cfg *config.Config) *ServerConfig {
	sc := DefaultServerConfig()
	sc.Address = cfg.Addr()
	sc.StaticDir = cfg.Static.Dir
	sc.StaticPrefix = cfg.Static.Prefix
	sc.MaxSessions = cfg.Session.MaxSessions
	if d, err := time.ParseDuration(cfg.Session.IdleTimeout); err == nil && d > 0 {
		sc.IdleTimeout = d
	}
	return sc
}

// applyDefaults fills in defaults for unset fields.
func (c *ServerConfig) applyDefaults() {
	d := DefaultServerConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = d.ReadBufferSize
	}
	if c.WriteBufferSize == 0 {
		c.WriteBufferSize = d.WriteBufferSize
	}
	if c.CheckOrigin == nil {
		c.CheckOrigin = d.CheckOrigin
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = d.IdleTimeout
	}
	if c.StaticPrefix == "" {
		c.StaticPrefix = d.StaticPrefix
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
}
