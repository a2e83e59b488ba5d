package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Eng-Zeus-Vianna/atomico/pkg/component"
	"github.com/Eng-Zeus-Vianna/atomico/pkg/dom"
	"github.com/Eng-Zeus-Vianna/atomico/pkg/protocol"
	"github.com/Eng-Zeus-Vianna/atomico/pkg/render"
	"github.com/Eng-Zeus-Vianna/atomico/pkg/scheduler"
)

// Server hosts pages over HTTP and live sessions over WebSocket.
type Server struct {
	config   *ServerConfig
	registry *Registry
	sessions *SessionManager
	logger   *slog.Logger
	metrics  *Metrics
	gatherer prometheus.Gatherer
	upgrader websocket.Upgrader

	httpServer *http.Server
}

// ServerOption configures a Server.
type ServerOption func(*serverOptions)

type serverOptions struct {
	store    SessionStore
	registry prometheus.Registerer
	logger   *slog.Logger
}

// WithSessionStore sets the session persistence backend. Defaults to
// an in-memory store.
func WithSessionStore(store SessionStore) ServerOption {
	return func(o *serverOptions) { o.store = store }
}

// WithMetricsRegistry sets the Prometheus registry. Defaults to the
// global registerer.
func WithMetricsRegistry(reg prometheus.Registerer) ServerOption {
	return func(o *serverOptions) { o.registry = reg }
}

// WithLogger sets the server's logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(o *serverOptions) { o.logger = logger }
}

// New creates a Server with the given configuration.
func New(cfg *ServerConfig, opts ...ServerOption) *Server {
	if cfg == nil {
		cfg = DefaultServerConfig()
	}
	cfg.applyDefaults()

	o := serverOptions{
		store:    NewMemoryStore(),
		registry: prometheus.DefaultRegisterer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger.With("component", "server")

	gatherer := prometheus.Gatherer(prometheus.DefaultGatherer)
	if g, ok := o.registry.(prometheus.Gatherer); ok {
		gatherer = g
	}

	s := &Server{
		config:   cfg,
		registry: NewRegistry(),
		logger:   logger,
		metrics:  NewMetrics(o.registry),
		gatherer: gatherer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin:     cfg.CheckOrigin,
		},
	}
	s.sessions = NewSessionManager(o.store, cfg.MaxSessions, cfg.IdleTimeout, logger)
	return s
}

// Register adds a page to the server.
func (s *Server) Register(p Page) error {
	return s.registry.Register(p)
}

// Sessions returns the session manager.
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

// Handler builds the HTTP router: pages, health, metrics, the
// WebSocket endpoint, and optional static files.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(Recoverer(s.logger))
	r.Use(RequestLogger(s.logger))
	r.Use(Tracing())

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Get("/ws", s.handleWebSocket)

	if s.config.StaticDir != "" {
		fs := http.StripPrefix(s.config.StaticPrefix+"/", http.FileServer(http.Dir(s.config.StaticDir)))
		r.Handle(s.config.StaticPrefix+"/*", fs)
	}

	for _, path := range s.registry.Paths() {
		page, _ := s.registry.Lookup(path)
		r.Get(path, s.pageHandler(page))
	}
	return r
}

// pageHandler renders a page to HTML with a one-shot instance.
func (s *Server) pageHandler(page Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loop := scheduler.NewLoop()
		host := dom.NewElement(page.Tag)
		inst := component.New(loop, host, page.Render)
		defer inst.Unmount()

		if err := inst.Mount(); err != nil {
			s.logger.Error("page render failed", "path", page.Path, "error", err)
			s.metrics.renderErrors.Inc()
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		loop.Flush()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		sr := render.NewStreamingRenderer(w, render.RendererConfig{})
		err := sr.RenderPage(render.PageData{
			Body:    host,
			Title:   page.Title,
			Scripts: []render.ScriptTag{{Src: "/static/client.js", Module: true}},
		})
		if err != nil {
			s.logger.Error("page serialize failed", "path", page.Path, "error", err)
		}
	}
}

// handleWebSocket upgrades the connection and serves a live session.
// The first frame must be a handshake naming the page to render;
// clients holding a resumable session ID get their page back without
// naming it again.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		s.metrics.wsErrors.WithLabelValues("upgrade").Inc()
		return
	}

	page, ok := s.negotiate(r.Context(), conn)
	if !ok {
		conn.Close()
		return
	}

	sess := newSession(newSessionID(), page, conn, s.logger, s.metrics)
	if err := s.sessions.Add(sess); err != nil {
		s.writeError(conn, "session_limit", err.Error())
		conn.Close()
		return
	}
	s.metrics.sessionsTotal.Inc()
	s.metrics.activeSessions.Inc()

	hello, err := protocol.EncodeHandshake(&protocol.Handshake{
		Version:   protocol.Version,
		SessionID: sess.ID(),
	})
	if err == nil {
		conn.WriteMessage(websocket.BinaryMessage, hello.Encode())
	}

	sess.run(r.Context())

	s.sessions.Remove(sess.ID())
	s.metrics.activeSessions.Dec()
}

// negotiate reads the client handshake and resolves the page to mount.
func (s *Server) negotiate(ctx context.Context, conn *websocket.Conn) (Page, bool) {
	conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		s.metrics.wsErrors.WithLabelValues("handshake").Inc()
		return Page{}, false
	}
	conn.SetReadDeadline(time.Time{})

	frame, err := protocol.DecodeFrame(data)
	if err != nil || frame.Type != protocol.FrameHandshake {
		s.writeError(conn, "bad_handshake", "expected handshake frame")
		return Page{}, false
	}
	hs, err := protocol.DecodeHandshake(frame.Payload)
	if err != nil {
		s.writeError(conn, "bad_handshake", err.Error())
		return Page{}, false
	}
	if hs.Version != protocol.Version {
		s.writeError(conn, "version_mismatch", "unsupported protocol version")
		return Page{}, false
	}

	path := hs.Page
	if hs.Resume && hs.SessionID != "" {
		if resumed, ok := s.sessions.Resume(ctx, hs.SessionID); ok {
			path = resumed
		} else {
			s.writeError(conn, "resume_failed", "session expired")
			return Page{}, false
		}
	}

	page, ok := s.registry.Lookup(path)
	if !ok {
		s.writeError(conn, "unknown_page", path)
		return Page{}, false
	}
	return page, true
}

func (s *Server) writeError(conn *websocket.Conn, code, message string) {
	frame := protocol.EncodeError(code, message)
	conn.WriteMessage(websocket.BinaryMessage, frame.Encode())
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM, then
// shuts down gracefully.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.RunContext(ctx)
}

// RunContext starts the HTTP server and blocks until ctx is cancelled.
func (s *Server) RunContext(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "address", s.config.Address)
		if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Sweep idle sessions on a fraction of the timeout.
	sweep := time.NewTicker(s.config.IdleTimeout / 2)
	defer sweep.Stop()

	for {
		select {
		case err := <-errCh:
			return err
		case <-sweep.C:
			s.sessions.EvictIdle(time.Now())
		case <-ctx.Done():
			return s.Shutdown()
		}
	}
}

// Shutdown drains sessions and stops the HTTP server.
func (s *Server) Shutdown() error {
	s.logger.Info("shutting down")
	s.sessions.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
