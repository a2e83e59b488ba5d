package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	. "github.com/Eng-Zeus-Vianna/atomico/el"
	"github.com/Eng-Zeus-Vianna/atomico/internal/config"
	"github.com/Eng-Zeus-Vianna/atomico/pkg/dom"
	"github.com/Eng-Zeus-Vianna/atomico/pkg/hooks"
	"github.com/Eng-Zeus-Vianna/atomico/pkg/server"
	"github.com/Eng-Zeus-Vianna/atomico/pkg/vdom"
)

func serveCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the server",
		Long: `Start the HTTP and WebSocket server.

Configuration comes from atomico.json in the current directory or
any parent. Flags override the file.

Examples:
  atomico serve
  atomico serve --port=8080
  atomico serve --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from atomico.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from atomico.json)")
	return cmd
}

func runServe(port int, host string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Find(cwd)
	if errors.Is(err, config.ErrNotFound) {
		warn("no atomico.json found, using defaults")
		cfg = config.New()
	} else if err != nil {
		return err
	}
	if port != 0 {
		cfg.Port = port
	}
	if host != "" {
		cfg.Host = host
	}

	logger := newLogger(cfg.Log)

	opts := []server.ServerOption{server.WithLogger(logger)}
	if cfg.Session.Store == "bolt" {
		store, err := server.NewBoltStore(cfg.Session.StorePath)
		if err != nil {
			return err
		}
		opts = append(opts, server.WithSessionStore(store))
	}

	srv := server.New(server.FromProject(cfg), opts...)
	if err := srv.Register(statusPage()); err != nil {
		return err
	}

	info("listening on http://%s", cfg.Addr())
	return srv.Run()
}

func newLogger(lc config.LogConfig) *slog.Logger {
	var level slog.Level
	switch lc.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	hopts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, hopts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, hopts))
}

// statusPage is the default page served until an application registers
// its own: a live counter proving the patch stream works end to end.
func statusPage() server.Page {
	return server.Page{
		Path:  "/",
		Title: "atomico",
		Render: func(ctx *hooks.Context) *vdom.VNode {
			count, setCount := hooks.UseState(ctx, 0)
			return Main(Class("status"),
				H1("atomico is running"),
				P("This page is rendered on the server. Click the button to stream a patch."),
				Button(OnClick(func(*dom.Event) { setCount(count + 1) }), "ping"),
				Span(Class("count"), fmt.Sprintf("pongs: %d", count)),
			)
		},
	}
}
