package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/preston-bernstein/live-scoreboard/internal/config"
	"github.com/preston-bernstein/live-scoreboard/internal/logging"
	"github.com/preston-bernstein/live-scoreboard/internal/scoreboard"
	"github.com/preston-bernstein/live-scoreboard/internal/server"
)

const (
	appName    = "live-scoreboard"
	appVersion = "dev"
)

// runFunc starts the long-running process; swapped out in tests.
type runFunc func(ctx context.Context, cfg config.Config, logger *slog.Logger) error

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(runServer).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	return server.New(cfg, logger).Run(ctx)
}

func newApp(run runFunc) *cli.App {
	serve := &cli.Command{
		Name:   "serve",
		Usage:  "run the scoreboard HTTP API until interrupted",
		Flags:  serveFlags(),
		Action: serveAction(run),
	}

	return &cli.App{
		Name:    appName,
		Usage:   "in-memory live scoreboard",
		Version: appVersion,
		Flags:   serveFlags(),
		Action:  serveAction(run),
		Commands: []*cli.Command{
			serve,
			demoCommand(),
		},
	}
}

func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "port", Usage: "HTTP listen port", EnvVars: []string{config.EnvPort}},
		&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error", EnvVars: []string{config.EnvLogLevel}},
		&cli.StringFlag{Name: "log-format", Usage: "text or json", EnvVars: []string{config.EnvLogFormat}},
		&cli.BoolFlag{Name: "metrics", Usage: "expose Prometheus metrics", EnvVars: []string{config.EnvMetricsEnabled}},
		&cli.StringFlag{Name: "metrics-port", Usage: "metrics listen port", EnvVars: []string{config.EnvMetricsPort}},
		&cli.StringFlag{Name: "otlp-endpoint", Usage: "OTLP HTTP metrics endpoint", EnvVars: []string{config.EnvOtelEndpoint}},
		&cli.DurationFlag{Name: "shutdown-timeout", Usage: "graceful shutdown deadline", EnvVars: []string{config.EnvShutdownTimeout}},
	}
}

func serveAction(run runFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg := applyFlags(c, config.Load())
		logger := logging.NewLogger(logging.Config{
			Level:   cfg.Log.Level,
			Format:  cfg.Log.Format,
			Service: appName,
			Version: appVersion,
		})
		return run(c.Context, cfg, logger)
	}
}

// applyFlags overlays explicitly set flags on the env-loaded config. Empty
// string values are ignored so a blank env var keeps the default.
func applyFlags(c *cli.Context, cfg config.Config) config.Config {
	setString(c, "port", &cfg.Port)
	setString(c, "log-level", &cfg.Log.Level)
	setString(c, "log-format", &cfg.Log.Format)
	setString(c, "metrics-port", &cfg.Metrics.Port)
	setString(c, "otlp-endpoint", &cfg.Metrics.OtlpEndpoint)
	if c.IsSet("metrics") {
		cfg.Metrics.Enabled = c.Bool("metrics")
	}
	if c.IsSet("shutdown-timeout") && c.Duration("shutdown-timeout") > 0 {
		cfg.ShutdownTimeout = c.Duration("shutdown-timeout")
	}
	return cfg
}

func setString(c *cli.Context, name string, dst *string) {
	if v := c.String(name); c.IsSet(name) && v != "" {
		*dst = v
	}
}

// demoCommand replays a short tournament against an in-process board and
// prints the ranked summary.
func demoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "print the summary for a sample set of matches",
		Action: func(c *cli.Context) error {
			board := scoreboard.NewManager()
			fixtures := []struct {
				home, away string
				h, a       int
			}{
				{"Mexico", "Canada", 0, 5},
				{"Spain", "Brazil", 10, 2},
				{"Germany", "France", 2, 2},
				{"Uruguay", "Italy", 6, 6},
				{"Argentina", "Australia", 3, 1},
			}
			for _, f := range fixtures {
				m := board.StartMatch(f.home, f.away)
				if _, err := board.UpdateScore(m.ID, f.h, f.a); err != nil {
					return err
				}
			}
			for i, m := range board.OngoingMatches() {
				fmt.Fprintf(c.App.Writer, "%d. %s\n", i+1, m)
			}
			return nil
		},
	}
}
