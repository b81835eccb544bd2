package main

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/live-scoreboard/internal/config"
)

// Smoke test to ensure main honors SKIP_SERVER_RUN and does not block test runs.
func TestMainSkipsWhenEnvSet(t *testing.T) {
	t.Setenv("SKIP_SERVER_RUN", "1")
	main()
}

func captureRun(got *config.Config) runFunc {
	return func(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
		if logger == nil {
			panic("expected logger")
		}
		*got = cfg
		return nil
	}
}

func TestServeFlagsOverrideEnv(t *testing.T) {
	t.Setenv(config.EnvPort, "4100")
	t.Setenv(config.EnvLogFormat, "json")

	var got config.Config
	args := []string{appName, "serve", "--port", "5000", "--metrics", "--shutdown-timeout", "3s"}
	if err := newApp(captureRun(&got)).Run(args); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Port != "5000" {
		t.Fatalf("expected flag port 5000, got %s", got.Port)
	}
	if got.Log.Format != "json" {
		t.Fatalf("expected env log format json, got %s", got.Log.Format)
	}
	if !got.Metrics.Enabled {
		t.Fatalf("expected metrics enabled by flag")
	}
	if got.ShutdownTimeout != 3*time.Second {
		t.Fatalf("expected 3s shutdown timeout, got %s", got.ShutdownTimeout)
	}
}

func TestDefaultActionServes(t *testing.T) {
	t.Setenv(config.EnvPort, "")

	var got config.Config
	if err := newApp(captureRun(&got)).Run([]string{appName}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Port != "4000" {
		t.Fatalf("expected default port 4000, got %s", got.Port)
	}
}

func TestDemoPrintsRankedSummary(t *testing.T) {
	var buf bytes.Buffer
	app := newApp(captureRun(new(config.Config)))
	app.Writer = &buf

	if err := app.Run([]string{appName, "demo"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"1. Uruguay 6 - Italy 6",
		"2. Spain 10 - Brazil 2",
		"3. Mexico 0 - Canada 5",
		"4. Argentina 3 - Australia 1",
		"5. Germany 2 - France 2",
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %q", len(want), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}
