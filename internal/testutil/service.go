package testutil

import (
	"testing"

	appscoreboard "github.com/preston-bernstein/live-scoreboard/internal/app/scoreboard"
	"github.com/preston-bernstein/live-scoreboard/internal/metrics"
	"github.com/preston-bernstein/live-scoreboard/internal/scoreboard"
)

// MatchSeed describes a match to preload into a scoreboard.
type MatchSeed struct {
	Home, Away           string
	HomeScore, AwayScore int
}

// NewServiceWithMatches builds a scoreboard service backed by a fresh Manager,
// starting the seeded matches in order and applying their scores.
func NewServiceWithMatches(t testing.TB, seeds ...MatchSeed) (*appscoreboard.Service, *metrics.Recorder) {
	t.Helper()
	rec := metrics.NewRecorder()
	svc := appscoreboard.NewService(scoreboard.NewManager(), nil, rec)
	for _, s := range seeds {
		m := svc.StartMatch(s.Home, s.Away)
		if s.HomeScore == 0 && s.AwayScore == 0 {
			continue
		}
		if _, err := svc.UpdateScore(m.ID, s.HomeScore, s.AwayScore); err != nil {
			t.Fatalf("seed score for %s vs %s: %v", s.Home, s.Away, err)
		}
	}
	return svc, rec
}
