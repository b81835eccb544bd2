package testutil

import (
	"time"

	"github.com/preston-bernstein/live-scoreboard/internal/domain/matches"
	"github.com/preston-bernstein/live-scoreboard/internal/domain/teams"
)

// SampleMatch returns a minimal match fixture with the provided id and score.
func SampleMatch(id, home, away int) matches.Match {
	return matches.Match{
		ID:         id,
		HomeTeam:   teams.New("Home"),
		AwayTeam:   teams.New("Away"),
		Score:      matches.Score{Home: home, Away: away},
		StartOrder: uint64(id),
		StartedAt:  time.Date(2024, 8, 6, 22, 30, 0, 0, time.UTC),
	}
}
