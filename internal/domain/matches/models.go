package matches

import (
	"fmt"
	"time"

	"github.com/preston-bernstein/live-scoreboard/internal/domain/teams"
)

// Score captures home and away points.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Total returns the sum of both sides.
func (s Score) Total() int {
	return s.Home + s.Away
}

// Match is the canonical shape of an ongoing match.
type Match struct {
	ID       int        `json:"id"`
	HomeTeam teams.Team `json:"homeTeam"`
	AwayTeam teams.Team `json:"awayTeam"`
	Score    Score      `json:"score"`
	// StartOrder increases with every started match and breaks ties between equal totals.
	StartOrder uint64    `json:"startOrder"`
	StartedAt  time.Time `json:"startedAt"`
}

// TotalScore returns the combined score of both teams.
func (m Match) TotalScore() int {
	return m.Score.Total()
}

// String renders the match as a scoreboard line, e.g. "Mexico 0 - Canada 5".
func (m Match) String() string {
	return fmt.Sprintf("%s %d - %s %d", m.HomeTeam.Name, m.Score.Home, m.AwayTeam.Name, m.Score.Away)
}

// SummaryResponse is the payload returned by GET /matches.
type SummaryResponse struct {
	Count   int     `json:"count"`
	Matches []Match `json:"matches"`
}

// NewSummaryResponse builds a SummaryResponse payload.
func NewSummaryResponse(matches []Match) SummaryResponse {
	if matches == nil {
		matches = []Match{}
	}
	return SummaryResponse{
		Count:   len(matches),
		Matches: matches,
	}
}

// StartRequest is the body accepted by POST /matches.
type StartRequest struct {
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`
}

// ScoreRequest is the body accepted by PUT /matches/{id}/score.
type ScoreRequest struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}
