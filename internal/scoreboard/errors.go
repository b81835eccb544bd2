package scoreboard

import (
	"errors"
	"fmt"
)

var (
	// ErrScoreboard is matched by every error the Manager returns.
	ErrScoreboard = errors.New("scoreboard")
	// ErrNegativeScore is matched by NegativeScoreError.
	ErrNegativeScore = errors.New("negative score is not permitted")
	// ErrMatchNotFound is matched by MatchNotFoundError.
	ErrMatchNotFound = errors.New("no ongoing match with the given identifier")
)

// NegativeScoreError is returned by UpdateScore when either score is below zero.
type NegativeScoreError struct {
	Home int
	Away int
}

func (e *NegativeScoreError) Error() string {
	return fmt.Sprintf("%s (home=%d, away=%d)", ErrNegativeScore, e.Home, e.Away)
}

func (e *NegativeScoreError) Unwrap() []error {
	return []error{ErrNegativeScore, ErrScoreboard}
}

// MatchNotFoundError is returned when an id does not identify an ongoing match.
type MatchNotFoundError struct {
	ID int
}

func (e *MatchNotFoundError) Error() string {
	return fmt.Sprintf("%s (id=%d)", ErrMatchNotFound, e.ID)
}

func (e *MatchNotFoundError) Unwrap() []error {
	return []error{ErrMatchNotFound, ErrScoreboard}
}

// AsNegativeScoreError attempts to unwrap an error into a NegativeScoreError.
func AsNegativeScoreError(err error) (*NegativeScoreError, bool) {
	var nsErr *NegativeScoreError
	if errors.As(err, &nsErr) {
		return nsErr, true
	}
	return nil, false
}

// AsMatchNotFoundError attempts to unwrap an error into a MatchNotFoundError.
func AsMatchNotFoundError(err error) (*MatchNotFoundError, bool) {
	var nfErr *MatchNotFoundError
	if errors.As(err, &nfErr) {
		return nfErr, true
	}
	return nil, false
}

// Kind returns a stable label for a scoreboard error, or "" for anything else.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrNegativeScore):
		return "negative_score"
	case errors.Is(err, ErrMatchNotFound):
		return "match_not_found"
	default:
		return ""
	}
}
