package scoreboard

import (
	"log/slog"

	"github.com/preston-bernstein/live-scoreboard/internal/domain/matches"
	"github.com/preston-bernstein/live-scoreboard/internal/logging"
	"github.com/preston-bernstein/live-scoreboard/internal/metrics"
	core "github.com/preston-bernstein/live-scoreboard/internal/scoreboard"
)

// Board defines the scoreboard operations the service delegates to.
type Board interface {
	StartMatch(homeTeam, awayTeam string) matches.Match
	UpdateScore(id, home, away int) (matches.Match, error)
	FinishMatch(id int) ([]matches.Match, error)
	OngoingMatches() []matches.Match
	Match(id int) (matches.Match, error)
}

// Service coordinates scoreboard operations, adding logs and metrics.
type Service struct {
	board   Board
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewService constructs a Service with the provided Board.
func NewService(board Board, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	return &Service{
		board:   board,
		logger:  logger,
		metrics: recorder,
	}
}

// StartMatch starts a 0-0 match.
func (s *Service) StartMatch(homeTeam, awayTeam string) matches.Match {
	match := s.board.StartMatch(homeTeam, awayTeam)
	s.metrics.RecordMatchStarted()
	logging.Info(s.logger, "match started",
		logging.FieldMatchID, match.ID,
		logging.FieldHomeTeam, homeTeam,
		logging.FieldAwayTeam, awayTeam,
	)
	return match
}

// UpdateScore replaces the score of an ongoing match.
func (s *Service) UpdateScore(id, home, away int) (matches.Match, error) {
	match, err := s.board.UpdateScore(id, home, away)
	if err != nil {
		s.recordFailure("score update rejected", err,
			logging.FieldMatchID, id,
			logging.FieldHomeScore, home,
			logging.FieldAwayScore, away,
		)
		return matches.Match{}, err
	}
	s.metrics.RecordScoreUpdate()
	logging.Info(s.logger, "score updated",
		logging.FieldMatchID, id,
		logging.FieldHomeScore, home,
		logging.FieldAwayScore, away,
	)
	return match, nil
}

// FinishMatch removes an ongoing match and returns the remaining ones.
func (s *Service) FinishMatch(id int) ([]matches.Match, error) {
	remaining, err := s.board.FinishMatch(id)
	if err != nil {
		s.recordFailure("finish rejected", err, logging.FieldMatchID, id)
		return nil, err
	}
	s.metrics.RecordMatchFinished()
	logging.Info(s.logger, "match finished",
		logging.FieldMatchID, id,
		logging.FieldCount, len(remaining),
	)
	return remaining, nil
}

// OngoingMatches returns the ranked summary.
func (s *Service) OngoingMatches() []matches.Match {
	return s.board.OngoingMatches()
}

// MatchByID returns a single ongoing match.
func (s *Service) MatchByID(id int) (matches.Match, error) {
	return s.board.Match(id)
}

func (s *Service) recordFailure(msg string, err error, args ...any) {
	kind := core.Kind(err)
	s.metrics.RecordError(kind)
	args = append(args, logging.FieldErrorKind, kind)
	if kind == "" {
		logging.Error(s.logger, msg, err, args...)
		return
	}
	args = append(args, "error", err)
	logging.Warn(s.logger, msg, args...)
}
