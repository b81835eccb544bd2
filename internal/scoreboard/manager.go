// Package scoreboard keeps the set of ongoing matches and ranks them for display.
package scoreboard

import (
	"sync"
	"time"

	"github.com/preston-bernstein/live-scoreboard/internal/domain/matches"
	"github.com/preston-bernstein/live-scoreboard/internal/domain/teams"
)

const firstID = 1

// Manager owns every ongoing match. It is safe for concurrent use; each
// operation runs under a single lock.
type Manager struct {
	mu      sync.RWMutex
	ongoing map[int]matches.Match
	nextID  int
	// clock is the last StartOrder handed out. It never resets.
	clock uint64
	now   func() time.Time
}

// Option customizes a Manager.
type Option func(*Manager)

// WithClock sets the wall clock used to stamp StartedAt.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager constructs an empty Manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		ongoing: make(map[int]matches.Match),
		nextID:  firstID,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// StartMatch adds a new 0-0 match between the two teams and returns it.
// Duplicate pairings are allowed.
func (m *Manager) StartMatch(homeTeam, awayTeam string) matches.Match {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clock++
	match := matches.Match{
		ID:         m.nextID,
		HomeTeam:   teams.New(homeTeam),
		AwayTeam:   teams.New(awayTeam),
		StartOrder: m.clock,
		StartedAt:  m.now(),
	}
	m.nextID++
	m.ongoing[match.ID] = match
	return match
}

// UpdateScore sets the absolute score of an ongoing match.
func (m *Manager) UpdateScore(id, home, away int) (matches.Match, error) {
	if home < 0 || away < 0 {
		return matches.Match{}, &NegativeScoreError{Home: home, Away: away}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	match, ok := m.ongoing[id]
	if !ok {
		return matches.Match{}, &MatchNotFoundError{ID: id}
	}
	match.Score = matches.Score{Home: home, Away: away}
	m.ongoing[id] = match
	return match, nil
}

// FinishMatch removes an ongoing match and returns the matches still in play,
// oldest first. When the last match finishes the id counter starts over at 1,
// so ids of finished matches can be handed out again.
func (m *Manager) FinishMatch(id int) ([]matches.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.ongoing[id]; !ok {
		return nil, &MatchNotFoundError{ID: id}
	}
	delete(m.ongoing, id)
	if len(m.ongoing) == 0 {
		m.nextID = firstID
	}

	remaining := m.snapshotLocked()
	byStartOrder(remaining)
	return remaining, nil
}

// OngoingMatches returns a ranked copy of the ongoing matches.
func (m *Manager) OngoingMatches() []matches.Match {
	m.mu.RLock()
	list := m.snapshotLocked()
	m.mu.RUnlock()

	rank(list)
	return list
}

// Match returns a single ongoing match.
func (m *Manager) Match(id int) (matches.Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	match, ok := m.ongoing[id]
	if !ok {
		return matches.Match{}, &MatchNotFoundError{ID: id}
	}
	return match, nil
}

// Len reports how many matches are in play.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.ongoing)
}

func (m *Manager) snapshotLocked() []matches.Match {
	result := make([]matches.Match, 0, len(m.ongoing))
	for _, match := range m.ongoing {
		result = append(result, match)
	}
	return result
}
