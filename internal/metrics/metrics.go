package metrics

import (
	"sync"
	"time"
)

type scoreboardStats struct {
	started  int
	finished int
	updates  int
	ongoing  int
	errors   map[string]int
}

// Recorder captures scoreboard and HTTP metrics. In-memory counters are always
// kept; OpenTelemetry instruments are fed when configured through Setup.
type Recorder struct {
	mu    sync.Mutex
	stats scoreboardStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: scoreboardStats{errors: make(map[string]int)},
		otel:  otel,
	}
}

// RecordMatchStarted counts a started match.
func (r *Recorder) RecordMatchStarted() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.stats.started++
	r.stats.ongoing++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordMatchStarted()
	}
}

// RecordMatchFinished counts a finished match.
func (r *Recorder) RecordMatchFinished() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.stats.finished++
	r.stats.ongoing--
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordMatchFinished()
	}
}

// RecordScoreUpdate counts an accepted score update.
func (r *Recorder) RecordScoreUpdate() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.stats.updates++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordScoreUpdate()
	}
}

// RecordError counts a rejected scoreboard operation by error kind.
func (r *Recorder) RecordError(kind string) {
	if r == nil {
		return
	}
	if kind == "" {
		kind = "unknown"
	}
	r.mu.Lock()
	r.stats.errors[kind]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordError(kind)
	}
}

// Snapshot is a copy of the current scoreboard counters.
type Snapshot struct {
	Started  int
	Finished int
	Updates  int
	Ongoing  int
	Errors   map[string]int
}

// Snapshot returns a copy of the current counters.
func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{Errors: map[string]int{}}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	errs := make(map[string]int, len(r.stats.errors))
	for k, v := range r.stats.errors {
		errs[k] = v
	}
	return Snapshot{
		Started:  r.stats.started,
		Finished: r.stats.finished,
		Updates:  r.stats.updates,
		Ongoing:  r.stats.ongoing,
		Errors:   errs,
	}
}

// Errors returns the number of errors recorded for a kind.
func (r *Recorder) Errors(kind string) int {
	return r.Snapshot().Errors[kind]
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}
