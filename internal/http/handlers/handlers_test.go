package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/live-scoreboard/internal/domain/matches"
	"github.com/preston-bernstein/live-scoreboard/internal/testutil"
)

func newTestRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Get("/matches", h.ListMatches)
	r.Post("/matches", h.StartMatch)
	r.Get("/matches/{id}", h.MatchByID)
	r.Delete("/matches/{id}", h.FinishMatch)
	r.Put("/matches/{id}/score", h.UpdateScore)
	return r
}

func TestHealth(t *testing.T) {
	svc, _ := testutil.NewServiceWithMatches(t)
	h := NewHandler(svc, nil, nil)

	rr := testutil.Serve(newTestRouter(h), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	svc, _ := testutil.NewServiceWithMatches(t)
	h := NewHandler(svc, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	req = req.WithContext(ctx)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req)

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "shutting down" {
		t.Fatalf("unexpected error %q", resp["error"])
	}
}

func TestReady(t *testing.T) {
	svc, _ := testutil.NewServiceWithMatches(t)
	ready := false
	h := NewHandler(svc, nil, func() bool { return ready })
	router := newTestRouter(h)

	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/ready", nil), http.StatusServiceUnavailable)

	ready = true
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/ready", nil), http.StatusOK)
}

func TestReadyWithoutStatusFunc(t *testing.T) {
	svc, _ := testutil.NewServiceWithMatches(t)
	h := NewHandler(svc, nil, nil)

	testutil.AssertStatus(t, testutil.Serve(newTestRouter(h), http.MethodGet, "/ready", nil), http.StatusOK)
}

func TestListMatchesRanked(t *testing.T) {
	svc, _ := testutil.NewServiceWithMatches(t,
		testutil.MatchSeed{Home: "A", Away: "a", HomeScore: 1, AwayScore: 2},
		testutil.MatchSeed{Home: "B", Away: "b", HomeScore: 4, AwayScore: 0},
		testutil.MatchSeed{Home: "C", Away: "c", HomeScore: 0, AwayScore: 3},
	)
	h := NewHandler(svc, nil, nil)

	rr := testutil.Serve(newTestRouter(h), http.MethodGet, "/matches", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp matches.SummaryResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Count != 3 || len(resp.Matches) != 3 {
		t.Fatalf("expected 3 matches, got %+v", resp)
	}
	var order []string
	for _, m := range resp.Matches {
		order = append(order, m.HomeTeam.Name)
	}
	if strings.Join(order, ",") != "B,C,A" {
		t.Fatalf("expected order B,C,A, got %v", order)
	}
}

func TestListMatchesEmpty(t *testing.T) {
	svc, _ := testutil.NewServiceWithMatches(t)
	h := NewHandler(svc, nil, nil)

	rr := testutil.Serve(newTestRouter(h), http.MethodGet, "/matches", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), `"matches":[]`) {
		t.Fatalf("expected empty matches array, got %s", rr.Body.String())
	}
}

func TestStartMatch(t *testing.T) {
	svc, rec := testutil.NewServiceWithMatches(t)
	h := NewHandler(svc, nil, nil)

	rr := testutil.Serve(newTestRouter(h), http.MethodPost, "/matches",
		strings.NewReader(`{"homeTeam":"Poland","awayTeam":"France"}`))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	var m matches.Match
	testutil.DecodeJSON(t, rr, &m)
	if m.ID != 1 || m.HomeTeam.Name != "Poland" || m.AwayTeam.Name != "France" {
		t.Fatalf("unexpected match %+v", m)
	}
	if m.Score != (matches.Score{}) {
		t.Fatalf("expected 0-0, got %+v", m.Score)
	}
	if rec.Snapshot().Started != 1 {
		t.Fatalf("expected start recorded")
	}
}

func TestStartMatchInvalidBody(t *testing.T) {
	svc, _ := testutil.NewServiceWithMatches(t)
	h := NewHandler(svc, nil, nil)

	for _, body := range []string{`not-json`, `{"homeTeam":"A","referee":"B"}`} {
		rr := testutil.Serve(newTestRouter(h), http.MethodPost, "/matches", strings.NewReader(body))
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	}
}

func TestMatchByID(t *testing.T) {
	svc, _ := testutil.NewServiceWithMatches(t, testutil.MatchSeed{Home: "Poland", Away: "France"})
	h := NewHandler(svc, nil, nil)
	router := newTestRouter(h)

	rr := testutil.Serve(router, http.MethodGet, "/matches/1", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var m matches.Match
	testutil.DecodeJSON(t, rr, &m)
	if m.HomeTeam.Name != "Poland" {
		t.Fatalf("unexpected match %+v", m)
	}

	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/matches/2", nil), http.StatusNotFound)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/matches/abc", nil), http.StatusBadRequest)
}

func TestUpdateScore(t *testing.T) {
	svc, _ := testutil.NewServiceWithMatches(t, testutil.MatchSeed{Home: "Poland", Away: "France"})
	h := NewHandler(svc, nil, nil)

	rr := testutil.Serve(newTestRouter(h), http.MethodPut, "/matches/1/score", strings.NewReader(`{"home":1,"away":2}`))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var m matches.Match
	testutil.DecodeJSON(t, rr, &m)
	if m.Score != (matches.Score{Home: 1, Away: 2}) {
		t.Fatalf("unexpected score %+v", m.Score)
	}
}

func TestUpdateScoreErrors(t *testing.T) {
	svc, rec := testutil.NewServiceWithMatches(t, testutil.MatchSeed{Home: "Poland", Away: "France", HomeScore: 1, AwayScore: 1})
	h := NewHandler(svc, nil, nil)
	router := newTestRouter(h)

	cases := []struct {
		name string
		path string
		body string
		want int
	}{
		{"negative score", "/matches/1/score", `{"home":-1,"away":2}`, http.StatusUnprocessableEntity},
		{"unknown match", "/matches/9/score", `{"home":1,"away":2}`, http.StatusNotFound},
		{"missing away", "/matches/1/score", `{"home":1}`, http.StatusBadRequest},
		{"bad id", "/matches/x/score", `{"home":1,"away":2}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		rr := testutil.Serve(router, http.MethodPut, tc.path, strings.NewReader(tc.body))
		if rr.Code != tc.want {
			t.Fatalf("%s: expected status %d, got %d (%s)", tc.name, tc.want, rr.Code, rr.Body.String())
		}
	}

	m, err := svc.MatchByID(1)
	if err != nil {
		t.Fatalf("expected match to remain: %v", err)
	}
	if m.Score != (matches.Score{Home: 1, Away: 1}) {
		t.Fatalf("expected score unchanged after failures, got %+v", m.Score)
	}
	if rec.Errors("negative_score") != 1 || rec.Errors("match_not_found") != 1 {
		t.Fatalf("expected errors recorded by kind, got %+v", rec.Snapshot().Errors)
	}
}

func TestNegativeScoreBody(t *testing.T) {
	svc, _ := testutil.NewServiceWithMatches(t, testutil.MatchSeed{Home: "Poland", Away: "France"})
	h := NewHandler(svc, nil, nil)

	rr := testutil.Serve(newTestRouter(h), http.MethodPut, "/matches/1/score", strings.NewReader(`{"home":-1,"away":0}`))

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "negative score is not permitted" {
		t.Fatalf("unexpected error body %+v", resp)
	}
}

func TestFinishMatch(t *testing.T) {
	svc, _ := testutil.NewServiceWithMatches(t,
		testutil.MatchSeed{Home: "A", Away: "a"},
		testutil.MatchSeed{Home: "B", Away: "b"},
	)
	h := NewHandler(svc, nil, nil)
	router := newTestRouter(h)

	rr := testutil.Serve(router, http.MethodDelete, "/matches/1", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var resp matches.SummaryResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Count != 1 || resp.Matches[0].HomeTeam.Name != "B" {
		t.Fatalf("unexpected remaining matches %+v", resp)
	}

	testutil.AssertStatus(t, testutil.Serve(router, http.MethodDelete, "/matches/1", nil), http.StatusNotFound)
}

func TestFinishLastMatchResetsIDs(t *testing.T) {
	svc, _ := testutil.NewServiceWithMatches(t, testutil.MatchSeed{Home: "A", Away: "a"})
	h := NewHandler(svc, nil, nil)
	router := newTestRouter(h)

	testutil.AssertStatus(t, testutil.Serve(router, http.MethodDelete, "/matches/1", nil), http.StatusOK)

	rr := testutil.Serve(router, http.MethodPost, "/matches", strings.NewReader(`{"homeTeam":"C","awayTeam":"c"}`))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	var m matches.Match
	testutil.DecodeJSON(t, rr, &m)
	if m.ID != 1 {
		t.Fatalf("expected id 1 after scoreboard emptied, got %d", m.ID)
	}
}
