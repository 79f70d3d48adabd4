// Package server exposes the shrub pipeline to a browser.
//
// GET /           the explorer page (controls + a 3-D canvas)
// GET /api/shrub  compute a run from query parameters, return JSON lines
//
// The compute endpoint is guarded by a single-flight flag: a recompute
// triggered while another is in flight is rejected with 409 rather than
// letting rapid re-triggering pile up concurrent runs.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/collatzlab/shrub/internal/collatz"
	"github.com/collatzlab/shrub/internal/sample"
	"github.com/collatzlab/shrub/internal/shrub"
	"github.com/collatzlab/shrub/internal/turtle"
)

// Browser defaults are deliberately smaller than the CLI's: a thousand
// million-bounded trajectories serialize to tens of megabytes of JSON.
const (
	defaultCount    = 300
	defaultMaxStart = 100000
)

type Server struct {
	logger *log.Logger
	busy   atomic.Bool
}

func New(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{logger: logger}
}

// Router builds the HTTP routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/", s.handleIndex)
	r.Get("/api/shrub", s.handleShrub)
	return r
}

// ListenAndServe runs the server on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("serving shrub explorer", "addr", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

type jsonLine struct {
	Start   int64        `json:"start"`
	Color   string       `json:"color"`
	Opacity float64      `json:"opacity"`
	Width   float64      `json:"width"`
	Hero    bool         `json:"hero,omitempty"`
	Points  [][3]float64 `json:"points"`
}

type jsonResult struct {
	Rule  string     `json:"rule"`
	Lines []jsonLine `json:"lines"`
}

func (s *Server) handleShrub(w http.ResponseWriter, r *http.Request) {
	if !s.busy.CompareAndSwap(false, true) {
		writeError(w, http.StatusConflict, "a run is already in progress")
		return
	}
	defer s.busy.Store(false)

	cfg, err := configFromQuery(r)
	if err != nil {
		s.logger.Warn("bad request", "err", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	res, err := shrub.Grow(r.Context(), cfg)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, collatz.ErrInvalidRule) || errors.Is(err, sample.ErrInvalidRange) ||
			errors.Is(err, turtle.ErrInvalidPolicy) {
			status = http.StatusBadRequest
		}
		if errors.Is(err, collatz.ErrDivergenceSuspected) {
			status = http.StatusUnprocessableEntity
		}
		s.logger.Error("run failed", "err", err)
		writeError(w, status, err.Error())
		return
	}
	s.logger.Info("run complete", "lines", len(res.Lines), "rule", res.Rule,
		"elapsed", time.Since(start).Round(time.Millisecond))

	out := jsonResult{Rule: string(res.Rule), Lines: make([]jsonLine, len(res.Lines))}
	for i, l := range res.Lines {
		jl := jsonLine{
			Start:   l.Start,
			Color:   l.Style.Hex(),
			Opacity: l.Style.Opacity,
			Width:   l.Style.Width,
			Hero:    l.Style.Hero,
			Points:  make([][3]float64, len(l.Trajectory)),
		}
		for j, p := range l.Trajectory {
			jl.Points[j] = [3]float64{p.X, p.Y, p.Z}
		}
		out.Lines[i] = jl
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		s.logger.Error("encode failed", "err", err)
	}
}

// configFromQuery reads run parameters, substituting defaults for missing
// or malformed numeric values. Tag fields (rule, policy) are validated
// strictly so a typo surfaces instead of silently rendering the wrong map.
func configFromQuery(r *http.Request) (shrub.Config, error) {
	q := r.URL.Query()

	cfg := shrub.DefaultConfig()
	cfg.Count = intParam(q.Get("n_starts"), defaultCount)
	cfg.MaxStart = int64Param(q.Get("max_start"), defaultMaxStart)
	cfg.LeftDeg = floatParam(q.Get("left_deg"), cfg.LeftDeg)
	cfg.RightDeg = floatParam(q.Get("right_deg"), cfg.RightDeg)
	cfg.HeadingDeg = floatParam(q.Get("heading_deg"), cfg.HeadingDeg)
	cfg.VerticalStep = floatParam(q.Get("vertical_step"), cfg.VerticalStep)
	cfg.Seed = int64Param(q.Get("seed"), cfg.Seed)
	cfg.Hero = int64Param(q.Get("hero"), cfg.Hero)

	if v := q.Get("rule"); v != "" {
		rule, err := collatz.ParseRule(v)
		if err != nil {
			return shrub.Config{}, err
		}
		cfg.Rule = rule
	}
	if v := q.Get("vertical_policy"); v != "" {
		policy, err := turtle.ParseVerticalPolicy(v)
		if err != nil {
			return shrub.Config{}, err
		}
		cfg.VerticalPolicy = policy
	}

	return cfg, nil
}

func intParam(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func int64Param(s string, def int64) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return def
	}
	return v
}

func floatParam(s string, def float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
