// Package server exposes the projection engine over a small HTTP JSON API.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/projection"
	"github.com/theirongolddev/nestegg/internal/report"
)

// DefaultAddr is used when Config.Addr is empty.
const DefaultAddr = "127.0.0.1:8790"

const maxBodyBytes = 1 << 20

// Config controls the server runtime behavior.
type Config struct {
	Addr     string
	Defaults model.Inputs // starting point for every request
	Quiet    bool         // suppress per-request logging
}

// ProjectionResponse is served at /v1/projection.
type ProjectionResponse struct {
	model.Plan
	TrajectoryEnd float64 `json:"trajectory_end"`
	Discrepancy   float64 `json:"discrepancy"`
	Capped        bool    `json:"capped"` // requested contribution exceeded capacity
}

// ScheduleResponse is served at /v1/schedule.
type ScheduleResponse struct {
	Years         []projection.YearSummary `json:"years"`
	Contributions float64                  `json:"total_contributions"`
	Growth        float64                  `json:"total_growth"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt   time.Time `json:"started_at"`
	UptimeSec   int64     `json:"uptime_sec"`
	Addr        string    `json:"addr"`
	Requests    int64     `json:"requests"`
	BadRequests int64     `json:"bad_requests"`
}

type controlView struct {
	model.Control
	Default float64 `json:"default"` // configured, not built-in
}

type errorBody struct {
	Error string `json:"error"`
}

// Service provides the HTTP API.
type Service struct {
	cfg Config

	mu          sync.RWMutex
	startedAt   time.Time
	requests    int64
	badRequests int64
}

// New returns a new service with the provided config.
func New(cfg Config) *Service {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	cfg.Defaults = model.Clamp(cfg.Defaults)
	return &Service{
		cfg:       cfg,
		startedAt: time.Now(),
	}
}

// Handler returns the routed API with request logging applied.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/controls", s.handleControls)
	mux.HandleFunc("/v1/projection", s.handleProjection)
	mux.HandleFunc("/v1/schedule", s.handleSchedule)
	mux.HandleFunc("/v1/report.pdf", s.handleReportPDF)
	mux.HandleFunc("/v1/trajectory.csv", s.handleTrajectoryCSV)
	return s.logRequests(mux)
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Printf("nestegg server shutting down")
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:   s.startedAt,
		UptimeSec:   int64(time.Since(s.startedAt).Seconds()),
		Addr:        s.cfg.Addr,
		Requests:    s.requests,
		BadRequests: s.badRequests,
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleControls(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	views := make([]controlView, 0, len(model.Controls))
	for _, c := range model.Controls {
		views = append(views, controlView{Control: c, Default: model.Value(s.cfg.Defaults, c.Key)})
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Service) handleProjection(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	plan, ok := s.evaluate(w, r)
	if !ok {
		return
	}

	resp := ProjectionResponse{
		Plan:          plan,
		TrajectoryEnd: plan.Result.Final(),
		Discrepancy:   projection.Discrepancy(plan),
		Capped:        plan.Inputs.Savings.MonthlyContribution > plan.Contribution,
	}
	if r.URL.Query().Get("series") == "false" {
		resp.Result.SavingsOverTime = nil
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Service) handleSchedule(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	plan, ok := s.evaluate(w, r)
	if !ok {
		return
	}

	rows := projection.Schedule(plan)
	if rows == nil {
		rows = []projection.YearSummary{}
	}
	contrib, growth := projection.Totals(rows)
	writeJSON(w, http.StatusOK, ScheduleResponse{Years: rows, Contributions: contrib, Growth: growth})
}

func (s *Service) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}
	plan, ok := s.evaluate(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WritePDF(&buf, plan); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="nestegg-projection.pdf"`)
	_, _ = w.Write(buf.Bytes())
}

func (s *Service) handleTrajectoryCSV(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}
	plan, ok := s.evaluate(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, plan); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="nestegg-trajectory.csv"`)
	_, _ = w.Write(buf.Bytes())
}

// evaluate reads inputs from the request, clamps them and runs the engine.
// On failure it has already written a 400 response.
func (s *Service) evaluate(w http.ResponseWriter, r *http.Request) (model.Plan, bool) {
	var (
		in  model.Inputs
		err error
	)
	if r.Method == http.MethodPost {
		in, err = decodeInputs(http.MaxBytesReader(w, r.Body, maxBodyBytes), s.cfg.Defaults)
	} else {
		in, err = inputsFromQuery(r.URL.Query(), s.cfg.Defaults)
	}
	if err != nil {
		s.mu.Lock()
		s.badRequests++
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, err)
		return model.Plan{}, false
	}
	return projection.Evaluate(model.Clamp(in)), true
}

// inputsFromQuery overlays query parameters on defaults. Values are in
// control units, so rates are percents. Unknown parameters are ignored.
func inputsFromQuery(q url.Values, defaults model.Inputs) (model.Inputs, error) {
	in := defaults
	for _, c := range model.Controls {
		raw := q.Get(string(c.Key))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return in, fmt.Errorf("%s: %q is not a number", c.Key, raw)
		}
		model.SetValue(&in, c.Key, v)
	}
	return in, nil
}

// decodeInputs overlays a JSON Inputs document on defaults. Rates are
// fractions, as in model.Inputs.
func decodeInputs(body io.Reader, defaults model.Inputs) (model.Inputs, error) {
	in := defaults
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return defaults, fmt.Errorf("decoding inputs: %w", err)
	}
	return in, nil
}

func allowMethods(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
	return false
}

// writeJSON encodes v before touching the response so an encoding failure
// still reaches the client as a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(errorBody{Error: fmt.Sprintf("encoding response: %v", err)})
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{Error: err.Error()})
}

// statusRecorder captures the response code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Service) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.mu.Lock()
		s.requests++
		s.mu.Unlock()

		if !s.cfg.Quiet {
			log.Printf("nestegg %s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
		}
	})
}
