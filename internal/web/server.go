// Package web serves the calculator page and a JSON endpoint for it.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"linecalc/internal/config"
	"linecalc/internal/shift"
	"linecalc/internal/throughput"
)

// Form field names, shared by the page, the query string and POST /calc.
const (
	fieldPieces       = "pieces"
	fieldTimeMin      = "time_min"
	fieldTimeSec      = "time_sec"
	fieldDowntimeMin  = "downtime_min"
	fieldDowntimeSec  = "downtime_sec"
	fieldDowntimeFreq = "downtime_freq"
)

// PageData feeds pageHTML.
type PageData struct {
	Pieces       string
	TimeMin      string
	TimeSec      string
	DowntimeMin  string
	DowntimeSec  string
	DowntimeFreq string

	Version string

	// Clock panel, rendered at request time.
	Clock          string
	Hands          shift.Hands
	ShiftName      string
	ShiftRemaining string

	Error  string
	Result *ResultView

	// Share text: meta description when Result is set (for link previews).
	ShareDescription string
}

// Options configures a Server.
type Options struct {
	Version string
	Shifts  []config.Shift

	// AccessLog receives one line per request; nil disables access logging.
	AccessLog io.Writer

	// Now overrides the clock panel's time source.
	Now func() time.Time
}

// Server renders the calculator. Shift presets may be swapped while serving.
type Server struct {
	router  *mux.Router
	tpl     *template.Template
	metrics *metrics
	version string
	access  io.Writer
	now     func() time.Time

	mu     sync.RWMutex
	shifts []config.Shift
}

func New(opts Options) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		tpl:     template.Must(template.New("page").Parse(pageHTML)),
		metrics: newMetrics(),
		version: opts.Version,
		access:  opts.AccessLog,
		now:     opts.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.SetShifts(opts.Shifts)
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/calc", s.handleCalc).Methods(http.MethodPost)
	s.router.HandleFunc("/reset", s.handleReset).Methods(http.MethodGet)
	s.router.HandleFunc("/api/throughput", s.handleAPI).Methods(http.MethodPost)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
}

// Handler returns the router, wrapped in access logging when configured.
func (s *Server) Handler() http.Handler {
	if s.access == nil {
		return s.router
	}
	return handlers.LoggingHandler(s.access, s.router)
}

// SetShifts replaces the shift presets; an empty list restores the defaults.
func (s *Server) SetShifts(shifts []config.Shift) {
	if len(shifts) == 0 {
		shifts = config.DefaultShifts()
	}
	cp := make([]config.Shift, len(shifts))
	copy(cp, shifts)

	s.mu.Lock()
	s.shifts = cp
	s.mu.Unlock()
}

// Shifts returns a copy of the current presets.
func (s *Server) Shifts() []config.Shift {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]config.Shift, len(s.shifts))
	copy(out, s.shifts)
	return out
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string, readTimeout time.Duration) error {
	srv := &http.Server{
		Addr:        addr,
		Handler:     s.Handler(),
		ReadTimeout: readTimeout,
		IdleTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("web: listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	slog.Info("web: shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

/* ---------------- calculation ---------------- */

func (s *Server) calculate(sample throughput.Sample, downtime *throughput.Downtime) (throughput.Result, []config.Shift, error) {
	shifts := s.Shifts()
	res, err := throughput.Compute(sample, downtime, config.ShiftSeconds(shifts))
	s.metrics.observe(res, err)
	if err != nil {
		slog.Debug("web: calculation rejected", "err", err)
	}
	return res, shifts, err
}

/* ---------------- handlers ---------------- */

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := PageData{
		Pieces:       strings.TrimSpace(q.Get(fieldPieces)),
		TimeMin:      strings.TrimSpace(q.Get(fieldTimeMin)),
		TimeSec:      strings.TrimSpace(q.Get(fieldTimeSec)),
		DowntimeMin:  strings.TrimSpace(q.Get(fieldDowntimeMin)),
		DowntimeSec:  strings.TrimSpace(q.Get(fieldDowntimeSec)),
		DowntimeFreq: strings.TrimSpace(q.Get(fieldDowntimeFreq)),
		Version:      s.version,
	}

	// A URL carrying inputs shows its results, so calculations can be shared.
	f := data.fields()
	if !f.Empty() {
		res, shifts, err := s.calculate(f.Sample(), f.Downtime())
		if err != nil {
			data.Error = err.Error()
		} else {
			data.Result = NewResultView(res, shifts)
			data.ShareDescription = buildShareDescription(data.Result)
		}
	}

	s.render(w, data)
}

func (s *Server) handleCalc(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	data := PageData{
		Pieces:       strings.TrimSpace(r.FormValue(fieldPieces)),
		TimeMin:      strings.TrimSpace(r.FormValue(fieldTimeMin)),
		TimeSec:      strings.TrimSpace(r.FormValue(fieldTimeSec)),
		DowntimeMin:  strings.TrimSpace(r.FormValue(fieldDowntimeMin)),
		DowntimeSec:  strings.TrimSpace(r.FormValue(fieldDowntimeSec)),
		DowntimeFreq: strings.TrimSpace(r.FormValue(fieldDowntimeFreq)),
		Version:      s.version,
	}

	// Reject before computing; the message goes straight to the user.
	if err := throughput.Validate(data.fields().Sample()); err != nil {
		s.metrics.observe(throughput.Result{}, err)
		data.Error = err.Error()
		s.render(w, data)
		return
	}

	// Redirect to GET with query params so the URL reflects the calculation.
	http.Redirect(w, r, buildCalcURL(data), http.StatusFound)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusFound)
}

type apiRequest struct {
	Sample       throughput.Sample    `json:"sample"`
	Downtime     *throughput.Downtime `json:"downtime,omitempty"`
	ShiftSeconds []float64            `json:"shift_seconds,omitempty"`
}

type apiError struct {
	Error string `json:"error"`
}

const reasonShiftSeconds = "shift_seconds must be positive"

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	var req apiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "malformed json: " + err.Error()})
		return
	}
	for _, sec := range req.ShiftSeconds {
		if !(sec > 0) || math.IsInf(sec, 0) {
			writeJSON(w, http.StatusBadRequest, apiError{Error: reasonShiftSeconds})
			return
		}
	}

	var (
		res throughput.Result
		err error
	)
	if len(req.ShiftSeconds) > 0 {
		res, err = throughput.Compute(req.Sample, req.Downtime, req.ShiftSeconds)
		s.metrics.observe(res, err)
	} else {
		res, _, err = s.calculate(req.Sample, req.Downtime)
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.version})
}

func (s *Server) render(w http.ResponseWriter, data PageData) {
	now := s.now()
	info := shift.Current(now)
	data.Clock = shift.Digital(now)
	data.Hands = shift.HandAngles(now)
	data.ShiftName = info.Name
	data.ShiftRemaining = shift.FormatRemaining(info.Remaining)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tpl.Execute(w, data); err != nil {
		slog.Error("web: render failed", "err", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("web: encode response", "err", err)
	}
}

/* ---------------- helpers ---------------- */

func (d PageData) fields() throughput.Fields {
	return throughput.Fields{
		Pieces:       d.Pieces,
		TimeMin:      d.TimeMin,
		TimeSec:      d.TimeSec,
		DowntimeMin:  d.DowntimeMin,
		DowntimeSec:  d.DowntimeSec,
		DowntimeFreq: d.DowntimeFreq,
	}
}

// buildCalcURL returns "/?pieces=..." carrying only the non-empty fields.
func buildCalcURL(d PageData) string {
	v := url.Values{}
	for _, kv := range [][2]string{
		{fieldPieces, d.Pieces},
		{fieldTimeMin, d.TimeMin},
		{fieldTimeSec, d.TimeSec},
		{fieldDowntimeMin, d.DowntimeMin},
		{fieldDowntimeSec, d.DowntimeSec},
		{fieldDowntimeFreq, d.DowntimeFreq},
	} {
		if kv[1] != "" {
			v.Set(kv[0], kv[1])
		}
	}
	return "/?" + v.Encode()
}

// buildShareDescription returns the meta description for link previews.
func buildShareDescription(v *ResultView) string {
	var b strings.Builder
	b.WriteString("Cycle " + v.CycleTime + ".")
	for _, sh := range v.Shifts {
		b.WriteString(" " + sh.Name + ": " + sh.Projected + " (target " + sh.Target + ").")
	}
	b.WriteString(" Efficiency " + v.Efficiency + ".")
	return b.String()
}
