// Package server exposes the forecasting engine as a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/neorent/forecast/internal/calculation"
	"github.com/neorent/forecast/internal/config"
	"github.com/neorent/forecast/internal/domain"
	"github.com/neorent/forecast/internal/output"
	"github.com/neorent/forecast/internal/store"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// Server serves the forecasting API over one portfolio source
type Server struct {
	engine *calculation.Engine
	source store.Source
	logger *zap.Logger
	router *mux.Router
}

// New wires the routes. The source is read again on every portfolio request.
func New(engine *calculation.Engine, source store.Source, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = calculation.NewEngine()
	}
	s := &Server{engine: engine, source: source, logger: logger, router: mux.NewRouter()}

	s.router.Use(s.logRequests)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/tax", s.handleTax).Methods(http.MethodGet)
	api.HandleFunc("/loan", s.handleLoan).Methods(http.MethodGet)
	api.HandleFunc("/simulations", s.handleSimulation).Methods(http.MethodPost)
	api.HandleFunc("/portfolio", s.handlePortfolio).Methods(http.MethodGet)
	api.HandleFunc("/properties/{title}/profitability", s.handleProfitability).Methods(http.MethodGet)
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      s,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("starting server", zap.String("addr", cfg.Address))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTax(w http.ResponseWriter, r *http.Request) {
	income, err := decimalParam(r, "income")
	if err != nil {
		s.respondError(w, err, "server.handleTax")
		return
	}
	country := r.URL.Query().Get("country")
	s.writeJSON(w, http.StatusOK, s.engine.Tax.Breakdown(income, country))
}

type loanResponse struct {
	Principal      decimal.Decimal                 `json:"principal"`
	AnnualRate     decimal.Decimal                 `json:"annual_rate"`
	TermMonths     int                             `json:"term_months"`
	MonthlyPayment decimal.Decimal                 `json:"monthly_payment"`
	TotalInterest  decimal.Decimal                 `json:"total_interest"`
	Schedule       []calculation.AmortizationEntry `json:"schedule,omitempty"`
}

func (s *Server) handleLoan(w http.ResponseWriter, r *http.Request) {
	principal, err := decimalParam(r, "principal")
	if err != nil {
		s.respondError(w, err, "server.handleLoan")
		return
	}
	rate, err := decimalParam(r, "rate")
	if err != nil {
		s.respondError(w, err, "server.handleLoan")
		return
	}
	months, err := strconv.Atoi(r.URL.Query().Get("months"))
	if err != nil {
		s.respondError(w, fmt.Errorf("%w: months must be an integer", calculation.ErrInvalidInput), "server.handleLoan")
		return
	}

	resp := loanResponse{Principal: principal, AnnualRate: rate, TermMonths: months}
	if resp.MonthlyPayment, err = calculation.MonthlyPayment(principal, rate, months); err != nil {
		s.respondError(w, err, "server.handleLoan")
		return
	}
	if resp.TotalInterest, err = calculation.TotalInterest(principal, rate, months); err != nil {
		s.respondError(w, err, "server.handleLoan")
		return
	}
	if withSchedule, _ := strconv.ParseBool(r.URL.Query().Get("schedule")); withSchedule {
		if resp.Schedule, err = calculation.AmortizationSchedule(principal, rate, months); err != nil {
			s.respondError(w, err, "server.handleLoan")
			return
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSimulation(w http.ResponseWriter, r *http.Request) {
	var in domain.SimulationInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&in); err != nil {
		s.respondError(w, fmt.Errorf("%w: invalid simulation body: %v", calculation.ErrInvalidInput, err), "server.handleSimulation")
		return
	}
	result, err := s.engine.Simulation.Simulate(in)
	if err != nil {
		s.respondError(w, err, "server.handleSimulation")
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.load(r.Context())
	if err != nil {
		s.respondError(w, err, "server.handlePortfolio")
		return
	}
	report, err := s.engine.BuildReport(r.Context(), cfg)
	if err != nil {
		s.respondError(w, err, "server.handlePortfolio")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" || output.NormalizeFormatName(format) == "json" {
		s.writeJSON(w, http.StatusOK, report)
		return
	}
	f := output.GetFormatterByName(format)
	if f == nil {
		s.respondError(w, fmt.Errorf("%w: %w", calculation.ErrInvalidInput, output.ErrUnsupportedFormat), "server.handlePortfolio")
		return
	}
	data, err := f.Format(report)
	if err != nil {
		s.respondError(w, err, "server.handlePortfolio")
		return
	}
	w.Header().Set("Content-Type", contentType(output.Extension(f)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("failed to write report", zap.Error(err))
	}
}

func (s *Server) handleProfitability(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.load(r.Context())
	if err != nil {
		s.respondError(w, err, "server.handleProfitability")
		return
	}
	title := mux.Vars(r)["title"]
	result, err := s.engine.PropertyProfitability(cfg, title)
	if err != nil {
		s.respondError(w, err, "server.handleProfitability")
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) load(ctx context.Context) (*domain.Configuration, error) {
	if s.source == nil {
		return nil, errors.New("no portfolio source configured")
	}
	return s.source.Load(ctx)
}

// decimalParam reads a required numeric query parameter
func decimalParam(r *http.Request, name string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: %s is required", calculation.ErrInvalidInput, name)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s must be a number, got %q", calculation.ErrInvalidInput, name, raw)
	}
	return v, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, calculation.ErrUnknownProperty):
		return http.StatusNotFound
	case errors.Is(err, calculation.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func contentType(ext string) string {
	switch ext {
	case "html":
		return "text/html; charset=utf-8"
	case "csv":
		return "text/csv; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error, op string) {
	status := statusFor(err)
	s.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.Error(err),
	)
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
