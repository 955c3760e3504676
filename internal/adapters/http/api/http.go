// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/okian/shopease/internal/adapters/render/chart"
	"github.com/okian/shopease/internal/domain/model"
	"github.com/okian/shopease/internal/domain/review"
	"github.com/okian/shopease/internal/domain/types"
	"github.com/okian/shopease/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StatsProvider

	// Render builds a report with the given sections; none selects the defaults.
	Render(ctx context.Context, sections []model.Section) (types.Report, error)
	// Bands summarizes one dataset with the named band set.
	Bands(ctx context.Context, dataset types.Dataset, set string) (review.Result, error)
}

// Default chart cache settings.
const (
	defaultChartCacheSize = 64
	defaultChartCacheTTL  = 30 * time.Second
)

// Server wires HTTP routes for the dashboard API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	reportHandler *ReportHandler
	bandsHandler  *BandsHandler
	chartsHandler *ChartsHandler
	exportHandler *ExportHandler

	renderer  *chart.Renderer
	cacheSize int
	cacheTTL  time.Duration
	logger    logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithChartRenderer sets the renderer used by the chart routes.
func WithChartRenderer(r *chart.Renderer) Option {
	return func(s *Server) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithChartCache bounds the rendered chart cache. A zero size disables it.
func WithChartCache(size int, ttl time.Duration) Option {
	return func(s *Server) {
		if size >= 0 {
			s.cacheSize = size
		}
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithLogger sets the logger used for server-side failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		cacheSize: defaultChartCacheSize,
		cacheTTL:  defaultChartCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.renderer == nil {
		s.renderer = chart.New()
	}
	if s.logger == nil {
		s.logger = logger.Named("api")
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(deps)
	s.reportHandler = NewReportHandler(deps, s.logger)
	s.bandsHandler = NewBandsHandler(deps, s.logger)
	s.chartsHandler = NewChartsHandler(deps, s.renderer, s.cacheSize, s.cacheTTL, s.logger)
	s.exportHandler = NewExportHandler(deps, s.logger)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	handle := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, RequestIDMiddleware(MetricsMiddleware(h, endpoint)))
	}
	handle("/healthz", "healthz", s.healthHandler.HandleHealth)
	handle("/stats", "stats", s.statsHandler.HandleStats)
	handle("/report", "report", s.reportHandler.HandleReport)
	handle("/bands/{dataset}", "bands", s.bandsHandler.HandleBands)
	handle("/charts/{file}", "charts", s.chartsHandler.HandleChart)
	handle("/export.xlsx", "export", s.exportHandler.HandleExport)
}

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg, RequestID: w.Header().Get(RequestIDHeader)})
}

// writeFailure maps err to a status and logs server-side failures.
func writeFailure(ctx context.Context, w http.ResponseWriter, log logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "cancelled", err)
	default:
		log.Error(ctx, "request failed", logger.String("request_id", RequestIDFrom(ctx)), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// parseSections reads every section query value; values may be comma separated.
func parseSections(r *http.Request) ([]model.Section, error) {
	var names []string
	for _, v := range r.URL.Query()["section"] {
		names = append(names, strings.Split(v, ",")...)
	}
	return model.ParseSections(names)
}
