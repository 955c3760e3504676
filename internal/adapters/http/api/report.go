package api

import (
	"context"
	"net/http"

	"github.com/okian/shopease/internal/domain/model"
	"github.com/okian/shopease/internal/domain/types"
	"github.com/okian/shopease/pkg/logger"
)

// ReportRenderer renders dashboard reports.
type ReportRenderer interface {
	Render(ctx context.Context, sections []model.Section) (types.Report, error)
}

// ReportHandler serves the rendered report as JSON.
type ReportHandler struct {
	renderer ReportRenderer
	logger   logger.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(renderer ReportRenderer, log logger.Logger) *ReportHandler {
	return &ReportHandler{renderer: renderer, logger: log}
}

// HandleReport handles GET /report?section=... requests. Without a section
// parameter the configured defaults are rendered.
func (h *ReportHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	const op = "api.report"

	sections, err := parseSections(r)
	if err != nil {
		writeFailure(r.Context(), w, h.logger, WrapKind(op, ErrBadRequest, err))
		return
	}
	report, err := h.renderer.Render(r.Context(), sections)
	if err != nil {
		writeFailure(r.Context(), w, h.logger, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}
