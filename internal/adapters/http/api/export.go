package api

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/okian/shopease/internal/adapters/render/workbook"
	"github.com/okian/shopease/internal/domain/model"
	"github.com/okian/shopease/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves the report as an .xlsx workbook.
type ExportHandler struct {
	renderer ReportRenderer
	logger   logger.Logger
}

// NewExportHandler creates a new export handler.
func NewExportHandler(renderer ReportRenderer, log logger.Logger) *ExportHandler {
	return &ExportHandler{renderer: renderer, logger: log}
}

// HandleExport handles GET /export.xlsx requests. All sections are exported
// unless the request narrows them.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	const op = "api.export"

	sections, err := parseSections(r)
	if err != nil {
		writeFailure(r.Context(), w, h.logger, WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(sections) == 0 {
		sections = model.AllSections()
	}
	report, err := h.renderer.Render(r.Context(), sections)
	if err != nil {
		writeFailure(r.Context(), w, h.logger, Wrap(op, err))
		return
	}

	var buf bytes.Buffer
	if err := workbook.Write(&buf, report); err != nil {
		writeFailure(r.Context(), w, h.logger, Wrap(op, err))
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="shopease-dashboard.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
