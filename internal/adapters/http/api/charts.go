package api

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/okian/shopease/internal/adapters/render/chart"
	"github.com/okian/shopease/internal/domain/model"
	"github.com/okian/shopease/pkg/logger"
)

// ChartsHandler serves individual report charts as PNG images.
type ChartsHandler struct {
	renderer ReportRenderer
	charts   *chart.Renderer
	cache    *expirable.LRU[chart.Name, []byte]
	logger   logger.Logger
}

// NewChartsHandler creates a chart handler. Rendered images are cached per
// chart for ttl; a size of zero disables the cache.
func NewChartsHandler(renderer ReportRenderer, charts *chart.Renderer, size int, ttl time.Duration, log logger.Logger) *ChartsHandler {
	h := &ChartsHandler{renderer: renderer, charts: charts, logger: log}
	if size > 0 {
		h.cache = expirable.NewLRU[chart.Name, []byte](size, nil, ttl)
	}
	return h
}

// HandleChart handles GET /charts/{name}.png requests.
func (h *ChartsHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	const op = "api.chart"

	name, err := chart.Parse(r.PathValue("file"))
	if err != nil {
		writeFailure(r.Context(), w, h.logger, WrapKind(op, ErrNotFound, err))
		return
	}

	if h.cache != nil {
		if img, ok := h.cache.Get(name); ok {
			writePNG(w, img, "hit")
			return
		}
	}

	// Only the chart's own section is rendered; the sales level always is.
	var sections []model.Section
	if sec, ok := name.Section(); ok {
		sections = []model.Section{sec}
	}
	report, err := h.renderer.Render(r.Context(), sections)
	if err != nil {
		writeFailure(r.Context(), w, h.logger, Wrap(op, err))
		return
	}

	var buf bytes.Buffer
	if err := h.charts.Draw(&buf, name, report); err != nil {
		writeFailure(r.Context(), w, h.logger, Wrap(op, err))
		return
	}
	img := buf.Bytes()
	if h.cache != nil {
		h.cache.Add(name, img)
	}
	writePNG(w, img, "miss")
}

func writePNG(w http.ResponseWriter, img []byte, cache string) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.Header().Set("X-Chart-Cache", cache)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}
