package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/okian/shopease/internal/domain/review"
	"github.com/okian/shopease/internal/domain/types"
	"github.com/okian/shopease/pkg/logger"
)

// BandSummarizer summarizes a dataset by review band.
type BandSummarizer interface {
	Bands(ctx context.Context, dataset types.Dataset, set string) (review.Result, error)
}

// BandsHandler serves per-band summaries for one dataset.
type BandsHandler struct {
	summarizer BandSummarizer
	logger     logger.Logger
}

// NewBandsHandler creates a new bands handler.
func NewBandsHandler(summarizer BandSummarizer, log logger.Logger) *BandsHandler {
	return &BandsHandler{summarizer: summarizer, logger: log}
}

// HandleBands handles GET /bands/{dataset}?set=five|goodbad requests.
func (h *BandsHandler) HandleBands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	const op = "api.bands"

	dataset := types.Dataset(r.PathValue("dataset"))
	if dataset != types.DatasetProducts && dataset != types.DatasetSellers {
		writeFailure(r.Context(), w, h.logger, WrapKind(op, ErrNotFound, fmt.Errorf("unknown dataset %q", dataset)))
		return
	}

	set := r.URL.Query().Get("set")
	if set == "" {
		set = review.SetFive
	}
	if _, ok := review.SetByName(set); !ok {
		writeFailure(r.Context(), w, h.logger, WrapKind(op, ErrBadRequest, fmt.Errorf("unknown band set %q", set)))
		return
	}

	res, err := h.summarizer.Bands(r.Context(), dataset, set)
	if err != nil {
		writeFailure(r.Context(), w, h.logger, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}
