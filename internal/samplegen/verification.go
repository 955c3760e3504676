package samplegen

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/shopease/internal/domain/review"
	"github.com/okian/shopease/pkg/logger"
)

// verifyBands fetches the five-band product summary and compares it with want.
func verifyBands(ctx context.Context, client *HTTPClient, baseURL string, want review.Result, verbose bool) error {
	var got review.Result
	if err := client.getJSON(ctx, strings.TrimRight(baseURL, "/")+"/bands/products?set="+review.SetFive, &got); err != nil {
		return err
	}
	if err := compareResults(want, got); err != nil {
		return err
	}
	if verbose {
		for _, s := range got.Summaries {
			avg, _ := s.Average.Get()
			logger.Get().Info(ctx, "band verified",
				logger.String("band", s.Band.Label),
				logger.Int64("totalOrders", s.TotalOrders),
				logger.Int("entities", s.EntityCount),
				logger.Float64("average", avg))
		}
	}
	logger.Get().Info(ctx, "band summary verified",
		logger.Int64("totalOrders", got.TotalOrders()),
		logger.Int("outOfDomain", got.OutOfDomain))
	return nil
}

// compareResults checks band by band, then that the band totals add up to
// the in-domain order count.
func compareResults(want, got review.Result) error {
	if len(got.Summaries) != len(want.Summaries) {
		return fmt.Errorf("%w: %d bands, want %d", ErrMismatch, len(got.Summaries), len(want.Summaries))
	}
	for i, w := range want.Summaries {
		g := got.Summaries[i]
		if g.Band.Label != w.Band.Label {
			return fmt.Errorf("%w: band %d is %q, want %q", ErrMismatch, i, g.Band.Label, w.Band.Label)
		}
		if g.TotalOrders != w.TotalOrders || g.EntityCount != w.EntityCount {
			return fmt.Errorf("%w: %s: %d orders from %d entities, want %d from %d",
				ErrMismatch, w.Band.Label, g.TotalOrders, g.EntityCount, w.TotalOrders, w.EntityCount)
		}
	}
	if got.OutOfDomain != want.OutOfDomain {
		return fmt.Errorf("%w: %d out of domain, want %d", ErrMismatch, got.OutOfDomain, want.OutOfDomain)
	}
	if got.TotalOrders() != want.TotalOrders() {
		return fmt.Errorf("%w: %d, want %d", ErrNotConserve, got.TotalOrders(), want.TotalOrders())
	}
	return nil
}
