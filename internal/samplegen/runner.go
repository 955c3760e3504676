package samplegen

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/okian/shopease/pkg/logger"
)

// Run generates a dataset, writes it to cfg.OutDir and, when cfg.BaseURL is
// set, verifies a running dashboard against it.
func Run(ctx context.Context, cfg *Config) (Dataset, error) {
	start := time.Now()
	log := logger.Get()

	log.Info(ctx, "generating sample extracts",
		logger.String("outDir", cfg.OutDir),
		logger.Int("products", cfg.Products),
		logger.Int("sellers", cfg.Sellers),
		logger.Int("cities", cfg.Cities),
		logger.Int64("seed", int64(cfg.Seed)))

	ds := Generate(*cfg)
	if err := Write(cfg.OutDir, ds); err != nil {
		return ds, err
	}
	want := Expected(ds)
	log.Info(ctx, "extracts written",
		logger.Int("productRows", len(ds.Products)),
		logger.Int("sellerRows", len(ds.Sellers)),
		logger.Int64("inDomainOrders", want.TotalOrders()),
		logger.Int("outOfDomain", want.OutOfDomain))

	if cfg.BaseURL != "" {
		client := newHTTPClient(cfg.Timeout)
		if err := checkServiceHealth(ctx, client, cfg.BaseURL); err != nil {
			return ds, err
		}
		if err := verifyBands(ctx, client, cfg.BaseURL, want, cfg.Verbose); err != nil {
			return ds, fmt.Errorf("verification failed: %w", err)
		}
	}

	log.Info(ctx, "sample run completed", logger.Duration("duration", time.Since(start)))
	return ds, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, baseURL string) error {
	resp, err := client.Get(ctx, strings.TrimRight(baseURL, "/")+"/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	defer closeBody(ctx, resp)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}
