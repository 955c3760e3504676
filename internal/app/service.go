// Package service provides the dashboard service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/alitto/pond"
	"github.com/okian/shopease/internal/adapters/extract"
	"github.com/okian/shopease/internal/domain/describe"
	"github.com/okian/shopease/internal/domain/model"
	"github.com/okian/shopease/internal/domain/review"
	"github.com/okian/shopease/internal/domain/types"
	"github.com/okian/shopease/pkg/logger"
	"github.com/okian/shopease/pkg/metrics"
)

const renderQueueFactor = 4

// Service renders dashboard reports from an extract source.
type Service struct {
	mu sync.RWMutex

	source  extract.Source
	dataDir string

	// Configuration
	topCities       int
	topGeoCities    int
	topSellers      int
	defaultSections []model.Section
	renderWorkers   int

	// Section renders run on a shared pool.
	pool *pond.WorkerPool

	// State
	startedAt    time.Time
	renders      int64
	failures     int64
	lastRender   time.Duration
	lastRenderAt time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets the extract source. It takes precedence over WithDataDir.
func WithSource(src extract.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithDataDir reads extracts from CSV files in dir.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithTopCities sets the number of cities in the sales level chart.
func WithTopCities(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topCities = n
		}
	}
}

// WithTopGeoCities sets how many top cities the customer scatter covers.
func WithTopGeoCities(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topGeoCities = n
		}
	}
}

// WithTopSellers sets how many seller locations are plotted.
func WithTopSellers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topSellers = n
		}
	}
}

// WithDefaultSections sets the sections rendered when a request selects none.
func WithDefaultSections(sections []model.Section) Option {
	return func(s *Service) {
		s.defaultSections = append([]model.Section(nil), sections...)
	}
}

// WithRenderWorkers bounds how many sections render concurrently.
func WithRenderWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.renderWorkers = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataDir:       "dashboard",
		topCities:     5,
		topGeoCities:  20,
		topSellers:    20,
		renderWorkers: len(model.AllSections()),
		startedAt:     time.Now(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	if s.source == nil {
		s.source = extract.NewFileSource(s.dataDir, extract.WithLogger(s.logger.Named("extract")))
	}
	s.pool = pond.New(s.renderWorkers, renderQueueFactor*s.renderWorkers)
	return s
}

// Close waits for in-flight section renders and stops the worker pool.
func (s *Service) Close() {
	s.pool.StopAndWait()
}

// DefaultSections returns the sections rendered when none are requested.
func (s *Service) DefaultSections() []model.Section {
	return append([]model.Section(nil), s.defaultSections...)
}

// Render builds a report with the sales level block and the given sections.
// An empty selection falls back to the configured defaults. Each extract is
// read at most once per render.
func (s *Service) Render(ctx context.Context, sections []model.Section) (types.Report, error) {
	start := time.Now()
	if len(sections) == 0 {
		sections = s.defaultSections
	}
	sections = normalize(sections)

	r, err := s.render(ctx, sections)
	took := time.Since(start)
	s.recordRender(took, err)

	if err != nil {
		metrics.RecordRenderFailure()
		metrics.RecordErrorLatency("service", "render", float64(took.Milliseconds()))
		s.logger.Error(ctx, "render failed", logger.Any("sections", sections), logger.Error(err))
		return types.Report{}, err
	}

	metrics.RecordRenderLatency(float64(took.Milliseconds()))
	for _, sec := range sections {
		metrics.RecordRender(string(sec))
	}
	s.logger.Info(ctx, "report rendered",
		logger.Any("sections", sections),
		logger.Duration("took", took))
	return r, nil
}

func (s *Service) render(ctx context.Context, sections []model.Section) (types.Report, error) {
	r := types.Report{Sections: sections, GeneratedAt: time.Now().UTC()}

	cities, err := s.source.CityOrders(ctx)
	if err != nil {
		return r, fmt.Errorf("%w: %w", ErrLoadExtract, err)
	}
	ranked := rankCities(cities)
	r.Sales.TopCities = head(ranked, s.topCities)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The first failing section cancels the rest. Wait returns only after
	// every task has finished, so r is filled after all writers are done.
	var (
		once     sync.Once
		firstErr error
		reviews  *types.ReviewsImpact
		detail   *types.ProductDetailImpact
		geo      *types.Geographics
	)
	fail := func(sec model.Section, err error) {
		once.Do(func() {
			firstErr = sectionError(sec, err)
			cancel()
		})
	}
	group := s.pool.Group()
	for _, sec := range sections {
		switch sec {
		case model.SectionReviews:
			group.Submit(func() {
				v, err := s.reviewsImpact(ctx)
				if err != nil {
					fail(sec, err)
					return
				}
				reviews = v
			})
		case model.SectionProductDetail:
			group.Submit(func() {
				v, err := s.productDetailImpact(ctx)
				if err != nil {
					fail(sec, err)
					return
				}
				detail = v
			})
		case model.SectionGeographics:
			group.Submit(func() {
				v, err := s.geographics(ctx, ranked)
				if err != nil {
					fail(sec, err)
					return
				}
				geo = v
			})
		}
	}
	group.Wait()
	if firstErr != nil {
		return r, firstErr
	}
	r.Reviews, r.ProductDetail, r.Geographics = reviews, detail, geo
	return r, nil
}

func sectionError(sec model.Section, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrLoadExtract, sec, err)
}

func (s *Service) reviewsImpact(ctx context.Context) (*types.ReviewsImpact, error) {
	products, err := s.source.ProductScores(ctx)
	if err != nil {
		return nil, err
	}
	sellers, err := s.source.SellerScores(ctx)
	if err != nil {
		return nil, err
	}
	return &types.ReviewsImpact{
		ProductGoodBad: s.summarize(ctx, types.DatasetProducts, products, review.GoodBad()),
		ProductBands:   s.summarize(ctx, types.DatasetProducts, products, review.FiveBand()),
		SellerBands:    s.summarize(ctx, types.DatasetSellers, sellers, review.FiveBand()),
	}, nil
}

func (s *Service) productDetailImpact(ctx context.Context) (*types.ProductDetailImpact, error) {
	detailed, err := s.source.ProductReviews(ctx, true)
	if err != nil {
		return nil, err
	}
	plain, err := s.source.ProductReviews(ctx, false)
	if err != nil {
		return nil, err
	}
	detailedSales, err := s.source.ProductSales(ctx, true)
	if err != nil {
		return nil, err
	}
	plainSales, err := s.source.ProductSales(ctx, false)
	if err != nil {
		return nil, err
	}

	d := &types.ProductDetailImpact{
		DetailedReview:    describe.Box(reviewMeans(detailed)),
		NonDetailedReview: describe.Box(reviewMeans(plain)),
		DetailedSales:     describe.Mean(salesCounts(detailedSales)),
		NonDetailedSales:  describe.Mean(salesCounts(plainSales)),
	}
	d.ReviewUplift = describe.Uplift(boxMean(d.DetailedReview), boxMean(d.NonDetailedReview))
	d.SalesUplift = describe.Uplift(d.DetailedSales, d.NonDetailedSales)
	return d, nil
}

func (s *Service) geographics(ctx context.Context, ranked []model.CityOrders) (*types.Geographics, error) {
	points, err := s.source.Geolocations(ctx)
	if err != nil {
		return nil, err
	}
	sellers, err := s.source.SellerLocations(ctx)
	if err != nil {
		return nil, err
	}

	top := head(ranked, s.topGeoCities)
	g := &types.Geographics{Cities: make([]string, 0, len(top))}
	keep := make(map[string]struct{}, len(top))
	for _, c := range top {
		keep[c.City] = struct{}{}
		g.Cities = append(g.Cities, c.City)
	}
	for _, p := range points {
		if _, ok := keep[p.City]; ok {
			g.Customers = append(g.Customers, p)
		}
	}
	g.Sellers = head(sellers, s.topSellers)
	return g, nil
}

// Bands summarizes one dataset with the named band set.
func (s *Service) Bands(ctx context.Context, dataset types.Dataset, setName string) (review.Result, error) {
	set, ok := review.SetByName(setName)
	if !ok {
		return review.Result{}, fmt.Errorf("%w: %q", ErrUnknownBandSet, setName)
	}

	var (
		entities []model.Entity
		err      error
	)
	switch dataset {
	case types.DatasetProducts:
		entities, err = s.source.ProductScores(ctx)
	case types.DatasetSellers:
		entities, err = s.source.SellerScores(ctx)
	default:
		return review.Result{}, fmt.Errorf("%w: %q", ErrUnknownDataset, dataset)
	}
	if err != nil {
		return review.Result{}, fmt.Errorf("%w: %w", ErrLoadExtract, err)
	}
	return s.summarize(ctx, dataset, entities, set), nil
}

// summarize runs the aggregator and reports its anomalies.
func (s *Service) summarize(ctx context.Context, dataset types.Dataset, entities []model.Entity, set review.BandSet) review.Result {
	res := review.Summarize(entities, set)
	metrics.RecordOutOfDomain(string(dataset), res.OutOfDomain)
	metrics.RecordNegativeCounts(string(dataset), res.NegativeCounts)
	for _, label := range res.EmptyBands() {
		metrics.RecordEmptyBand(string(dataset), label)
	}
	if res.OutOfDomain > 0 || res.NegativeCounts > 0 {
		s.logger.Warn(ctx, "entities outside the expected domain",
			logger.String("dataset", string(dataset)),
			logger.String("set", set.Name),
			logger.Int("out_of_domain", res.OutOfDomain),
			logger.Int("negative_counts", res.NegativeCounts))
	}
	return res
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() types.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := types.Stats{
		Renders:         s.renders,
		Failures:        s.failures,
		LastRenderMs:    float64(s.lastRender.Microseconds()) / 1000,
		DefaultSections: s.DefaultSections(),
		Uptime:          time.Since(s.startedAt).Round(time.Second).String(),
	}
	if fs, ok := s.source.(*extract.FileSource); ok {
		st.DataDir = fs.Dir()
	}
	if lr, ok := s.source.(extract.LoadReporter); ok {
		loads := lr.Loads()
		st.Extracts = make(map[string]types.ExtractLoad, len(loads))
		for name, c := range loads {
			st.Extracts[name] = types.ExtractLoad{Loaded: c.Loaded, Rejected: c.Rejected}
		}
	}
	if !s.lastRenderAt.IsZero() {
		at := s.lastRenderAt
		st.LastRenderAt = &at
	}
	return st
}

func (s *Service) recordRender(took time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renders++
	if err != nil {
		s.failures++
	}
	s.lastRender = took
	s.lastRenderAt = time.Now().UTC()
}

// rankCities orders cities by orders, descending. Ties keep file order.
func rankCities(cities []model.CityOrders) []model.CityOrders {
	out := append([]model.CityOrders(nil), cities...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Orders > out[j].Orders })
	return out
}

func head[T any](xs []T, n int) []T {
	if n < len(xs) {
		xs = xs[:n]
	}
	return append([]T(nil), xs...)
}

// normalize drops duplicates and restores display order.
func normalize(sections []model.Section) []model.Section {
	want := make(map[model.Section]bool, len(sections))
	for _, s := range sections {
		want[s] = true
	}
	out := make([]model.Section, 0, len(want))
	for _, s := range model.AllSections() {
		if want[s] {
			out = append(out, s)
		}
	}
	return out
}

func reviewMeans(rows []model.ReviewStats) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Mean
	}
	return out
}

func salesCounts(rows []model.ProductSales) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = float64(r.Orders)
	}
	return out
}

func boxMean(b describe.BoxStats) review.Average {
	if b.Count == 0 {
		return review.Undefined
	}
	return review.Average{Value: b.Mean, Defined: true}
}
