package extract

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/okian/shopease/internal/domain/model"
	"github.com/okian/shopease/pkg/logger"
	"github.com/okian/shopease/pkg/metrics"
	"github.com/puzpuzpuz/xsync"
)

// Header row counts of the two extract layouts.
const (
	namedHeaderRows      = 1
	positionalHeaderRows = 2
)

// Counts is the outcome of the latest load of one extract.
type Counts struct {
	Loaded   int `json:"loaded"`
	Rejected int `json:"rejected"`
}

// FileSource reads extracts from CSV files in a directory.
type FileSource struct {
	dir    string
	logger logger.Logger

	last *xsync.MapOf[string, Counts]
}

var (
	_ Source       = (*FileSource)(nil)
	_ LoadReporter = (*FileSource)(nil)
)

// LoadReporter reports the outcome of the latest load of every extract read
// so far.
type LoadReporter interface {
	Loads() map[string]Counts
}

// Option applies a configuration option to the FileSource.
type Option func(*FileSource)

// WithLogger sets the logger used for rejected rows.
func WithLogger(l logger.Logger) Option {
	return func(s *FileSource) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewFileSource reads extracts from dir. The global logger is used unless
// WithLogger is given.
func NewFileSource(dir string, opts ...Option) *FileSource {
	s := &FileSource{dir: dir, last: xsync.NewMapOf[Counts]()}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("extract")
	}
	return s
}

// Dir returns the extract directory.
func (s *FileSource) Dir() string { return s.dir }

// LastLoad returns the counts of the latest load of extract.
func (s *FileSource) LastLoad(extract string) (Counts, bool) {
	return s.last.Load(extract)
}

// Loads returns the counts of every extract loaded so far.
func (s *FileSource) Loads() map[string]Counts {
	out := make(map[string]Counts, s.last.Size())
	s.last.Range(func(extract string, c Counts) bool {
		out[extract] = c
		return true
	})
	return out
}

// load reads extract and converts each row with the parser bind returns. Rows
// the parser rejects are logged and counted; they never fail the load.
func load[T any](ctx context.Context, s *FileSource, extract string, headerRows int,
	bind func(t *table) (func(row []string) (T, error), error),
) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	t, err := readTable(filepath.Join(s.dir, extract+".csv"), headerRows)
	if err != nil {
		return nil, err
	}
	parse, err := bind(t)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(t.rows))
	rejected := 0
	for i, row := range t.rows {
		v, perr := parse(row)
		if perr != nil {
			rejected++
			s.logger.Warn(ctx, "row rejected",
				logger.String("extract", extract),
				logger.Int("line", t.firstLine+i),
				logger.Error(perr))
			continue
		}
		out = append(out, v)
	}

	s.last.Store(extract, Counts{Loaded: len(out), Rejected: rejected})
	metrics.RecordExtractLoad(extract, len(out), rejected, float64(time.Since(start).Milliseconds()))
	if rejected > 0 {
		s.logger.Info(ctx, "extract loaded with rejected rows",
			logger.String("extract", extract),
			logger.Int("loaded", len(out)),
			logger.Int("rejected", rejected))
	}
	return out, nil
}

func (s *FileSource) CityOrders(ctx context.Context) ([]model.CityOrders, error) {
	return load(ctx, s, OrderPerCity, namedHeaderRows, func(t *table) (func([]string) (model.CityOrders, error), error) {
		city, err := t.column(OrderPerCity, "customer_city")
		if err != nil {
			return nil, err
		}
		orders, err := t.column(OrderPerCity, "order_id")
		if err != nil {
			return nil, err
		}
		return func(row []string) (model.CityOrders, error) {
			c, err := field(row, city, "customer_city")
			if err != nil {
				return model.CityOrders{}, err
			}
			n, err := countField(row, orders, "order_id")
			if err != nil {
				return model.CityOrders{}, err
			}
			return model.CityOrders{City: c, Orders: n}, nil
		}, nil
	})
}

func (s *FileSource) ProductScores(ctx context.Context) ([]model.Entity, error) {
	return load(ctx, s, ScorePerProduct, positionalHeaderRows, scoreRow)
}

func (s *FileSource) SellerScores(ctx context.Context) ([]model.Entity, error) {
	return load(ctx, s, ScorePerStore, positionalHeaderRows, scoreRow)
}

// scoreRow parses id, order count, min, max, mean by position.
func scoreRow(_ *table) (func([]string) (model.Entity, error), error) {
	return func(row []string) (model.Entity, error) {
		id, err := field(row, 0, "id")
		if err != nil {
			return model.Entity{}, err
		}
		n, err := countField(row, 1, "order_count")
		if err != nil {
			return model.Entity{}, err
		}
		if _, err := floatField(row, 2, "review_score_min"); err != nil {
			return model.Entity{}, err
		}
		if _, err := floatField(row, 3, "review_score_max"); err != nil {
			return model.Entity{}, err
		}
		mean, err := floatField(row, 4, "review_score_mean")
		if err != nil {
			return model.Entity{}, err
		}
		return model.Entity{ID: id, Orders: n, ScoreMean: mean}, nil
	}, nil
}

func (s *FileSource) ProductReviews(ctx context.Context, detailed bool) ([]model.ReviewStats, error) {
	name := NonDetailedProductReview
	if detailed {
		name = DetailedProductReview
	}
	return load(ctx, s, name, positionalHeaderRows, func(_ *table) (func([]string) (model.ReviewStats, error), error) {
		return func(row []string) (model.ReviewStats, error) {
			var r model.ReviewStats
			var err error
			if r.ProductID, err = field(row, 0, "product_id"); err != nil {
				return r, err
			}
			if r.Min, err = floatField(row, 1, "review_score_min"); err != nil {
				return r, err
			}
			if r.Max, err = floatField(row, 2, "review_score_max"); err != nil {
				return r, err
			}
			r.Mean, err = floatField(row, 3, "review_score_mean")
			return r, err
		}, nil
	})
}

func (s *FileSource) ProductSales(ctx context.Context, detailed bool) ([]model.ProductSales, error) {
	name := NonDetailedProductSales
	if detailed {
		name = DetailedProductSales
	}
	return load(ctx, s, name, namedHeaderRows, func(t *table) (func([]string) (model.ProductSales, error), error) {
		orders, err := t.column(name, "order_id")
		if err != nil {
			return nil, err
		}
		product := t.optional("product_id")
		return func(row []string) (model.ProductSales, error) {
			n, err := countField(row, orders, "order_id")
			if err != nil {
				return model.ProductSales{}, err
			}
			ps := model.ProductSales{Orders: n}
			if product >= 0 && product < len(row) {
				ps.ProductID = strings.TrimSpace(row[product])
			}
			return ps, nil
		}, nil
	})
}

func (s *FileSource) Geolocations(ctx context.Context) ([]model.GeoPoint, error) {
	return load(ctx, s, Geolocation, namedHeaderRows, func(t *table) (func([]string) (model.GeoPoint, error), error) {
		city, err := t.column(Geolocation, "geolocation_city")
		if err != nil {
			return nil, err
		}
		lat, lng, err := latLng(t, Geolocation)
		if err != nil {
			return nil, err
		}
		return func(row []string) (model.GeoPoint, error) {
			var p model.GeoPoint
			var err error
			if p.City, err = field(row, city, "geolocation_city"); err != nil {
				return p, err
			}
			if p.Lat, err = floatField(row, lat, "geolocation_lat"); err != nil {
				return p, err
			}
			p.Lng, err = floatField(row, lng, "geolocation_lng")
			return p, err
		}, nil
	})
}

func (s *FileSource) SellerLocations(ctx context.Context) ([]model.SellerLocation, error) {
	return load(ctx, s, SellersGeoCount, namedHeaderRows, func(t *table) (func([]string) (model.SellerLocation, error), error) {
		lat, lng, err := latLng(t, SellersGeoCount)
		if err != nil {
			return nil, err
		}
		seller := t.optional("seller_id", "seller_city")
		count := t.optional("count", "seller_count")
		return func(row []string) (model.SellerLocation, error) {
			var l model.SellerLocation
			var err error
			if l.Lat, err = floatField(row, lat, "geolocation_lat"); err != nil {
				return l, err
			}
			if l.Lng, err = floatField(row, lng, "geolocation_lng"); err != nil {
				return l, err
			}
			if seller >= 0 && seller < len(row) {
				l.Seller = strings.TrimSpace(row[seller])
			}
			if count >= 0 {
				if l.Count, err = countField(row, count, "count"); err != nil {
					return l, err
				}
			}
			return l, nil
		}, nil
	})
}

func latLng(t *table, extract string) (int, int, error) {
	lat, err := t.column(extract, "geolocation_lat")
	if err != nil {
		return 0, 0, err
	}
	lng, err := t.column(extract, "geolocation_lng")
	if err != nil {
		return 0, 0, err
	}
	return lat, lng, nil
}
