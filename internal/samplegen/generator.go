package samplegen

import (
	"encoding/binary"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/okian/shopease/internal/domain/model"
	"github.com/okian/shopease/internal/domain/review"
)

// anchorMeans puts at least one entity in every five-star band, boundary
// values included.
var anchorMeans = []float64{1.0, 1.5, 2.5, 3.0, 3.5, 4.5, 5.0}

// generator draws every value from one seeded ChaCha8 stream so a seed fully
// determines the output, ids included.
type generator struct {
	src *rand.ChaCha8
	rng *rand.Rand
}

func newGenerator(seed uint64) *generator {
	if seed == 0 {
		seed = rand.Uint64()
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	src := rand.NewChaCha8(key)
	return &generator{src: src, rng: rand.New(src)}
}

func (g *generator) id() string {
	id, err := uuid.NewRandomFromReader(g.src)
	if err != nil {
		// ChaCha8 reads never fail.
		panic(err)
	}
	return id.String()
}

func (g *generator) orders() int64 {
	return 1 + g.rng.Int64N(maxOrders)
}

// score returns a uniform score in [1, 5] rounded to two decimals.
func (g *generator) score() float64 {
	return round2(minScore + g.rng.Float64()*(maxScore-minScore))
}

func (g *generator) scoreRow(mean float64) ScoreRow {
	spread := g.rng.Float64()
	return ScoreRow{
		ID:     g.id(),
		Orders: g.orders(),
		Min:    round2(math.Max(minScore, mean-spread)),
		Max:    round2(math.Min(maxScore, mean+spread)),
		Mean:   mean,
	}
}

// scoreRows builds n well-formed rows followed by one out-of-domain row and
// one malformed row.
func (g *generator) scoreRows(n int) []ScoreRow {
	rows := make([]ScoreRow, 0, n+2)
	for i := 0; i < n; i++ {
		mean := g.score()
		if i < len(anchorMeans) {
			mean = anchorMeans[i]
		}
		rows = append(rows, g.scoreRow(mean))
	}

	odd := g.scoreRow(outOfDomainMean)
	odd.Min, odd.Max = outOfDomainMean, outOfDomainMean
	rows = append(rows, odd)
	rows = append(rows, ScoreRow{Raw: []string{g.id(), "many", "1", "5", "3"}})
	return rows
}

// Generate builds a dataset from cfg. The same non-zero seed yields the same
// dataset.
func Generate(cfg Config) Dataset {
	g := newGenerator(cfg.Seed)
	products := max(cfg.Products, len(anchorMeans))
	sellers := max(cfg.Sellers, len(anchorMeans))
	cities := min(max(cfg.Cities, 1), len(seedCities))

	ds := Dataset{
		Products: g.scoreRows(products),
		Sellers:  g.scoreRows(sellers),
	}

	for i, p := range ds.Products {
		if p.Raw != nil || !review.InDomain(p.Mean) {
			continue
		}
		sales := SalesRow{ProductID: p.ID, Orders: p.Orders}
		if i%2 == 0 {
			ds.DetailedReviews = append(ds.DetailedReviews, p)
			ds.DetailedSales = append(ds.DetailedSales, sales)
		} else {
			ds.NonDetailedReviews = append(ds.NonDetailedReviews, p)
			ds.NonDetailedSales = append(ds.NonDetailedSales, sales)
		}
	}

	for _, c := range seedCities[:cities] {
		ds.Cities = append(ds.Cities, CityRow{City: c.name, Orders: 100 + g.rng.Int64N(15000)})
		for j := 0; j < geoPerCity; j++ {
			ds.Geo = append(ds.Geo, GeoRow{City: c.name, Lat: g.jitter(c.lat), Lng: g.jitter(c.lng)})
		}
	}

	for _, s := range ds.Sellers {
		if s.Raw != nil {
			continue
		}
		c := seedCities[g.rng.IntN(cities)]
		ds.SellerGeo = append(ds.SellerGeo, SellerGeoRow{
			SellerID: s.ID,
			Lat:      g.jitter(c.lat),
			Lng:      g.jitter(c.lng),
			Count:    s.Orders,
		})
	}
	return ds
}

func (g *generator) jitter(v float64) float64 {
	return v + (g.rng.Float64()*2-1)*geoJitter
}

// Entities returns the rows an extract reader accepts, out-of-domain ones
// included.
func Entities(rows []ScoreRow) []model.Entity {
	out := make([]model.Entity, 0, len(rows))
	for _, r := range rows {
		if r.Raw != nil {
			continue
		}
		out = append(out, model.Entity{ID: r.ID, Orders: r.Orders, ScoreMean: r.Mean})
	}
	return out
}

// Expected is the five-band product summary a server reading ds must return.
func Expected(ds Dataset) review.Result {
	return review.Summarize(Entities(ds.Products), review.FiveBand())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
