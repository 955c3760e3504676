// Package chart draws dashboard report figures as PNG images with gonum/plot.
package chart

import (
	"fmt"
	"image/color"
	"io"
	"strings"
	"time"

	"github.com/okian/shopease/internal/domain/model"
	"github.com/okian/shopease/internal/domain/types"
	"github.com/okian/shopease/pkg/metrics"
	"gonum.org/v1/plot/vg"
)

// Name identifies a chart.
type Name string

// Charts served by the dashboard.
const (
	TopCities      Name = "top-cities"
	ProductGoodBad Name = "product-goodbad"
	ProductBands   Name = "product-bands"
	SellerBands    Name = "seller-bands"
	DetailReview   Name = "detail-review"
	DetailSales    Name = "detail-sales"
	CustomerGeo    Name = "customer-geo"
	SellerGeo      Name = "seller-geo"
)

// Names lists every chart in dashboard order.
func Names() []Name {
	return []Name{TopCities, ProductGoodBad, ProductBands, SellerBands, DetailReview, DetailSales, CustomerGeo, SellerGeo}
}

// Parse resolves a chart name, with or without a .png suffix.
func Parse(s string) (Name, error) {
	n := Name(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), ".png"))
	for _, known := range Names() {
		if n == known {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChart, s)
}

// Section returns the report section the chart is drawn from. The top cities
// chart belongs to the always-rendered sales level and reports false.
func (n Name) Section() (model.Section, bool) {
	switch n {
	case ProductGoodBad, ProductBands, SellerBands:
		return model.SectionReviews, true
	case DetailReview, DetailSales:
		return model.SectionProductDetail, true
	case CustomerGeo, SellerGeo:
		return model.SectionGeographics, true
	default:
		return "", false
	}
}

// Palette.
var (
	highlight = color.RGBA{R: 0x72, G: 0xBC, B: 0xD4, A: 0xFF}
	muted     = color.RGBA{R: 0xD3, G: 0xD3, B: 0xD3, A: 0xFF}
	red       = color.RGBA{R: 0xFF, A: 0xFF}
	yellow    = color.RGBA{R: 0xFF, G: 0xFF, A: 0xFF}
	green     = color.RGBA{G: 0x80, A: 0xFF}
	teal      = color.RGBA{R: 0x66, G: 0xC2, B: 0xA5, A: 0xFF}
	crimson   = color.RGBA{R: 0xE4, G: 0x1A, B: 0x1C, A: 0xFF}
	translRed = color.NRGBA{R: 0xCC, A: 0x80}
)

// Renderer draws charts at a fixed size.
type Renderer struct {
	width  vg.Length
	height vg.Length
}

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithSize sets the image size in inches.
func WithSize(widthIn, heightIn float64) Option {
	return func(r *Renderer) {
		if widthIn > 0 && heightIn > 0 {
			r.width = vg.Length(widthIn) * vg.Inch
			r.height = vg.Length(heightIn) * vg.Inch
		}
	}
}

// New creates a Renderer producing 8x5 inch images unless WithSize is given.
func New(opts ...Option) *Renderer {
	r := &Renderer{width: 8 * vg.Inch, height: 5 * vg.Inch}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Draw writes chart name of report as PNG to w. The chart's section must be
// present in the report.
func (r *Renderer) Draw(w io.Writer, name Name, report types.Report) error {
	start := time.Now()
	if sec, ok := name.Section(); ok && !report.Has(sec) {
		return fmt.Errorf("%w: %s needs %s", ErrSectionMissing, name, sec)
	}

	var err error
	switch name {
	case TopCities:
		err = r.topCities(w, report.Sales.TopCities)
	case ProductGoodBad:
		err = r.bands(w, "Product Review", report.Reviews.ProductGoodBad)
	case ProductBands:
		err = r.bands(w, "Product Review", report.Reviews.ProductBands)
	case SellerBands:
		err = r.bands(w, "Store Review", report.Reviews.SellerBands)
	case DetailReview:
		err = r.detailReview(w, report.ProductDetail)
	case DetailSales:
		err = r.detailSales(w, report.ProductDetail)
	case CustomerGeo:
		err = r.geo(w, fmt.Sprintf("Geolocation of Top %d Cities by Orders", len(report.Geographics.Cities)),
			customerXYs(report.Geographics.Customers), vg.Points(2))
	case SellerGeo:
		err = r.geo(w, fmt.Sprintf("Geolocation of Top %d Sellers", len(report.Geographics.Sellers)),
			sellerXYs(report.Geographics.Sellers), vg.Points(5))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDraw, name, err)
	}
	metrics.RecordChartLatency(string(name), float64(time.Since(start).Milliseconds()))
	return nil
}
