// Package types contains the report shapes shared by the service and the HTTP layer.
package types

import (
	"time"

	"github.com/okian/shopease/internal/domain/describe"
	"github.com/okian/shopease/internal/domain/model"
	"github.com/okian/shopease/internal/domain/review"
)

// Dataset names an entity extract that can be banded.
type Dataset string

// Banded datasets.
const (
	DatasetProducts Dataset = "products"
	DatasetSellers  Dataset = "sellers"
)

// Report is one render of the dashboard. Optional sections are nil when not
// selected.
type Report struct {
	Sections    []model.Section `json:"sections"`
	GeneratedAt time.Time       `json:"generated_at"`

	Sales         SalesLevel           `json:"sales"`
	Reviews       *ReviewsImpact       `json:"reviews,omitempty"`
	ProductDetail *ProductDetailImpact `json:"product_detail,omitempty"`
	Geographics   *Geographics         `json:"geographics,omitempty"`
}

// Has reports whether s was rendered.
func (r Report) Has(s model.Section) bool {
	switch s {
	case model.SectionReviews:
		return r.Reviews != nil
	case model.SectionProductDetail:
		return r.ProductDetail != nil
	case model.SectionGeographics:
		return r.Geographics != nil
	}
	return false
}

// SalesLevel is the always-rendered top of the dashboard.
type SalesLevel struct {
	TopCities []model.CityOrders `json:"top_cities"`
}

// ReviewsImpact compares order volume across review score bands.
type ReviewsImpact struct {
	ProductGoodBad review.Result `json:"product_good_bad"`
	ProductBands   review.Result `json:"product_bands"`
	SellerBands    review.Result `json:"seller_bands"`
}

// ProductDetailImpact compares products with and without detailed listings.
type ProductDetailImpact struct {
	DetailedReview    describe.BoxStats `json:"detailed_review"`
	NonDetailedReview describe.BoxStats `json:"non_detailed_review"`
	// ReviewUplift is the relative difference of mean review scores, in percent.
	ReviewUplift review.Average `json:"review_uplift_pct"`

	DetailedSales    review.Average `json:"detailed_mean_sales"`
	NonDetailedSales review.Average `json:"non_detailed_mean_sales"`
	SalesUplift      review.Average `json:"sales_uplift_pct"`
}

// Geographics holds the points of the customer and seller scatter views.
type Geographics struct {
	Cities    []string               `json:"cities"`
	Customers []model.GeoPoint       `json:"customers"`
	Sellers   []model.SellerLocation `json:"sellers"`
}

// Stats describes the service for monitoring.
type Stats struct {
	Renders         int64           `json:"renders"`
	Failures        int64           `json:"failures"`
	LastRenderMs    float64         `json:"last_render_ms"`
	LastRenderAt    *time.Time      `json:"last_render_at,omitempty"`
	DataDir         string          `json:"data_dir,omitempty"`
	DefaultSections []model.Section `json:"default_sections"`
	Uptime          string          `json:"uptime"`
	// Extracts holds the latest load outcome per extract name.
	Extracts map[string]ExtractLoad `json:"extracts,omitempty"`
}

// ExtractLoad counts the rows kept and rejected by one extract load.
type ExtractLoad struct {
	Loaded   int `json:"loaded"`
	Rejected int `json:"rejected"`
}
