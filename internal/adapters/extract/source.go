// Package extract reads the static CSV extracts behind the dashboard.
package extract

import (
	"context"

	"github.com/okian/shopease/internal/domain/model"
)

// Extract names, also used as file stems and metric labels.
const (
	OrderPerCity             = "order_per_city"
	ScorePerProduct          = "score_per_product"
	ScorePerStore            = "score_per_store"
	DetailedProductReview    = "detailed_product_review"
	NonDetailedProductReview = "non_detailed_product_review"
	DetailedProductSales     = "detailed_product_sales"
	NonDetailedProductSales  = "non_detailed_product_sales"
	Geolocation              = "geolocation_df"
	SellersGeoCount          = "sellers_geo_count"
)

// Names lists every extract the dashboard reads.
func Names() []string {
	return []string{
		OrderPerCity, ScorePerProduct, ScorePerStore,
		DetailedProductReview, NonDetailedProductReview,
		DetailedProductSales, NonDetailedProductSales,
		Geolocation, SellersGeoCount,
	}
}

// Source provides the rows of every extract.
type Source interface {
	// CityOrders returns orders per customer city in file order.
	CityOrders(ctx context.Context) ([]model.CityOrders, error)
	// ProductScores returns products with their order count and mean score.
	ProductScores(ctx context.Context) ([]model.Entity, error)
	// SellerScores returns sellers with their order count and mean score.
	SellerScores(ctx context.Context) ([]model.Entity, error)
	// ProductReviews returns review score aggregates of detailed or non-detailed products.
	ProductReviews(ctx context.Context, detailed bool) ([]model.ReviewStats, error)
	// ProductSales returns order counts of detailed or non-detailed products.
	ProductSales(ctx context.Context, detailed bool) ([]model.ProductSales, error)
	// Geolocations returns geolocated city samples.
	Geolocations(ctx context.Context) ([]model.GeoPoint, error)
	// SellerLocations returns seller positions in file order.
	SellerLocations(ctx context.Context) ([]model.SellerLocation, error)
}

// Memory is a Source backed by slices. Nil slices read as empty extracts.
type Memory struct {
	Cities             []model.CityOrders
	Products           []model.Entity
	Sellers            []model.Entity
	DetailedReviews    []model.ReviewStats
	NonDetailedReviews []model.ReviewStats
	DetailedSales      []model.ProductSales
	NonDetailedSales   []model.ProductSales
	Geo                []model.GeoPoint
	SellerGeo          []model.SellerLocation

	// Err, when set, is returned by every method.
	Err error
}

var _ Source = (*Memory)(nil)

func (m *Memory) CityOrders(ctx context.Context) ([]model.CityOrders, error) {
	return memRead(ctx, m.Err, m.Cities)
}

func (m *Memory) ProductScores(ctx context.Context) ([]model.Entity, error) {
	return memRead(ctx, m.Err, m.Products)
}

func (m *Memory) SellerScores(ctx context.Context) ([]model.Entity, error) {
	return memRead(ctx, m.Err, m.Sellers)
}

func (m *Memory) ProductReviews(ctx context.Context, detailed bool) ([]model.ReviewStats, error) {
	if detailed {
		return memRead(ctx, m.Err, m.DetailedReviews)
	}
	return memRead(ctx, m.Err, m.NonDetailedReviews)
}

func (m *Memory) ProductSales(ctx context.Context, detailed bool) ([]model.ProductSales, error) {
	if detailed {
		return memRead(ctx, m.Err, m.DetailedSales)
	}
	return memRead(ctx, m.Err, m.NonDetailedSales)
}

func (m *Memory) Geolocations(ctx context.Context) ([]model.GeoPoint, error) {
	return memRead(ctx, m.Err, m.Geo)
}

func (m *Memory) SellerLocations(ctx context.Context) ([]model.SellerLocation, error) {
	return memRead(ctx, m.Err, m.SellerGeo)
}

// memRead returns a copy so callers may sort the result freely.
func memRead[T any](ctx context.Context, err error, rows []T) ([]T, error) {
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]T(nil), rows...), nil
}
