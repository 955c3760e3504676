package samplegen

import "time"

// Config holds configuration for a sample extract run.
type Config struct {
	OutDir   string        // Directory the extracts are written to
	Products int           // Number of well-formed product score rows
	Sellers  int           // Number of well-formed seller score rows
	Cities   int           // Number of customer cities
	Seed     uint64        // Seed for reproducible output; zero picks a random seed
	BaseURL  string        // Dashboard server to verify against; empty skips verification
	Timeout  time.Duration // HTTP request timeout
	Verbose  bool          // Log every band of the expected summary
}

// Dataset is one generated set of extracts.
type Dataset struct {
	Cities             []CityRow
	Products           []ScoreRow
	Sellers            []ScoreRow
	DetailedReviews    []ScoreRow
	NonDetailedReviews []ScoreRow
	DetailedSales      []SalesRow
	NonDetailedSales   []SalesRow
	Geo                []GeoRow
	SellerGeo          []SellerGeoRow
}

// CityRow is one orders-per-city row.
type CityRow struct {
	City   string
	Orders int64
}

// ScoreRow is a score aggregate row. Raw rows are written verbatim and model
// malformed input.
type ScoreRow struct {
	ID     string
	Orders int64
	Min    float64
	Max    float64
	Mean   float64
	Raw    []string
}

// SalesRow is a per-product order count.
type SalesRow struct {
	ProductID string
	Orders    int64
}

// GeoRow is a geolocated customer sample.
type GeoRow struct {
	City     string
	Lat, Lng float64
}

// SellerGeoRow is a seller position with its order count.
type SellerGeoRow struct {
	SellerID string
	Lat, Lng float64
	Count    int64
}
