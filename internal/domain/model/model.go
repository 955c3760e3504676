// Package model contains the rows read from the dashboard extracts.
package model

// Entity is a product or seller with its order count and mean review score.
type Entity struct {
	ID        string  // product_id or seller_id
	Orders    int64   // orders attributed to the entity in the extract
	ScoreMean float64 // mean review score, expected in [1, 5]
}

// CityOrders is one row of the orders-per-city extract.
type CityOrders struct {
	City   string `json:"city"`
	Orders int64  `json:"orders"`
}

// ReviewStats carries the per-product review score aggregates.
type ReviewStats struct {
	ProductID string  `json:"product_id"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Mean      float64 `json:"mean"`
}

// ProductSales is the order count of a single product.
type ProductSales struct {
	ProductID string `json:"product_id,omitempty"`
	Orders    int64  `json:"orders"`
}

// GeoPoint is a geolocated city sample.
type GeoPoint struct {
	City string  `json:"city"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// SellerLocation is a seller position with its order count when known.
type SellerLocation struct {
	Seller string  `json:"seller,omitempty"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Count  int64   `json:"count,omitempty"`
}
