package samplegen

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/okian/shopease/internal/adapters/extract"
)

// Header rows of the positional extracts.
var (
	scoreHeader = [][]string{
		{"", "order_id", "review_score", "review_score", "review_score"},
		{"id", "count", "min", "max", "mean"},
	}
	reviewHeader = [][]string{
		{"", "review_score", "review_score", "review_score"},
		{"product_id", "min", "max", "mean"},
	}
)

// Write stores ds as CSV extracts under dir, creating it when missing.
func Write(dir string, ds Dataset) error {
	if err := os.MkdirAll(dir, directoryPermission); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	files := map[string][][]string{
		extract.OrderPerCity:             cityRecords(ds.Cities),
		extract.ScorePerProduct:          scoreRecords(ds.Products),
		extract.ScorePerStore:            scoreRecords(ds.Sellers),
		extract.DetailedProductReview:    reviewRecords(ds.DetailedReviews),
		extract.NonDetailedProductReview: reviewRecords(ds.NonDetailedReviews),
		extract.DetailedProductSales:     salesRecords(ds.DetailedSales),
		extract.NonDetailedProductSales:  salesRecords(ds.NonDetailedSales),
		extract.Geolocation:              geoRecords(ds.Geo),
		extract.SellersGeoCount:          sellerGeoRecords(ds.SellerGeo),
	}
	for _, name := range extract.Names() {
		if err := writeCSV(filepath.Join(dir, name+".csv"), files[name]); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWrite, name, err)
		}
	}
	return nil
}

func writeCSV(path string, records [][]string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return err
	}
	return w.Error()
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func itoa(v int64) string { return strconv.FormatInt(v, 10) }

func withHeader(h [][]string, n int) [][]string {
	out := make([][]string, len(h), len(h)+n)
	copy(out, h)
	return out
}

func cityRecords(rows []CityRow) [][]string {
	out := withHeader([][]string{{"customer_city", "order_id"}}, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.City, itoa(r.Orders)})
	}
	return out
}

func scoreRecords(rows []ScoreRow) [][]string {
	out := withHeader(scoreHeader, len(rows))
	for _, r := range rows {
		if r.Raw != nil {
			out = append(out, r.Raw)
			continue
		}
		out = append(out, []string{r.ID, itoa(r.Orders), ftoa(r.Min), ftoa(r.Max), ftoa(r.Mean)})
	}
	return out
}

func reviewRecords(rows []ScoreRow) [][]string {
	out := withHeader(reviewHeader, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.ID, ftoa(r.Min), ftoa(r.Max), ftoa(r.Mean)})
	}
	return out
}

func salesRecords(rows []SalesRow) [][]string {
	out := withHeader([][]string{{"product_id", "order_id"}}, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.ProductID, itoa(r.Orders)})
	}
	return out
}

func geoRecords(rows []GeoRow) [][]string {
	out := withHeader([][]string{{"geolocation_city", "geolocation_lat", "geolocation_lng"}}, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.City, ftoa(r.Lat), ftoa(r.Lng)})
	}
	return out
}

func sellerGeoRecords(rows []SellerGeoRow) [][]string {
	out := withHeader([][]string{{"seller_id", "geolocation_lat", "geolocation_lng", "count"}}, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.SellerID, ftoa(r.Lat), ftoa(r.Lng), itoa(r.Count)})
	}
	return out
}
