package extract_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/shopease/internal/adapters/extract"
	"github.com/okian/shopease/internal/domain/model"
	"github.com/okian/shopease/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func writeExtract(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".csv"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFileSourceScores(t *testing.T) {
	Convey("Given a score extract with two header rows", t, func() {
		dir := t.TempDir()
		writeExtract(t, dir, extract.ScorePerProduct, "\xEF\xBB\xBF"+
			",order_id,review_score,review_score,review_score\n"+
			"product_id,count,min,max,mean\n"+
			"p1,10,4,5,4.8\n"+
			"p2,5,1,3,2.0\n"+
			"p3,7.0,1,5,4.9\n"+
			"bad-mean,3,1,5,\n"+
			"bad-count,-2,1,5,3.1\n"+
			"nan,4,1,5,NaN\n"+
			"short,4\n"+
			"huge,1e300,1,5,4.0\n"+
			"p4,2,5,5,7.5\n")
		src := extract.NewFileSource(dir)

		Convey("When loading product scores", func() {
			got, err := src.ProductScores(context.Background())

			Convey("Then valid rows are returned in file order", func() {
				So(err, ShouldBeNil)
				So(got, ShouldResemble, []model.Entity{
					{ID: "p1", Orders: 10, ScoreMean: 4.8},
					{ID: "p2", Orders: 5, ScoreMean: 2.0},
					{ID: "p3", Orders: 7, ScoreMean: 4.9},
					{ID: "p4", Orders: 2, ScoreMean: 7.5},
				})
			})

			Convey("And malformed rows are counted as rejected", func() {
				c, ok := src.LastLoad(extract.ScorePerProduct)
				So(ok, ShouldBeTrue)
				So(c, ShouldResemble, extract.Counts{Loaded: 4, Rejected: 5})
				So(src.Loads(), ShouldResemble, map[string]extract.Counts{
					extract.ScorePerProduct: {Loaded: 4, Rejected: 5},
				})
			})
		})

		Convey("When the seller extract is missing", func() {
			_, err := src.SellerScores(context.Background())

			Convey("Then the load fails with not found", func() {
				So(errors.Is(err, extract.ErrExtractNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestFileSourceNamedColumns(t *testing.T) {
	Convey("Given named-column extracts", t, func() {
		dir := t.TempDir()
		ctx := context.Background()
		src := extract.NewFileSource(dir)

		Convey("When reading orders per city with extra columns", func() {
			writeExtract(t, dir, extract.OrderPerCity,
				"idx,customer_city,order_id\n0,sao paulo,15540\n1,rio de janeiro,6882\n2,,10\n3,curitiba,x\n")
			got, err := src.CityOrders(ctx)

			Convey("Then columns are matched by name", func() {
				So(err, ShouldBeNil)
				So(got, ShouldResemble, []model.CityOrders{
					{City: "sao paulo", Orders: 15540},
					{City: "rio de janeiro", Orders: 6882},
				})
			})
		})

		Convey("When a required column is absent", func() {
			writeExtract(t, dir, extract.OrderPerCity, "city,orders\nsao paulo,1\n")
			_, err := src.CityOrders(ctx)

			Convey("Then the load fails with a missing column error", func() {
				So(errors.Is(err, extract.ErrMissingColumn), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "customer_city")
			})
		})

		Convey("When reading sales with and without product ids", func() {
			writeExtract(t, dir, extract.DetailedProductSales, "product_id,order_id\na,3\nb,1\n")
			writeExtract(t, dir, extract.NonDetailedProductSales, "order_id\n2\n2\n-1\n")
			detailed, err := src.ProductSales(ctx, true)
			So(err, ShouldBeNil)
			plain, err := src.ProductSales(ctx, false)
			So(err, ShouldBeNil)

			Convey("Then both layouts are accepted", func() {
				So(detailed, ShouldResemble, []model.ProductSales{{ProductID: "a", Orders: 3}, {ProductID: "b", Orders: 1}})
				So(plain, ShouldResemble, []model.ProductSales{{Orders: 2}, {Orders: 2}})
			})
		})

		Convey("When reading review aggregates", func() {
			writeExtract(t, dir, extract.DetailedProductReview,
				",review_score,review_score,review_score\nproduct_id,min,max,mean\nx,1,5,4.25\ny,oops,5,4\n")
			got, err := src.ProductReviews(ctx, true)

			Convey("Then values are read by position", func() {
				So(err, ShouldBeNil)
				So(got, ShouldResemble, []model.ReviewStats{{ProductID: "x", Min: 1, Max: 5, Mean: 4.25}})
			})
		})

		Convey("When reading geolocations", func() {
			writeExtract(t, dir, extract.Geolocation,
				"geolocation_zip_code_prefix,geolocation_lat,geolocation_lng,geolocation_city,geolocation_state\n"+
					"1037,-23.54,-46.63,sao paulo,SP\n1046,,-46.64,sao paulo,SP\n")
			writeExtract(t, dir, extract.SellersGeoCount,
				"seller_city,geolocation_lat,geolocation_lng,count\nibitinga,-21.75,-48.82,49\n")
			geo, err := src.Geolocations(ctx)
			So(err, ShouldBeNil)
			sellers, err := src.SellerLocations(ctx)
			So(err, ShouldBeNil)

			Convey("Then points carry their coordinates", func() {
				So(geo, ShouldResemble, []model.GeoPoint{{City: "sao paulo", Lat: -23.54, Lng: -46.63}})
				So(sellers, ShouldResemble, []model.SellerLocation{{Seller: "ibitinga", Lat: -21.75, Lng: -48.82, Count: 49}})
			})
		})
	})
}

func TestFileSourceContext(t *testing.T) {
	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Convey("Then loads stop before touching the disk", func() {
			_, err := extract.NewFileSource(t.TempDir()).CityOrders(ctx)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestMemorySource(t *testing.T) {
	Convey("Given a memory source", t, func() {
		mem := &extract.Memory{Products: []model.Entity{{ID: "p1", Orders: 1, ScoreMean: 4}}}

		Convey("Then callers get a copy", func() {
			got, err := mem.ProductScores(context.Background())
			So(err, ShouldBeNil)
			got[0].Orders = 99
			So(mem.Products[0].Orders, ShouldEqual, 1)
		})

		Convey("Then a configured error is returned", func() {
			mem.Err = extract.ErrReadExtract
			_, err := mem.SellerScores(context.Background())
			So(err, ShouldEqual, extract.ErrReadExtract)
		})
	})
}
