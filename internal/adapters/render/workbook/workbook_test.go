package workbook_test

import (
	"bytes"
	"testing"

	"github.com/okian/shopease/internal/adapters/render/workbook"
	"github.com/okian/shopease/internal/domain/describe"
	"github.com/okian/shopease/internal/domain/model"
	"github.com/okian/shopease/internal/domain/review"
	"github.com/okian/shopease/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"
)

func TestWrite(t *testing.T) {
	Convey("Given a report with reviews and product detail", t, func() {
		products := []model.Entity{
			{ID: "p1", Orders: 10, ScoreMean: 4.8},
			{ID: "p2", Orders: 5, ScoreMean: 2.0},
			{ID: "p3", Orders: 7, ScoreMean: 4.9},
		}
		report := types.Report{
			Sales: types.SalesLevel{TopCities: []model.CityOrders{{City: "sao paulo", Orders: 15540}}},
			Reviews: &types.ReviewsImpact{
				ProductGoodBad: review.Summarize(products, review.GoodBad()),
				ProductBands:   review.Summarize(products, review.FiveBand()),
				SellerBands:    review.Summarize(nil, review.FiveBand()),
			},
			ProductDetail: &types.ProductDetailImpact{
				DetailedSales:    describe.Mean([]float64{4}),
				NonDetailedSales: describe.Mean([]float64{2}),
				SalesUplift:      review.Average{Value: 100, Defined: true},
			},
		}

		Convey("When exporting", func() {
			var buf bytes.Buffer
			So(workbook.Write(&buf, report), ShouldBeNil)

			f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
			So(err, ShouldBeNil)
			defer func() { _ = f.Close() }()

			Convey("Then every sheet is present", func() {
				So(f.GetSheetList(), ShouldResemble, []string{
					workbook.SheetTopCities,
					workbook.SheetProductGoodBad,
					workbook.SheetProductBands,
					workbook.SheetSellerBands,
					workbook.SheetProductDetail,
				})
			})

			Convey("Then band rows carry totals and averages", func() {
				label, _ := f.GetCellValue(workbook.SheetProductBands, "A6")
				total, _ := f.GetCellValue(workbook.SheetProductBands, "B6")
				avg, _ := f.GetCellValue(workbook.SheetProductBands, "D6")
				So(label, ShouldEqual, review.FiveStar)
				So(total, ShouldEqual, "17")
				So(avg, ShouldEqual, "8.5")
			})

			Convey("Then empty bands are written as n/a", func() {
				avg, _ := f.GetCellValue(workbook.SheetSellerBands, "D2")
				So(avg, ShouldEqual, "n/a")
			})

			Convey("Then top cities are listed", func() {
				city, _ := f.GetCellValue(workbook.SheetTopCities, "A2")
				So(city, ShouldEqual, "sao paulo")
			})
		})
	})

	Convey("Given a report with only the sales level", t, func() {
		var buf bytes.Buffer
		So(workbook.Write(&buf, types.Report{}), ShouldBeNil)

		f, err := excelize.OpenReader(&buf)
		So(err, ShouldBeNil)
		defer func() { _ = f.Close() }()

		Convey("Then only the top cities sheet exists", func() {
			So(f.GetSheetList(), ShouldResemble, []string{workbook.SheetTopCities})
		})
	})
}
