// Package workbook exports a dashboard report as an .xlsx workbook.
package workbook

import (
	"errors"
	"fmt"
	"io"

	"github.com/okian/shopease/internal/domain/review"
	"github.com/okian/shopease/internal/domain/types"
	"github.com/xuri/excelize/v2"
)

// Sheet names.
const (
	SheetTopCities      = "Top Cities"
	SheetProductGoodBad = "Product Good-Bad"
	SheetProductBands   = "Product Bands"
	SheetSellerBands    = "Seller Bands"
	SheetProductDetail  = "Product Detail"
)

const notAvailable = "n/a"

// ErrExport wraps failures while building or writing the workbook.
var ErrExport = errors.New("workbook export failed")

var bandHeaders = []string{"Band", "Total Orders", "Entities", "Average Orders"}

// Write renders report into a workbook and writes it to w. Band sheets are
// only present when the reviews section was rendered.
func Write(w io.Writer, report types.Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetTopCities); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	if err := topCities(f, report); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}

	if report.Reviews != nil {
		sheets := []struct {
			name string
			res  review.Result
		}{
			{SheetProductGoodBad, report.Reviews.ProductGoodBad},
			{SheetProductBands, report.Reviews.ProductBands},
			{SheetSellerBands, report.Reviews.SellerBands},
		}
		for _, s := range sheets {
			if err := bandSheet(f, s.name, s.res); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrExport, s.name, err)
			}
		}
	}

	if report.ProductDetail != nil {
		if err := productDetail(f, report.ProductDetail); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrExport, SheetProductDetail, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	return nil
}

func topCities(f *excelize.File, report types.Report) error {
	if err := header(f, SheetTopCities, "City", "Orders"); err != nil {
		return err
	}
	for i, c := range report.Sales.TopCities {
		row := i + 2
		if err := f.SetCellValue(SheetTopCities, fmt.Sprintf("A%d", row), c.City); err != nil {
			return err
		}
		if err := f.SetCellValue(SheetTopCities, fmt.Sprintf("B%d", row), c.Orders); err != nil {
			return err
		}
	}
	return nil
}

func bandSheet(f *excelize.File, sheet string, res review.Result) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := header(f, sheet, bandHeaders...); err != nil {
		return err
	}
	for i, s := range res.Summaries {
		row := i + 2
		values := []any{s.Band.Label, s.TotalOrders, s.EntityCount, average(s.Average)}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	// Anomaly footnote below the table.
	row := len(res.Summaries) + 3
	if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Out of domain"); err != nil {
		return err
	}
	return f.SetCellValue(sheet, fmt.Sprintf("B%d", row), res.OutOfDomain)
}

func productDetail(f *excelize.File, d *types.ProductDetailImpact) error {
	if _, err := f.NewSheet(SheetProductDetail); err != nil {
		return err
	}
	if err := header(f, SheetProductDetail, "Measure", "Detailed Product", "Non-Detailed Product", "Uplift (%)"); err != nil {
		return err
	}
	rows := [][]any{
		{"Review score mean", boxMean(d.DetailedReview.Count, d.DetailedReview.Mean), boxMean(d.NonDetailedReview.Count, d.NonDetailedReview.Mean), average(d.ReviewUplift)},
		{"Review score median", boxMean(d.DetailedReview.Count, d.DetailedReview.Median), boxMean(d.NonDetailedReview.Count, d.NonDetailedReview.Median), ""},
		{"Products reviewed", d.DetailedReview.Count, d.NonDetailedReview.Count, ""},
		{"Average sales", average(d.DetailedSales), average(d.NonDetailedSales), average(d.SalesUplift)},
	}
	for i, values := range rows {
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SheetProductDetail, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func header(f *excelize.File, sheet string, titles ...string) error {
	for i, title := range titles {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
		col, _, err := excelize.SplitCellName(cell)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, 18); err != nil {
			return err
		}
	}
	return nil
}

// average writes undefined values as n/a.
func average(a review.Average) any {
	if v, ok := a.Get(); ok {
		return v
	}
	return notAvailable
}

func boxMean(count int, v float64) any {
	if count == 0 {
		return notAvailable
	}
	return v
}
