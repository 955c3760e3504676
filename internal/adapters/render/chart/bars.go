package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/okian/shopease/internal/domain/model"
	"github.com/okian/shopease/internal/domain/review"
	"github.com/okian/shopease/internal/domain/types"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const notAvailable = "n/a"

// bar is one labeled bar. Undefined bars are drawn at zero and labeled n/a.
type bar struct {
	label   string
	value   float64
	defined bool
	color   color.Color
}

func bandColor(label string) color.Color {
	switch label {
	case review.OneStar, review.TwoStar, review.Bad:
		return red
	case review.ThreeStar:
		return yellow
	default:
		return green
	}
}

func (r *Renderer) topCities(w io.Writer, cities []model.CityOrders) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Top %d Cities by Orders", len(cities))
	p.X.Label.Text = "Number of Orders"
	p.Y.Label.Text = "City"

	// Highest city on top.
	n := len(cities)
	names := make([]string, n)
	for i, c := range cities {
		pos := n - 1 - i
		names[pos] = c.City
		clr := color.Color(muted)
		if i == 0 {
			clr = highlight
		}
		bc, err := plotter.NewBarChart(plotter.Values{float64(c.Orders)}, vg.Points(18))
		if err != nil {
			return err
		}
		bc.Horizontal = true
		bc.XMin = float64(pos)
		bc.Color = clr
		bc.LineStyle.Width = 0
		p.Add(bc)

		lbl, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: float64(c.Orders), Y: float64(pos)}},
			Labels: []string{humanize.Comma(c.Orders)},
		})
		if err != nil {
			return err
		}
		p.Add(lbl)
	}
	p.NominalY(names...)
	return writePNG(w, r.width, r.height, p)
}

// bands draws the total and average orders of a band result side by side.
func (r *Renderer) bands(w io.Writer, axis string, res review.Result) error {
	totals := make([]bar, len(res.Summaries))
	averages := make([]bar, len(res.Summaries))
	for i, s := range res.Summaries {
		clr := bandColor(s.Band.Label)
		totals[i] = bar{label: s.Band.Label, value: float64(s.TotalOrders), defined: !s.Empty(), color: clr}
		avg, ok := s.Average.Get()
		averages[i] = bar{label: s.Band.Label, value: avg, defined: ok, color: clr}
	}

	total, err := barPanel("Total Sales", axis, "Total Sales", totals, func(v float64) string {
		return humanize.Comma(int64(v))
	})
	if err != nil {
		return err
	}
	average, err := barPanel("Average Sales", axis, "Average Sales", averages, func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	})
	if err != nil {
		return err
	}
	return writePNG(w, r.width, r.height, total, average)
}

func (r *Renderer) detailSales(w io.Writer, d *types.ProductDetailImpact) error {
	ds, dok := d.DetailedSales.Get()
	ns, nok := d.NonDetailedSales.Get()
	p, err := barPanel("Comparison of The Average Sales: Detailed vs Non-Detailed Products",
		"Product Type", "Average Sales",
		[]bar{
			{label: "Detailed Product", value: ds, defined: dok, color: green},
			{label: "Non-Detailed Product", value: ns, defined: nok, color: red},
		},
		func(v float64) string { return fmt.Sprintf("%.2f", v) })
	if err != nil {
		return err
	}
	return writePNG(w, r.width, r.height, p)
}

func barPanel(title, xLabel, yLabel string, bars []bar, format func(float64) string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	names := make([]string, len(bars))
	for i, b := range bars {
		names[i] = b.label
		v, text := b.value, format(b.value)
		if !b.defined || math.IsNaN(v) || math.IsInf(v, 0) {
			v, text = 0, notAvailable
		}
		bc, err := plotter.NewBarChart(plotter.Values{v}, vg.Points(24))
		if err != nil {
			return nil, err
		}
		bc.XMin = float64(i)
		bc.Color = b.color
		bc.LineStyle.Width = 0
		p.Add(bc)

		lbl, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: float64(i), Y: v}},
			Labels: []string{text},
		})
		if err != nil {
			return nil, err
		}
		p.Add(lbl)
	}
	p.NominalX(names...)
	return p, nil
}

// writePNG encodes one plot, or several plots side by side, as PNG.
func writePNG(w io.Writer, width, height vg.Length, plots ...*plot.Plot) error {
	if len(plots) == 1 {
		wt, err := plots[0].WriterTo(width, height, "png")
		if err != nil {
			return err
		}
		_, err = wt.WriteTo(w)
		return err
	}

	img := vgimg.New(width, height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(plots),
		PadX:      vg.Millimeter * 6,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align([][]*plot.Plot{plots}, tiles, dc)
	for i, p := range plots {
		p.Draw(canvases[0][i])
	}
	_, err := vgimg.PngCanvas{Canvas: img}.WriteTo(w)
	return err
}
