package chart

import (
	"image/color"
	"io"
	"math"

	"github.com/okian/shopease/internal/domain/describe"
	"github.com/okian/shopease/internal/domain/types"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// boxPlot draws precomputed box statistics at an X location.
type boxPlot struct {
	loc   float64
	stats describe.BoxStats
	width vg.Length
	fill  color.Color
	line  draw.LineStyle
	glyph draw.GlyphStyle
}

var (
	_ plot.Plotter    = (*boxPlot)(nil)
	_ plot.DataRanger = (*boxPlot)(nil)
)

func newBoxPlot(loc float64, stats describe.BoxStats, fill color.Color) *boxPlot {
	return &boxPlot{
		loc:   loc,
		stats: stats,
		width: vg.Points(40),
		fill:  fill,
		line:  draw.LineStyle{Color: color.Black, Width: vg.Points(1)},
		glyph: draw.GlyphStyle{Color: color.Black, Radius: vg.Points(2), Shape: draw.RingGlyph{}},
	}
}

func (b *boxPlot) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	x := trX(b.loc)
	if !c.ContainsX(x) {
		return
	}
	s := b.stats
	half := b.width / 2
	q1, med, q3 := trY(s.Q1), trY(s.Median), trY(s.Q3)
	lo, hi := trY(s.Min), trY(s.Max)

	box := []vg.Point{
		{X: x - half, Y: q1},
		{X: x - half, Y: q3},
		{X: x + half, Y: q3},
		{X: x + half, Y: q1},
	}
	c.FillPolygon(b.fill, box)
	c.StrokeLines(b.line, append(box, box[0]))
	c.StrokeLine2(b.line, x-half, med, x+half, med)

	c.StrokeLine2(b.line, x, q3, x, hi)
	c.StrokeLine2(b.line, x, q1, x, lo)
	c.StrokeLine2(b.line, x-half/2, hi, x+half/2, hi)
	c.StrokeLine2(b.line, x-half/2, lo, x+half/2, lo)

	for _, o := range s.Outliers {
		c.DrawGlyph(b.glyph, vg.Point{X: x, Y: trY(o)})
	}
}

func (b *boxPlot) DataRange() (xmin, xmax, ymin, ymax float64) {
	ymin, ymax = b.stats.Min, b.stats.Max
	for _, o := range b.stats.Outliers {
		ymin = math.Min(ymin, o)
		ymax = math.Max(ymax, o)
	}
	return b.loc - 0.5, b.loc + 0.5, ymin, ymax
}

func (r *Renderer) detailReview(w io.Writer, d *types.ProductDetailImpact) error {
	p := plot.New()
	p.Title.Text = "Review Score: Detailed vs Non-Detailed Products"
	p.Y.Label.Text = "Review Score Mean"

	samples := []struct {
		stats describe.BoxStats
		fill  color.Color
	}{
		{d.DetailedReview, teal},
		{d.NonDetailedReview, crimson},
	}
	for i, s := range samples {
		if s.stats.Count == 0 {
			lbl, err := plotter.NewLabels(plotter.XYLabels{
				XYs:    []plotter.XY{{X: float64(i), Y: 0}},
				Labels: []string{notAvailable},
			})
			if err != nil {
				return err
			}
			p.Add(lbl)
			continue
		}
		p.Add(newBoxPlot(float64(i), s.stats, s.fill))
	}
	p.NominalX("Detailed Product", "Non-Detailed Product")
	return writePNG(w, r.width, r.height, p)
}
