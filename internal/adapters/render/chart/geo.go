package chart

import (
	"io"

	"github.com/okian/shopease/internal/domain/model"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

func customerXYs(points []model.GeoPoint) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, p := range points {
		xys[i] = plotter.XY{X: p.Lng, Y: p.Lat}
	}
	return xys
}

func sellerXYs(sellers []model.SellerLocation) plotter.XYs {
	xys := make(plotter.XYs, len(sellers))
	for i, s := range sellers {
		xys[i] = plotter.XY{X: s.Lng, Y: s.Lat}
	}
	return xys
}

// geo draws a plain longitude/latitude scatter.
func (r *Renderer) geo(w io.Writer, title string, xys plotter.XYs, radius vg.Length) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"
	p.Add(plotter.NewGrid())

	if len(xys) > 0 {
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Color = translRed
		sc.GlyphStyle.Radius = radius
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
	}
	return writePNG(w, r.width, r.height, p)
}
