package render

import (
	"image/color"

	"git.sr.ht/~sbinet/gg"
)

// PNGCanvas is a raster Canvas backed by a gg drawing context.
type PNGCanvas struct {
	dc *gg.Context
}

var _ Canvas = (*PNGCanvas)(nil)

// NewPNGCanvas creates a canvas of the given pixel size with the dark
// background already filled.
func NewPNGCanvas(width, height int) *PNGCanvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(bgDark)
	dc.Clear()
	return &PNGCanvas{dc: dc}
}

func (p *PNGCanvas) MoveTo(x, y float64)                  { p.dc.MoveTo(x, y) }
func (p *PNGCanvas) LineTo(x, y float64)                  { p.dc.LineTo(x, y) }
func (p *PNGCanvas) QuadraticTo(cx, cy, x, y float64)     { p.dc.QuadraticTo(cx, cy, x, y) }
func (p *PNGCanvas) ClosePath()                           { p.dc.ClosePath() }
func (p *PNGCanvas) DrawCircle(x, y, r float64)           { p.dc.DrawCircle(x, y, r) }
func (p *PNGCanvas) SetColor(c color.RGBA)                { p.dc.SetColor(c) }
func (p *PNGCanvas) SetLineWidth(w float64)               { p.dc.SetLineWidth(w) }
func (p *PNGCanvas) Fill()                                { p.dc.Fill() }
func (p *PNGCanvas) Stroke()                              { p.dc.Stroke() }
func (p *PNGCanvas) MeasureString(s string) (w, h float64) {
	return p.dc.MeasureString(s)
}
func (p *PNGCanvas) DrawString(s string, x, y float64) { p.dc.DrawString(s, x, y) }

// SavePNG writes the rendered image to path.
func (p *PNGCanvas) SavePNG(path string) error {
	return p.dc.SavePNG(path)
}
