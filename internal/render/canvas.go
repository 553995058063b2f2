// Package render paints the laid-out skill tree onto a 2D canvas with
// state-dependent styling and progressive disclosure of names.
package render

import "image/color"

// Canvas is the drawing surface the renderer targets: path construction,
// fill/stroke with adjustable color and line width, and text. Backends
// exist for raster (PNG via gg) and vector (SVG via svgo) output.
type Canvas interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	ClosePath()

	DrawCircle(x, y, r float64)

	SetColor(c color.RGBA)
	SetLineWidth(w float64)
	Fill()
	Stroke()

	MeasureString(s string) (w, h float64)
	DrawString(s string, x, y float64)
}
