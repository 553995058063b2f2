package render

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// SVGCanvas is a vector Canvas backed by svgo. svgo is immediate-mode,
// so path segments accumulate in a buffer until Fill or Stroke emits
// them as a single <path> element.
type SVGCanvas struct {
	canvas *svg.SVG

	path          strings.Builder
	pendingCircle bool
	cx, cy, cr    float64

	color     color.RGBA
	lineWidth float64
}

var _ Canvas = (*SVGCanvas)(nil)

// NewSVGCanvas starts an SVG document of the given size on w, with the
// dark background rect already emitted. End must be called to close the
// document.
func NewSVGCanvas(w io.Writer, width, height int) *SVGCanvas {
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:"+cssRGBA(bgDark))
	return &SVGCanvas{canvas: canvas, lineWidth: 1}
}

// End closes the SVG document.
func (s *SVGCanvas) End() {
	s.canvas.End()
}

func (s *SVGCanvas) MoveTo(x, y float64) {
	fmt.Fprintf(&s.path, "M%.2f %.2f ", x, y)
}

func (s *SVGCanvas) LineTo(x, y float64) {
	fmt.Fprintf(&s.path, "L%.2f %.2f ", x, y)
}

func (s *SVGCanvas) QuadraticTo(cx, cy, x, y float64) {
	fmt.Fprintf(&s.path, "Q%.2f %.2f %.2f %.2f ", cx, cy, x, y)
}

func (s *SVGCanvas) ClosePath() {
	s.path.WriteString("Z ")
}

func (s *SVGCanvas) DrawCircle(x, y, r float64) {
	s.pendingCircle = true
	s.cx, s.cy, s.cr = x, y, r
}

func (s *SVGCanvas) SetColor(c color.RGBA) {
	s.color = c
}

func (s *SVGCanvas) SetLineWidth(w float64) {
	s.lineWidth = w
}

func (s *SVGCanvas) Fill() {
	style := fmt.Sprintf("fill:%s;stroke:none", cssRGBA(s.color))
	s.flush(style)
}

func (s *SVGCanvas) Stroke() {
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.1f", cssRGBA(s.color), s.lineWidth)
	s.flush(style)
}

// flush emits whatever geometry is pending under the given style.
func (s *SVGCanvas) flush(style string) {
	if s.pendingCircle {
		s.canvas.Circle(int(s.cx+0.5), int(s.cy+0.5), int(s.cr+0.5), style)
		s.pendingCircle = false
	}
	if s.path.Len() > 0 {
		s.canvas.Path(strings.TrimSpace(s.path.String()), style)
		s.path.Reset()
	}
}

// MeasureString approximates text metrics; SVG viewers do their own
// shaping, so this only needs to be good enough for centering.
func (s *SVGCanvas) MeasureString(str string) (w, h float64) {
	const charWidth, lineHeight = 7.0, 13.0
	return float64(len(str)) * charWidth, lineHeight
}

func (s *SVGCanvas) DrawString(str string, x, y float64) {
	style := fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", cssRGBA(s.color))
	s.canvas.Text(int(x+0.5), int(y+0.5), str, style)
}

func cssRGBA(c color.RGBA) string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.2f)", c.R, c.G, c.B, float64(c.A)/255)
}
