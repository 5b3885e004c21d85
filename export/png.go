package export

import (
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"stockflow/connector"
	"stockflow/core"
	"stockflow/geometry"
)

const pngPadding = 40.0

// PNG renders the elements to a PNG file at 1:1 diagram scale.
func PNG(filename string, elements []core.Element) error {
	if len(elements) == 0 {
		return fmt.Errorf("nothing to export")
	}

	minX, minY, maxX, maxY := bounds(elements)
	minX -= pngPadding
	minY -= pngPadding
	maxX += pngPadding
	maxY += pngPadding

	dc := gg.NewContext(int(maxX-minX)+1, int(maxY-minY)+1)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("parsing embedded font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{
		Size:    12,
		Hinting: font.HintingFull,
	}))

	byID := make(map[int]core.Element, len(elements))
	for _, el := range elements {
		byID[el.UID()] = el
	}

	dc.SetColor(color.Black)
	dc.SetLineWidth(1.5)

	for _, el := range elements {
		if l, ok := el.(core.Link); ok {
			drawLink(dc, l, byID, minX, minY)
		}
	}
	for _, el := range elements {
		if f, ok := el.(core.Flow); ok {
			drawFlowPNG(dc, f, minX, minY)
		}
	}
	for _, el := range elements {
		switch v := el.(type) {
		case core.Stock:
			c := connector.VisualCenter(v)
			hw, hh := core.StockWidth/2, core.StockHeight/2
			dc.DrawRectangle(c.X-hw-minX, c.Y-hh-minY, core.StockWidth, core.StockHeight)
			dc.Stroke()
			dc.DrawStringAnchored(v.Name, c.X-minX, c.Y-minY, 0.5, 0.35)
		case core.Aux:
			c := connector.VisualCenter(v)
			dc.DrawCircle(c.X-minX, c.Y-minY, core.AuxRadius)
			dc.Stroke()
			dc.DrawStringAnchored(v.Name, c.X-minX, c.Y+core.AuxRadius-minY+10, 0.5, 0.5)
		case core.Cloud:
			dc.DrawCircle(v.X-minX, v.Y-minY, core.CloudRadius)
			dc.SetDash(3, 3)
			dc.Stroke()
			dc.SetDash()
		case core.Module:
			c := connector.VisualCenter(v)
			hw, hh := core.ModuleWidth/2, core.ModuleHeight/2
			dc.DrawRoundedRectangle(c.X-hw-minX, c.Y-hh-minY, core.ModuleWidth, core.ModuleHeight, 6)
			dc.Stroke()
			dc.DrawStringAnchored(v.Name, c.X-minX, c.Y-minY, 0.5, 0.35)
		}
	}
	return dc.SavePNG(filename)
}

func drawFlowPNG(dc *gg.Context, f core.Flow, minX, minY float64) {
	if len(f.Points) < 2 {
		return
	}
	for i := 0; i < len(f.Points)-1; i++ {
		a, b := f.Points[i], f.Points[i+1]
		dc.DrawLine(a.X-minX, a.Y-minY, b.X-minX, b.Y-minY)
		dc.Stroke()
	}
	dc.DrawCircle(f.X-minX, f.Y-minY, core.ValveRadius)
	dc.Stroke()
	dc.DrawStringAnchored(f.Name, f.X-minX, f.Y+core.ValveRadius-minY+10, 0.5, 0.5)
}

// drawLink draws a causal link as a straight line or a circular arc,
// terminating on each endpoint's boundary.
func drawLink(dc *gg.Context, l core.Link, byID map[int]core.Element, minX, minY float64) {
	from, ok1 := byID[l.FromUID]
	to, ok2 := byID[l.ToUID]
	if !ok1 || !ok2 {
		return
	}
	fc := connector.VisualCenter(from)
	tc := connector.VisualCenter(to)

	if math.Abs(l.Arc) < geometry.Epsilon {
		theta := math.Atan2(tc.Y-fc.Y, tc.X-fc.X)
		a := connector.IntersectElementStraight(from, theta)
		b := connector.IntersectElementStraight(to, theta+math.Pi)
		dc.DrawLine(a.X-minX, a.Y-minY, b.X-minX, b.Y-minY)
		dc.Stroke()
		return
	}

	// Reconstruct the arc's circle from the takeoff angle: the apex sits
	// above the chord midpoint by (chord/2)*tan(arc/2).
	chord := geometry.Distance(fc, tc)
	if chord < geometry.Epsilon {
		return
	}
	sagitta := chord / 2 * math.Tan(geometry.DegToRad(math.Abs(l.Arc))/2)
	ux, uy := (tc.X-fc.X)/chord, (tc.Y-fc.Y)/chord
	sign := 1.0
	if l.Arc > 0 {
		sign = -1
	}
	apex := geometry.Point{
		X: (fc.X+tc.X)/2 - sign*sagitta*uy,
		Y: (fc.Y+tc.Y)/2 + sign*sagitta*ux,
	}
	circle := geometry.CircleFromPoints(fc, apex, tc)

	a := arcBoundary(from, circle, apex)
	b := arcBoundary(to, circle, apex)
	// Approximate with a quadratic through the apex; good enough at
	// rendering resolution.
	cx := 2*apex.X - (a.X+b.X)/2
	cy := 2*apex.Y - (a.Y+b.Y)/2
	dc.MoveTo(a.X-minX, a.Y-minY)
	dc.QuadraticTo(cx-minX, cy-minY, b.X-minX, b.Y-minY)
	dc.Stroke()
}

// arcBoundary picks the crossing of the arc circle with the element's
// boundary nearer the arc's apex.
func arcBoundary(el core.Element, circle geometry.Circle, apex geometry.Point) geometry.Point {
	p := connector.IntersectElementArc(el, circle, false)
	q := connector.IntersectElementArc(el, circle, true)
	if geometry.Distance(q, apex) < geometry.Distance(p, apex) {
		return q
	}
	return p
}
