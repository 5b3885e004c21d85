// Package export renders diagram snapshots: ASCII for terminals and PNG for
// files. It is presentation glue over the geometry kernel and contains no
// routing logic of its own.
package export

import (
	"math"

	"stockflow/core"
)

// Character cell dimensions, in diagram units.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// Grid is a character-cell rendering of a diagram.
type Grid struct {
	Cells  [][]rune
	MinX   float64 // diagram coordinate of the left edge
	MinY   float64 // diagram coordinate of the top edge
	Width  int
	Height int
}

// Lines returns the grid as strings, one per row.
func (g *Grid) Lines() []string {
	out := make([]string, len(g.Cells))
	for i, row := range g.Cells {
		out[i] = string(row)
	}
	return out
}

// Cell maps a diagram coordinate to a grid cell.
func (g *Grid) Cell(x, y float64) (int, int) {
	return int(math.Round((x - g.MinX) / CellWidth)), int(math.Round((y - g.MinY) / CellHeight))
}

func (g *Grid) set(cx, cy int, r rune) {
	if cy < 0 || cy >= g.Height || cx < 0 || cx >= g.Width {
		return
	}
	g.Cells[cy][cx] = r
}

// ASCIIGrid renders the elements to a character grid. Flows draw their full
// orthogonal paths with the valve marked; stocks draw as boxes with their
// name inside; links are omitted (their curvature does not survive cell
// resolution).
func ASCIIGrid(elements []core.Element) *Grid {
	minX, minY, maxX, maxY := bounds(elements)
	pad := 2.0 * CellWidth
	minX -= pad
	minY -= pad
	maxX += pad
	maxY += pad

	g := &Grid{
		MinX:   minX,
		MinY:   minY,
		Width:  int((maxX-minX)/CellWidth) + 2,
		Height: int((maxY-minY)/CellHeight) + 2,
	}
	g.Cells = make([][]rune, g.Height)
	for i := range g.Cells {
		row := make([]rune, g.Width)
		for j := range row {
			row[j] = ' '
		}
		g.Cells[i] = row
	}

	for _, el := range elements {
		if f, ok := el.(core.Flow); ok {
			g.drawFlow(f)
		}
	}
	for _, el := range elements {
		switch v := el.(type) {
		case core.Stock:
			g.drawStock(v)
		case core.Aux:
			cx, cy := g.Cell(v.X, v.Y)
			g.set(cx, cy, 'O')
			g.label(cx+2, cy, v.Name)
		case core.Cloud:
			cx, cy := g.Cell(v.X, v.Y)
			g.set(cx, cy, '~')
		case core.Module:
			cx, cy := g.Cell(v.X, v.Y)
			g.set(cx, cy, '#')
			g.label(cx+2, cy, v.Name)
		}
	}
	return g
}

// ASCII renders the elements and returns the lines.
func ASCII(elements []core.Element) []string {
	return ASCIIGrid(elements).Lines()
}

func (g *Grid) drawFlow(f core.Flow) {
	if len(f.Points) < 2 {
		return
	}
	for i := 0; i < len(f.Points)-1; i++ {
		ax, ay := g.Cell(f.Points[i].X, f.Points[i].Y)
		bx, by := g.Cell(f.Points[i+1].X, f.Points[i+1].Y)
		g.drawLine(ax, ay, bx, by)
	}
	for _, p := range f.Points[1 : max(len(f.Points)-1, 1)] {
		cx, cy := g.Cell(p.X, p.Y)
		g.set(cx, cy, '+')
	}
	vx, vy := g.Cell(f.X, f.Y)
	g.set(vx, vy, 'o')
	g.label(vx+2, vy, f.Name)
}

// drawLine steps cell by cell; paths are orthogonal so one axis is constant
// (legacy diagonals step both).
func (g *Grid) drawLine(ax, ay, bx, by int) {
	dx := sign(bx - ax)
	dy := sign(by - ay)
	r := '-'
	if dx == 0 {
		r = '|'
	}
	x, y := ax, ay
	for {
		g.set(x, y, r)
		if x == bx && y == by {
			return
		}
		if x != bx {
			x += dx
		}
		if y != by {
			y += dy
		}
	}
}

func (g *Grid) drawStock(s core.Stock) {
	hw, hh := core.StockWidth/2, core.StockHeight/2
	x0, y0 := g.Cell(s.X-hw, s.Y-hh)
	x1, y1 := g.Cell(s.X+hw, s.Y+hh)
	for x := x0; x <= x1; x++ {
		g.set(x, y0, '-')
		g.set(x, y1, '-')
	}
	for y := y0; y <= y1; y++ {
		g.set(x0, y, '|')
		g.set(x1, y, '|')
	}
	g.set(x0, y0, '+')
	g.set(x1, y0, '+')
	g.set(x0, y1, '+')
	g.set(x1, y1, '+')

	cx, cy := g.Cell(s.X, s.Y)
	g.labelCentered(cx, cy, s.Name, x1-x0-1)
}

func (g *Grid) label(cx, cy int, text string) {
	for i, r := range text {
		g.set(cx+i, cy, r)
	}
}

func (g *Grid) labelCentered(cx, cy int, text string, maxLen int) {
	rs := []rune(text)
	if maxLen > 0 && len(rs) > maxLen {
		rs = rs[:maxLen]
	}
	start := cx - len(rs)/2
	for i, r := range rs {
		g.set(start+i, cy, r)
	}
}

// bounds returns the diagram extent over all positioned elements and flow
// path points.
func bounds(elements []core.Element) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	grow := func(x, y float64) {
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	for _, el := range elements {
		switch v := el.(type) {
		case core.Link:
			// positioned by its endpoints
		case core.Flow:
			grow(v.X, v.Y)
			for _, p := range v.Points {
				grow(p.X, p.Y)
			}
		case core.Stock:
			grow(v.X-core.StockWidth/2, v.Y-core.StockHeight/2)
			grow(v.X+core.StockWidth/2, v.Y+core.StockHeight/2)
		default:
			x, y := core.Position(el)
			grow(x, y)
		}
	}
	if math.IsInf(minX, 1) {
		return 0, 0, 100, 100
	}
	return minX, minY, maxX, maxY
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
