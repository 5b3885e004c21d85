package export

import (
	"strings"
	"testing"

	"stockflow/core"
)

func TestASCIIGridRendersFlowAndStock(t *testing.T) {
	elements := []core.Element{
		core.Stock{ID: 1, Name: "pop", X: 100, Y: 100},
		core.Flow{ID: 2, Name: "births", X: 200, Y: 100, Points: []core.Point{
			{X: 122.5, Y: 100, AttachedToUID: 1},
			{X: 280, Y: 100},
		}},
	}

	g := ASCIIGrid(elements)
	out := strings.Join(g.Lines(), "\n")

	for _, want := range []string{"pop", "births", "o", "+", "-", "|"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestASCIIGridMarksCorners(t *testing.T) {
	elements := []core.Element{
		core.Flow{ID: 2, X: 50, Y: 0, Points: []core.Point{
			{X: 0, Y: 0},
			{X: 100, Y: 0},
			{X: 100, Y: 100},
		}},
	}

	g := ASCIIGrid(elements)
	cx, cy := g.Cell(100, 0)
	if got := g.Cells[cy][cx]; got != '+' {
		t.Errorf("corner cell = %q, want '+'", got)
	}
	vx, vy := g.Cell(50, 0)
	if got := g.Cells[vy][vx]; got != 'o' {
		t.Errorf("valve cell = %q, want 'o'", got)
	}
}

func TestASCIIGridSkipsDegenerateFlow(t *testing.T) {
	elements := []core.Element{
		core.Stock{ID: 1, X: 0, Y: 0},
		core.Flow{ID: 2, X: 0, Y: 0, Points: []core.Point{{X: 0, Y: 0}}},
	}
	// Must not panic on a single-point path.
	ASCIIGrid(elements)
}

func TestBoundsIgnoresLinks(t *testing.T) {
	elements := []core.Element{
		core.Aux{ID: 1, X: 100, Y: 100},
		core.Aux{ID: 2, X: 120, Y: 100},
		core.Link{ID: 3, FromUID: 1, ToUID: 2},
	}
	minX, minY, _, _ := bounds(elements)
	// A link has no position of its own; it must not drag the bounds to
	// the origin.
	if minX < 99 || minY < 99 {
		t.Errorf("bounds = (%v, %v), want to start near (100, 100)", minX, minY)
	}
}

func TestBoundsEmpty(t *testing.T) {
	minX, minY, maxX, maxY := bounds(nil)
	if minX != 0 || minY != 0 || maxX != 100 || maxY != 100 {
		t.Errorf("got (%v, %v, %v, %v), want the default extent", minX, minY, maxX, maxY)
	}
}

func TestGridCellRoundTrip(t *testing.T) {
	g := &Grid{MinX: -16, MinY: -32}
	x, y := g.Cell(-16, -32)
	if x != 0 || y != 0 {
		t.Errorf("origin cell = (%d, %d), want (0, 0)", x, y)
	}
	x, y = g.Cell(-16+3*CellWidth, -32+2*CellHeight)
	if x != 3 || y != 2 {
		t.Errorf("cell = (%d, %d), want (3, 2)", x, y)
	}
}
