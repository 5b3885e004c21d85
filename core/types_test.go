package core

import "testing"

func TestCapabilityQueries(t *testing.T) {
	tests := []struct {
		name    string
		el      Element
		rect    bool
		circle  bool
		isPoint bool
	}{
		{"stock", Stock{ID: 1}, true, false, false},
		{"zero-radius stock", Stock{ID: 1, IsZeroRadius: true}, false, false, true},
		{"module", Module{ID: 2}, true, false, false},
		{"aux", Aux{ID: 3}, false, true, false},
		{"zero-radius aux", Aux{ID: 3, IsZeroRadius: true}, false, false, true},
		{"flow", Flow{ID: 4}, false, true, false},
		{"cloud", Cloud{ID: 5}, false, false, true},
		{"link", Link{ID: 6}, false, false, true},
		{"alias", Alias{ID: 7}, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasRectBody(tt.el); got != tt.rect {
				t.Errorf("HasRectBody = %v, want %v", got, tt.rect)
			}
			if got := HasCircleBody(tt.el); got != tt.circle {
				t.Errorf("HasCircleBody = %v, want %v", got, tt.circle)
			}
			if got := IsPoint(tt.el); got != tt.isPoint {
				t.Errorf("IsPoint = %v, want %v", got, tt.isPoint)
			}
		})
	}
}

func TestFlowTermini(t *testing.T) {
	f := Flow{
		ID: 10,
		Points: []Point{
			{X: 0, Y: 0, AttachedToUID: 1},
			{X: 50, Y: 0},
			{X: 50, Y: 50, AttachedToUID: 2},
		},
	}

	if got := f.SourceUID(); got != 1 {
		t.Errorf("SourceUID = %d, want 1", got)
	}
	if got := f.SinkUID(); got != 2 {
		t.Errorf("SinkUID = %d, want 2", got)
	}
	if !f.AttachedTo(1) || !f.AttachedTo(2) {
		t.Error("AttachedTo should report both termini")
	}
	if f.AttachedTo(3) {
		t.Error("AttachedTo(3) = true, want false")
	}
	if f.AttachedTo(0) {
		t.Error("AttachedTo(0) = true, want false: zero means unattached")
	}

	empty := Flow{ID: 11}
	if empty.SourceUID() != 0 || empty.SinkUID() != 0 {
		t.Error("empty flow should have no termini")
	}
}

func TestClonePointsIsIndependent(t *testing.T) {
	f := Flow{ID: 1, Points: []Point{{X: 0, Y: 0}, {X: 10, Y: 0}}}
	pts := f.ClonePoints()
	pts[0].X = 99
	if f.Points[0].X != 0 {
		t.Errorf("mutating the clone changed the original: got %v", f.Points[0].X)
	}
}

func TestPosition(t *testing.T) {
	tests := []struct {
		name string
		el   Element
		x, y float64
	}{
		{"stock", Stock{X: 10, Y: 20}, 10, 20},
		{"flow valve", Flow{X: 5, Y: 6}, 5, 6},
		{"link has no position", Link{ID: 1}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := Position(tt.el)
			if x != tt.x || y != tt.y {
				t.Errorf("got (%v, %v), want (%v, %v)", x, y, tt.x, tt.y)
			}
		})
	}
}

func TestHalfExtentsAndRadius(t *testing.T) {
	if hw, hh := HalfExtents(Stock{}); hw != StockWidth/2 || hh != StockHeight/2 {
		t.Errorf("stock half extents = (%v, %v)", hw, hh)
	}
	if hw, hh := HalfExtents(Aux{}); hw != 0 || hh != 0 {
		t.Errorf("aux half extents = (%v, %v), want zeros", hw, hh)
	}
	if r := Radius(Aux{}); r != AuxRadius {
		t.Errorf("aux radius = %v, want %v", r, AuxRadius)
	}
	if r := Radius(Flow{}); r != ValveRadius {
		t.Errorf("flow radius = %v, want %v", r, ValveRadius)
	}
	if r := Radius(Stock{}); r != 0 {
		t.Errorf("stock radius = %v, want 0", r)
	}
}
