package drag

import (
	"testing"

	"stockflow/core"
	"stockflow/geometry"
)

func TestApplyGroupMovementTranslations(t *testing.T) {
	elements := []core.Element{
		core.Stock{ID: 1, X: 100, Y: 100},
		core.Aux{ID: 2, X: 200, Y: 200},
		core.Module{ID: 3, X: 300, Y: 300},
		core.Cloud{ID: 9, X: 50, Y: 50}, // orphan: no flow references it
	}
	sel := map[int]bool{1: true, 2: true, 3: true, 9: true}

	changed := ApplyGroupMovement(elements, sel, geometry.Point{X: 10, Y: -20}, nil, -1)
	if len(changed) != 4 {
		t.Fatalf("got %d changed elements, want 4", len(changed))
	}
	wants := map[int][2]float64{
		1: {90, 120},
		2: {190, 220},
		3: {290, 320},
		9: {40, 70},
	}
	for uid, want := range wants {
		x, y := core.Position(changed[uid])
		if !geometry.AlmostEqual(x, want[0]) || !geometry.AlmostEqual(y, want[1]) {
			t.Errorf("element %d = (%v, %v), want (%v, %v)", uid, x, y, want[0], want[1])
		}
	}
}

func TestApplyGroupMovementFlowRigid(t *testing.T) {
	elements := []core.Element{
		core.Cloud{ID: 5, X: 0, Y: 0},
		core.Stock{ID: 1, X: 122.5, Y: 0},
		core.Flow{ID: 10, X: 50, Y: 0, Points: []core.Point{
			{X: 0, Y: 0, AttachedToUID: 5},
			{X: 100, Y: 0, AttachedToUID: 1},
		}},
	}
	sel := map[int]bool{5: true, 1: true}

	changed := ApplyGroupMovement(elements, sel, geometry.Point{X: -10, Y: -20}, nil, -1)

	f, ok := changed[10].(core.Flow)
	if !ok {
		t.Fatal("flow did not change")
	}
	checkValve(t, f, 60, 20)
	checkPath(t, f.Points, []core.Point{
		{X: 10, Y: 20, AttachedToUID: 5},
		{X: 110, Y: 20, AttachedToUID: 1},
	})
	c := changed[5].(core.Cloud)
	if !geometry.AlmostEqual(c.X, 10) || !geometry.AlmostEqual(c.Y, 20) {
		t.Errorf("cloud = (%v, %v), want (10, 20)", c.X, c.Y)
	}
}

func TestApplyGroupMovementFlowReroutes(t *testing.T) {
	elements := []core.Element{
		core.Stock{ID: 1, X: 100, Y: 100},
		core.Flow{ID: 10, X: 161.25, Y: 100, Points: []core.Point{
			{X: 122.5, Y: 100, AttachedToUID: 1},
			{X: 200, Y: 100},
		}},
	}
	sel := map[int]bool{1: true}

	changed := ApplyGroupMovement(elements, sel, geometry.Point{X: 0, Y: -50}, nil, -1)

	f := changed[10].(core.Flow)
	checkPath(t, f.Points, []core.Point{
		{X: 100, Y: 132.5, AttachedToUID: 1},
		{X: 100, Y: 100},
		{X: 200, Y: 100},
	})
}

func TestApplyGroupMovementFlowEndpointFollowsCloud(t *testing.T) {
	elements := []core.Element{
		core.Cloud{ID: 5, X: 0, Y: 0},
		core.Stock{ID: 1, X: 122.5, Y: 0},
		core.Flow{ID: 10, X: 50, Y: 0, Points: []core.Point{
			{X: 0, Y: 0, AttachedToUID: 5},
			{X: 100, Y: 0, AttachedToUID: 1},
		}},
	}
	sel := map[int]bool{5: true}

	changed := ApplyGroupMovement(elements, sel, geometry.Point{X: -20, Y: 0}, nil, -1)

	f := changed[10].(core.Flow)
	checkPath(t, f.Points, []core.Point{
		{X: 20, Y: 0, AttachedToUID: 5},
		{X: 100, Y: 0, AttachedToUID: 1},
	})
	c := changed[5].(core.Cloud)
	if !geometry.AlmostEqual(c.X, 20) || !geometry.AlmostEqual(c.Y, 0) {
		t.Errorf("cloud = (%v, %v), want (20, 0)", c.X, c.Y)
	}
}

func TestApplyGroupMovementZeroRadiusStockActsAsPoint(t *testing.T) {
	elements := []core.Element{
		core.Stock{ID: 7, X: 0, Y: 0, IsZeroRadius: true},
		core.Flow{ID: 10, X: 50, Y: 0, Points: []core.Point{
			{X: 0, Y: 0, AttachedToUID: 7},
			{X: 100, Y: 0},
		}},
	}
	sel := map[int]bool{7: true}

	changed := ApplyGroupMovement(elements, sel, geometry.Point{X: -20, Y: 0}, nil, -1)

	// A zero-radius placeholder drags like a point endpoint; no edge
	// derivation happens.
	f := changed[10].(core.Flow)
	checkPath(t, f.Points, []core.Point{
		{X: 20, Y: 0, AttachedToUID: 7},
		{X: 100, Y: 0},
	})
}

func TestApplyGroupMovementCloudOfDegenerateFlow(t *testing.T) {
	elements := []core.Element{
		core.Cloud{ID: 5, X: 0, Y: 0},
		core.Flow{ID: 10, X: 0, Y: 0, Points: []core.Point{
			{X: 0, Y: 0, AttachedToUID: 5},
		}},
	}
	sel := map[int]bool{5: true}

	// The referencing flow's path cannot route, so the cloud translates
	// like any free element instead of being stranded.
	changed := ApplyGroupMovement(elements, sel, geometry.Point{X: -10, Y: -20}, nil, -1)

	c, ok := changed[5].(core.Cloud)
	if !ok {
		t.Fatal("cloud did not move")
	}
	if !geometry.AlmostEqual(c.X, 10) || !geometry.AlmostEqual(c.Y, 20) {
		t.Errorf("cloud = (%v, %v), want (10, 20)", c.X, c.Y)
	}
	if _, ok := changed[10]; ok {
		t.Error("degenerate flow should be untouched")
	}
}

func TestApplyGroupMovementValveOnly(t *testing.T) {
	elements := []core.Element{
		core.Flow{ID: 10, X: 50, Y: 0, Points: []core.Point{
			{X: 0, Y: 0},
			{X: 100, Y: 0},
		}},
	}
	sel := map[int]bool{10: true}

	changed := ApplyGroupMovement(elements, sel, geometry.Point{X: -20, Y: -3}, nil, -1)

	f := changed[10].(core.Flow)
	checkValve(t, f, 70, 0)
	if len(f.Points) != 2 {
		t.Errorf("path changed shape: %v", f.Points)
	}
}

func TestApplyGroupMovementSpreadsFlows(t *testing.T) {
	elements := []core.Element{
		core.Stock{ID: 1, X: 100, Y: 200},
		core.Flow{ID: 10, X: 100, Y: 100, Points: []core.Point{
			{X: 50, Y: 20},
			{X: 100, Y: 20},
			{X: 100, Y: 182.5, AttachedToUID: 1},
		}},
		core.Flow{ID: 11, X: 100, Y: 120, Points: []core.Point{
			{X: 150, Y: 20},
			{X: 100, Y: 20},
			{X: 100, Y: 182.5, AttachedToUID: 1},
		}},
	}
	sel := map[int]bool{1: true}

	// The stock rises to (100, 100); both flows reroute onto its top edge
	// and are spread at thirds of the edge width, ordered by far-anchor x.
	changed := ApplyGroupMovement(elements, sel, geometry.Point{X: 0, Y: 100}, nil, -1)

	fa := changed[10].(core.Flow)
	checkPath(t, fa.Points, []core.Point{
		{X: 50, Y: 20},
		{X: 92.5, Y: 20},
		{X: 92.5, Y: 82.5, AttachedToUID: 1},
	})
	fb := changed[11].(core.Flow)
	checkPath(t, fb.Points, []core.Point{
		{X: 150, Y: 20},
		{X: 107.5, Y: 20},
		{X: 107.5, Y: 82.5, AttachedToUID: 1},
	})
}

func TestApplyGroupMovementStraightFlowHoldsItsSlot(t *testing.T) {
	elements := []core.Element{
		core.Stock{ID: 1, X: 100, Y: 200},
		// Stays straight through the move: its anchor sits in the stock's
		// horizontal band the whole way.
		core.Flow{ID: 10, X: 100, Y: 150, Points: []core.Point{
			{X: 100, Y: 20},
			{X: 100, Y: 182.5, AttachedToUID: 1},
		}},
		core.Flow{ID: 11, X: 100, Y: 120, Points: []core.Point{
			{X: 150, Y: 20},
			{X: 100, Y: 20},
			{X: 100, Y: 182.5, AttachedToUID: 1},
		}},
	}
	sel := map[int]bool{1: true}

	changed := ApplyGroupMovement(elements, sel, geometry.Point{X: 0, Y: 100}, nil, -1)

	// The straight flow keeps its anchor-aligned attachment but occupies
	// slot one, pushing the L-shaped flow to the second third.
	fa := changed[10].(core.Flow)
	checkPath(t, fa.Points, []core.Point{
		{X: 100, Y: 20},
		{X: 100, Y: 82.5, AttachedToUID: 1},
	})
	fb := changed[11].(core.Flow)
	checkPath(t, fb.Points, []core.Point{
		{X: 150, Y: 20},
		{X: 107.5, Y: 20},
		{X: 107.5, Y: 82.5, AttachedToUID: 1},
	})
}

func TestApplyGroupMovementLinkArc(t *testing.T) {
	elements := []core.Element{
		core.Aux{ID: 2, X: 100, Y: 0},
		core.Aux{ID: 3, X: 0, Y: 0},
		core.Link{ID: 20, FromUID: 3, ToUID: 2, Arc: 0},
	}
	sel := map[int]bool{2: true}

	// Aux 2 moves to (100, 100): the endpoint bearing rotates by +45
	// degrees, so the arc compensates by -45 to keep the curve's shape.
	changed := ApplyGroupMovement(elements, sel, geometry.Point{X: 0, Y: -100}, nil, -1)

	l, ok := changed[20].(core.Link)
	if !ok {
		t.Fatal("link did not change")
	}
	if !geometry.AlmostEqual(l.Arc, -45) {
		t.Errorf("arc = %v, want -45", l.Arc)
	}
}

func TestApplyGroupMovementLinkBothEndpoints(t *testing.T) {
	elements := []core.Element{
		core.Aux{ID: 2, X: 100, Y: 0},
		core.Aux{ID: 3, X: 0, Y: 0},
		core.Link{ID: 20, FromUID: 3, ToUID: 2, Arc: 30},
	}
	sel := map[int]bool{2: true, 3: true}

	changed := ApplyGroupMovement(elements, sel, geometry.Point{X: -10, Y: -10}, nil, -1)
	if _, ok := changed[20]; ok {
		t.Error("arc should be unchanged when both endpoints move together")
	}
}

func TestApplyGroupMovementLinkArcPoint(t *testing.T) {
	elements := []core.Element{
		core.Aux{ID: 2, X: 100, Y: 0},
		core.Aux{ID: 3, X: 0, Y: 0},
		core.Link{ID: 20, FromUID: 3, ToUID: 2, Arc: 0},
	}
	sel := map[int]bool{20: true}
	arcPoint := geometry.Point{X: 50, Y: 50}

	changed := ApplyGroupMovement(elements, sel, geometry.Point{}, &arcPoint, -1)

	l := changed[20].(core.Link)
	if !geometry.AlmostEqual(l.Arc, -90) {
		t.Errorf("arc = %v, want -90", l.Arc)
	}
}
