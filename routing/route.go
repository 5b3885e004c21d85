// Package routing recomputes flow paths as their endpoint stocks move,
// keeping every router-produced segment exactly horizontal or vertical and
// free of redundant corners.
package routing

import (
	"math"

	"stockflow/core"
	"stockflow/geometry"
)

// RouteFlow recomputes the flow's path and valve position for a stock that
// moved to (newX, newY).
//
// The flow is returned unchanged when its path has fewer than two points or
// when neither terminus is attached to the given stock. Short paths (two or
// three points) are re-derived from scratch: they stay straight while the
// anchor endpoint lies within the stock's edge band, and otherwise form an
// L-shape that preserves the orientation of the segment entering the anchor.
// Longer paths are adjusted locally: only the stock-adjacent point and its
// neighbour corner move, taking their axis from the existing segment rather
// than from the new bearing so the path does not flip near 45°.
func RouteFlow(flow core.Flow, stock core.Stock, newX, newY float64) core.Flow {
	pts := flow.Points
	if len(pts) < 2 {
		return flow
	}

	last := len(pts) - 1
	var stockIdx int
	switch {
	case pts[0].AttachedToUID == stock.ID:
		stockIdx = 0
	case pts[last].AttachedToUID == stock.ID:
		stockIdx = last
	default:
		return flow
	}

	if len(pts) <= 3 {
		return routeShort(flow, stockIdx, newX, newY)
	}
	return routeLong(flow, stockIdx, newX, newY)
}

// routeShort handles straight and L-shaped paths, deciding anew between the
// two forms from the anchor's position relative to the moved stock.
func routeShort(flow core.Flow, stockIdx int, newX, newY float64) core.Flow {
	pts := flow.Points
	last := len(pts) - 1
	anchorIdx := last
	if stockIdx != 0 {
		anchorIdx = 0
	}
	anchor := pts[anchorIdx]
	attachID := pts[stockIdx].AttachedToUID

	hw, hh := core.StockWidth/2, core.StockHeight/2

	// Orientation of the segment entering the anchor. This, not the new
	// bearing, decides which way an L-shape bends, so a drag crossing 45°
	// does not flip the path.
	adj := pts[1]
	if anchorIdx != 0 {
		adj = pts[last-1]
	}
	approach := orient(anchor, adj)
	if approach == Diagonal || geometry.AlmostEqualPoints(pt(anchor), pt(adj)) {
		if math.Abs(anchor.X-newX) > math.Abs(anchor.Y-newY) {
			approach = Horizontal
		} else {
			approach = Vertical
		}
	}

	inVBand := math.Abs(anchor.Y-newY) <= hh
	inHBand := math.Abs(anchor.X-newX) <= hw
	valve := geometry.Point{X: flow.X, Y: flow.Y}
	out := flow

	straight := func(stockPt core.Point) core.Flow {
		// The valve keeps its fractional position measured from the
		// anchor end, so dragging the stock past it never snaps it.
		frac := valveFraction(pts, anchorIdx, valve)
		var np []core.Point
		if stockIdx == 0 {
			np = []core.Point{stockPt, anchor}
		} else {
			np = []core.Point{anchor, stockPt}
		}
		v := geometry.Lerp(pt(anchor), pt(stockPt), frac)
		out.Points = np
		out.X, out.Y = v.X, v.Y
		return out
	}

	switch {
	case inVBand && (approach == Horizontal || !inHBand):
		sx := newX + hw
		if anchor.X < newX {
			sx = newX - hw
		}
		return straight(core.Point{X: sx, Y: anchor.Y, AttachedToUID: attachID})
	case inHBand:
		sy := newY + hh
		if anchor.Y < newY {
			sy = newY - hh
		}
		return straight(core.Point{X: anchor.X, Y: sy, AttachedToUID: attachID})
	}

	// L-shape: the stock attaches mid-edge on the edge facing the anchor,
	// and the corner completes the anchor's approach orientation. The valve
	// keeps its fraction along its containing segment, so a stock dragged
	// past it never snaps it to the segment end.
	fromAnchor, tFrac := valveSegmentFraction(pts, stockIdx == 0, valve)
	var stockPt, corner core.Point
	if approach == Horizontal {
		sy := newY + hh
		if anchor.Y < newY {
			sy = newY - hh
		}
		stockPt = core.Point{X: newX, Y: sy, AttachedToUID: attachID}
		corner = core.Point{X: newX, Y: anchor.Y}
	} else {
		sx := newX + hw
		if anchor.X < newX {
			sx = newX - hw
		}
		stockPt = core.Point{X: sx, Y: newY, AttachedToUID: attachID}
		corner = core.Point{X: anchor.X, Y: newY}
	}

	var np []core.Point
	if stockIdx == 0 {
		np = []core.Point{stockPt, corner, anchor}
	} else {
		np = []core.Point{anchor, corner, stockPt}
	}
	np = Normalize(np)
	v := valveAtFraction(np, stockIdx == 0, fromAnchor, tFrac)
	out.Points = np
	out.X, out.Y = v.X, v.Y
	return out
}

// routeLong recomputes only the stock-adjacent point and its neighbour
// corner; everything beyond the first corner is left untouched. The valve
// keeps its fraction along its containing segment.
func routeLong(flow core.Flow, stockIdx int, newX, newY float64) core.Flow {
	valve := geometry.Point{X: flow.X, Y: flow.Y}
	fromAnchor, tFrac := valveSegmentFraction(flow.Points, stockIdx == 0, valve)

	pts := flow.ClonePoints()
	last := len(pts) - 1
	p0i, p1i := 0, 1
	if stockIdx != 0 {
		p0i, p1i = last, last-1
	}
	p0, p1 := pts[p0i], pts[p1i]
	attachID := p0.AttachedToUID

	hw, hh := core.StockWidth/2, core.StockHeight/2

	o := orient(p0, p1)
	if o == Diagonal || geometry.AlmostEqualPoints(pt(p0), pt(p1)) {
		// Legacy or degenerate stock segment: fall back to bearing
		// dominance against the corner.
		if math.Abs(p1.X-newX) > math.Abs(p1.Y-newY) {
			o = Horizontal
		} else {
			o = Vertical
		}
	}

	if o == Vertical {
		sy := newY + hh
		if p1.Y < newY {
			sy = newY - hh
		}
		pts[p0i] = core.Point{X: newX, Y: sy, AttachedToUID: attachID}
		pts[p1i] = core.Point{X: newX, Y: p1.Y, AttachedToUID: p1.AttachedToUID}
	} else {
		sx := newX + hw
		if p1.X < newX {
			sx = newX - hw
		}
		pts[p0i] = core.Point{X: sx, Y: newY, AttachedToUID: attachID}
		pts[p1i] = core.Point{X: p1.X, Y: newY, AttachedToUID: p1.AttachedToUID}
	}

	pts = Normalize(pts)
	v := valveAtFraction(pts, stockIdx == 0, fromAnchor, tFrac)
	out := flow
	out.Points = pts
	out.X, out.Y = v.X, v.Y
	return out
}

// valveSegmentFraction locates the segment containing the valve and returns
// its index counted from the anchor end, plus the valve's fraction along it.
// Counting from the anchor end keeps the index stable when corners merge away
// at the stock end.
func valveSegmentFraction(pts []core.Point, stockFirst bool, valve geometry.Point) (int, float64) {
	seg, t := 0, 0.0
	bestDist := math.Inf(1)
	for i := 0; i < len(pts)-1; i++ {
		q, ti := geometry.ProjectOntoSegment(valve, pt(pts[i]), pt(pts[i+1]))
		if d := geometry.Distance(valve, q); d < bestDist {
			bestDist, seg, t = d, i, ti
		}
	}
	if stockFirst {
		return len(pts) - 2 - seg, t
	}
	return seg, t
}

// valveAtFraction re-applies a segment fraction from valveSegmentFraction to
// the rebuilt path, clamping the index when the path lost segments.
func valveAtFraction(pts []core.Point, stockFirst bool, fromAnchor int, t float64) geometry.Point {
	lastSeg := len(pts) - 2
	seg := fromAnchor
	if stockFirst {
		seg = lastSeg - fromAnchor
	}
	if seg < 0 {
		seg = 0
	}
	if seg > lastSeg {
		seg = lastSeg
	}
	return geometry.Lerp(pt(pts[seg]), pt(pts[seg+1]), t)
}

// valveFraction returns the valve's arc-length position along the path as a
// fraction in [0, 1] measured from the anchor end.
func valveFraction(pts []core.Point, anchorIdx int, valve geometry.Point) float64 {
	ordered := pts
	if anchorIdx != 0 {
		ordered = make([]core.Point, len(pts))
		for i, p := range pts {
			ordered[len(pts)-1-i] = p
		}
	}

	total := 0.0
	for i := 0; i < len(ordered)-1; i++ {
		total += geometry.Distance(pt(ordered[i]), pt(ordered[i+1]))
	}
	if total < geometry.Epsilon {
		return 0.5
	}

	bestDist := math.Inf(1)
	bestLen := 0.0
	run := 0.0
	for i := 0; i < len(ordered)-1; i++ {
		a, b := pt(ordered[i]), pt(ordered[i+1])
		segLen := geometry.Distance(a, b)
		q, t := geometry.ProjectOntoSegment(valve, a, b)
		if d := geometry.Distance(valve, q); d < bestDist {
			bestDist = d
			bestLen = run + t*segLen
		}
		run += segLen
	}

	f := bestLen / total
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
