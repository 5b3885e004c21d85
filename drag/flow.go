// Package drag implements direct manipulation of diagram elements: valve
// and segment drags, flow endpoint drags, stock moves, and group movement.
//
// Every operation takes a snapshot and returns new values; deltas follow the
// editor's convention that a point's new coordinate is its old coordinate
// minus the delta.
package drag

import (
	"math"

	"stockflow/core"
	"stockflow/geometry"
	"stockflow/routing"
)

// MoveFlow applies a valve or segment drag to a flow. A segment index of -1
// means a valve drag. It returns the updated flow plus any other elements
// that moved with it (the cloud at an endpoint, when a straight path bends
// into an L-shape).
func MoveFlow(flow core.Flow, others map[int]core.Element, delta geometry.Point, segment int) (core.Flow, []core.Element) {
	out := flow

	if segment >= 0 {
		pts := routing.MoveSegment(flow.Points, segment, delta)
		v, _ := routing.NearestPointOnPath(pts, geometry.Point{X: flow.X, Y: flow.Y})
		out.Points = pts
		out.X, out.Y = v.X, v.Y
		return out, nil
	}

	proposed := geometry.Point{X: flow.X - delta.X, Y: flow.Y - delta.Y}
	pts := flow.Points

	if len(pts) == 2 {
		o := routing.OrientationOf(pts[0], pts[1])
		if o != routing.Diagonal {
			var par, perp float64
			if o == routing.Horizontal {
				par, perp = delta.X, delta.Y
			} else {
				par, perp = delta.Y, delta.X
			}
			if math.Abs(perp) > core.PerpDragThreshold && math.Abs(perp) > math.Abs(par) {
				if idx, ok := movableEndpoint(flow, others, proposed); ok {
					return bendFlow(flow, others, idx, o, perp)
				}
			}
		}
	}

	v := clampValve(pts, proposed)
	out.X, out.Y = v.X, v.Y
	return out, nil
}

// movableEndpoint picks the flow terminus a perpendicular drag may move:
// one that is unattached or attached to a point-like shape (a cloud or a
// zero-radius placeholder). Stock endpoints never move. With two candidates
// the one nearer the proposed valve position bends; ties go to the tail.
func movableEndpoint(flow core.Flow, others map[int]core.Element, proposed geometry.Point) (int, bool) {
	last := len(flow.Points) - 1
	free := func(p core.Point) bool {
		if p.AttachedToUID == 0 {
			return true
		}
		el, ok := others[p.AttachedToUID]
		return ok && core.IsPoint(el)
	}

	f0, f1 := free(flow.Points[0]), free(flow.Points[last])
	switch {
	case f0 && f1:
		d0 := geometry.Distance(proposed, pointOf(flow.Points[0]))
		d1 := geometry.Distance(proposed, pointOf(flow.Points[last]))
		if d0 < d1 {
			return 0, true
		}
		return last, true
	case f0:
		return 0, true
	case f1:
		return last, true
	}
	return 0, false
}

// bendFlow converts a straight flow into an L-shape: the endpoint at idx
// moves perpendicular to the old axis, a corner is inserted at its old
// position, and the endpoint's owning cloud follows it.
func bendFlow(flow core.Flow, others map[int]core.Element, idx int, o routing.Orientation, perp float64) (core.Flow, []core.Element) {
	pts := flow.Points
	last := len(pts) - 1

	old := pts[idx]
	moved := old
	if o == routing.Horizontal {
		moved.Y -= perp
	} else {
		moved.X -= perp
	}
	corner := core.Point{X: old.X, Y: old.Y}

	var np []core.Point
	if idx == 0 {
		np = []core.Point{moved, corner, pts[last]}
	} else {
		np = []core.Point{pts[0], corner, moved}
	}

	out := flow
	out.Points = np
	v, _ := routing.NearestPointOnPath(np, geometry.Point{X: flow.X, Y: flow.Y})
	out.X, out.Y = v.X, v.Y

	var extra []core.Element
	if old.AttachedToUID != 0 {
		if c, ok := others[old.AttachedToUID].(core.Cloud); ok {
			c.X, c.Y = moved.X, moved.Y
			extra = append(extra, c)
		}
	}
	return out, extra
}

// MoveFlowEndpoint drags one terminus of a flow. endpoint is the element
// the terminus is attached to: a cloud or zero-radius placeholder follows
// the drag under the perpendicular/parallel rules, while a stock (the
// terminus having been attached to it by the editor) pins the terminus to
// whichever of its edges faces the path interior, re-derived from scratch.
// The flow is returned unchanged when neither terminus is attached to
// endpoint.
func MoveFlowEndpoint(endpoint core.Element, flow core.Flow, delta geometry.Point) (core.Element, core.Flow) {
	pts := flow.Points
	if len(pts) < 2 {
		return endpoint, flow
	}

	last := len(pts) - 1
	var idx int
	switch {
	case pts[0].AttachedToUID == endpoint.UID():
		idx = 0
	case pts[last].AttachedToUID == endpoint.UID():
		idx = last
	default:
		return endpoint, flow
	}

	// A zero-radius placeholder is a point regardless of its kind, so the
	// rect-body check already excludes it.
	if core.HasRectBody(endpoint) {
		if s, ok := endpoint.(core.Stock); ok {
			return endpoint, routing.RouteFlow(flow, s, s.X, s.Y)
		}
		return endpoint, flow
	}

	adjIdx := 1
	if idx != 0 {
		adjIdx = last - 1
	}
	term, adjacent := pts[idx], pts[adjIdx]

	o := routing.OrientationOf(term, adjacent)
	if o == routing.Diagonal || geometry.AlmostEqualPoints(pointOf(term), pointOf(adjacent)) {
		// Degenerate or legacy segment: the drag direction decides the
		// new axis.
		if math.Abs(delta.X) > math.Abs(delta.Y) {
			o = routing.Horizontal
		} else {
			o = routing.Vertical
		}
	}

	var par, perp float64
	if o == routing.Horizontal {
		par, perp = delta.X, delta.Y
	} else {
		par, perp = delta.Y, delta.X
	}

	npts := flow.ClonePoints()
	moved := term
	if math.Abs(perp) > core.PerpDragThreshold && math.Abs(perp) > math.Abs(par) {
		if o == routing.Horizontal {
			moved.Y -= perp
		} else {
			moved.X -= perp
		}
		corner := core.Point{X: term.X, Y: term.Y}
		if idx == 0 {
			npts = append([]core.Point{moved, corner}, npts[1:]...)
		} else {
			npts = append(npts[:last], corner, moved)
		}
	} else {
		if o == routing.Horizontal {
			moved.X -= par
		} else {
			moved.Y -= par
		}
		npts[idx] = moved
	}

	npts = routing.Normalize(npts)
	v, _ := routing.NearestPointOnPath(npts, geometry.Point{X: flow.X, Y: flow.Y})
	out := flow
	out.Points = npts
	out.X, out.Y = v.X, v.Y

	return moveTo(endpoint, moved.X, moved.Y), out
}

// MoveStock translates the stock by delta and reroutes every attached flow
// against its new center.
func MoveStock(stock core.Stock, flows []core.Flow, delta geometry.Point) (core.Stock, []core.Flow) {
	moved := stock
	moved.X -= delta.X
	moved.Y -= delta.Y

	out := make([]core.Flow, len(flows))
	for i, f := range flows {
		out[i] = routing.RouteFlow(f, moved, moved.X, moved.Y)
	}
	return moved, out
}

// clampValve projects p onto the path's nearest segment, keeping it at
// least ValveMargin away from the segment ends and collapsing to the
// midpoint when the segment is shorter than twice the margin.
func clampValve(pts []core.Point, p geometry.Point) geometry.Point {
	if len(pts) == 0 {
		return p
	}
	if len(pts) == 1 {
		return pointOf(pts[0])
	}

	_, seg := routing.NearestPointOnPath(pts, p)
	a, b := pointOf(pts[seg]), pointOf(pts[seg+1])
	l := geometry.Distance(a, b)
	if l < 2*core.ValveMargin {
		return geometry.Lerp(a, b, 0.5)
	}

	_, t := geometry.ProjectOntoSegment(p, a, b)
	tmin := core.ValveMargin / l
	if t < tmin {
		t = tmin
	} else if t > 1-tmin {
		t = 1 - tmin
	}
	return geometry.Lerp(a, b, t)
}

func pointOf(p core.Point) geometry.Point {
	return geometry.Point{X: p.X, Y: p.Y}
}

// moveTo returns a copy of el repositioned at (x, y).
func moveTo(el core.Element, x, y float64) core.Element {
	switch v := el.(type) {
	case core.Stock:
		v.X, v.Y = x, y
		return v
	case core.Cloud:
		v.X, v.Y = x, y
		return v
	case core.Aux:
		v.X, v.Y = x, y
		return v
	case core.Flow:
		v.X, v.Y = x, y
		return v
	case core.Module:
		v.X, v.Y = x, y
		return v
	case core.Alias:
		v.X, v.Y = x, y
		return v
	case core.Group:
		v.X, v.Y = x, y
		return v
	}
	return el
}
