package drag

import (
	"sort"

	"stockflow/core"
	"stockflow/geometry"
	"stockflow/routing"
)

// stock edge names, for flow spreading.
type side int

const (
	sideNone side = iota
	sideTop
	sideBottom
	sideLeft
	sideRight
)

// ApplyGroupMovement moves a selection of elements by delta and returns only
// the elements that changed, keyed by UID. The caller merges the result into
// its own view model.
//
// Dispatch per selected element: stocks, auxes, modules, aliases and groups
// translate. A flow translates rigidly when both termini are selected,
// reroutes when exactly one is, and slides only its valve when neither is;
// segment names an interior flow segment to drag instead (-1 for none).
// A link keeps its arc when both endpoints move together, recomputes it to
// preserve the curve's shape when exactly one endpoint moves, and takes its
// curvature from arcPoint when only the link itself is selected. Flows that
// were rerouted against a moved stock and share one of its edges are spread
// at k/(n+1) fractions of the edge, ordered by far-anchor coordinate.
func ApplyGroupMovement(elements []core.Element, selection map[int]bool, delta geometry.Point, arcPoint *geometry.Point, segment int) map[int]core.Element {
	// Materialize the element set before any pass: callers may hand in a
	// one-shot sequence, and every pass below needs the full set.
	all := append([]core.Element(nil), elements...)
	byID := make(map[int]core.Element, len(all))
	for _, el := range all {
		byID[el.UID()] = el
	}

	selected := func(uid int) bool { return uid != 0 && selection[uid] }

	// Clouds are repositioned through their flow's endpoint rules; a cloud
	// translates on its own only when no routable flow references it. A
	// degenerate path cannot route, so its cloud falls through to plain
	// translation.
	flowClouds := make(map[int]bool)
	for _, el := range all {
		if f, ok := el.(core.Flow); ok && len(f.Points) >= 2 {
			if uid := f.SourceUID(); uid != 0 {
				flowClouds[uid] = true
			}
			if uid := f.SinkUID(); uid != 0 {
				flowClouds[uid] = true
			}
		}
	}

	changed := make(map[int]core.Element)

	// Pass 1: plain translations.
	for _, el := range all {
		if !selected(el.UID()) {
			continue
		}
		switch el.(type) {
		case core.Stock, core.Aux, core.Module, core.Alias, core.Group:
			x, y := core.Position(el)
			changed[el.UID()] = moveTo(el, x-delta.X, y-delta.Y)
		case core.Cloud:
			if !flowClouds[el.UID()] {
				x, y := core.Position(el)
				changed[el.UID()] = moveTo(el, x-delta.X, y-delta.Y)
			}
		}
	}

	// Pass 2: flows. Collect the flows rerouted against each moved stock
	// for the spreading pass.
	reroutedByStock := make(map[int][]core.Flow)
	for _, el := range all {
		f, ok := el.(core.Flow)
		if !ok || len(f.Points) < 2 {
			continue
		}

		srcSel := selected(f.SourceUID())
		sinkSel := selected(f.SinkUID())

		switch {
		case srcSel && sinkSel:
			changed[f.ID] = translateFlow(f, delta)
			for _, uid := range [2]int{f.SourceUID(), f.SinkUID()} {
				if c, ok := byID[uid].(core.Cloud); ok && selected(uid) {
					changed[uid] = moveTo(c, c.X-delta.X, c.Y-delta.Y)
				}
			}

		case srcSel != sinkSel:
			uid := f.SourceUID()
			if sinkSel {
				uid = f.SinkUID()
			}
			attached, ok := byID[uid]
			if !ok {
				continue
			}
			// Zero-radius placeholders follow the endpoint rules like
			// clouds, whatever their nominal kind.
			if s, isStock := attached.(core.Stock); isStock && !s.IsZeroRadius {
				moved, ok := changed[uid].(core.Stock)
				if !ok {
					moved = s
				}
				nf := routing.RouteFlow(f, moved, moved.X, moved.Y)
				changed[f.ID] = nf
				reroutedByStock[uid] = append(reroutedByStock[uid], nf)
			} else if core.IsPoint(attached) {
				nc, nf := MoveFlowEndpoint(attached, f, delta)
				changed[uid] = nc
				changed[f.ID] = nf
			}

		case selection[f.ID]:
			nf, extra := MoveFlow(f, byID, delta, segment)
			changed[f.ID] = nf
			for _, e := range extra {
				changed[e.UID()] = e
			}
		}
	}

	// Pass 3: spread flows sharing a moved stock's edge.
	for uid, flows := range reroutedByStock {
		stock, ok := changed[uid].(core.Stock)
		if !ok || len(flows) < 2 {
			continue
		}
		for _, nf := range spreadFlows(stock, flows) {
			changed[nf.ID] = nf
		}
	}

	// Pass 4: links, against post-move endpoint positions.
	positionOf := func(uid int) (geometry.Point, bool) {
		el, ok := byID[uid]
		if !ok {
			return geometry.Point{}, false
		}
		x, y := core.Position(el)
		return geometry.Point{X: x, Y: y}, true
	}
	newPositionOf := func(uid int) (geometry.Point, bool) {
		if el, ok := changed[uid]; ok {
			x, y := core.Position(el)
			return geometry.Point{X: x, Y: y}, true
		}
		return positionOf(uid)
	}

	for _, el := range all {
		l, ok := el.(core.Link)
		if !ok {
			continue
		}
		fromSel, toSel := selected(l.FromUID), selected(l.ToUID)

		switch {
		case fromSel && toSel:
			// Both endpoints move together; the arc is unchanged.

		case fromSel || toSel:
			oldFrom, ok1 := positionOf(l.FromUID)
			oldTo, ok2 := positionOf(l.ToUID)
			if !ok1 || !ok2 {
				continue
			}
			newFrom, _ := newPositionOf(l.FromUID)
			newTo, _ := newPositionOf(l.ToUID)
			if arc := UpdateArcAngle(l.Arc, oldFrom, oldTo, newFrom, newTo); !geometry.AlmostEqual(arc, l.Arc) {
				l.Arc = arc
				changed[l.ID] = l
			}

		case selection[l.ID] && arcPoint != nil:
			from, ok1 := newPositionOf(l.FromUID)
			to, ok2 := newPositionOf(l.ToUID)
			if !ok1 || !ok2 {
				continue
			}
			l.Arc = ArcFromPoint(from, to, *arcPoint)
			changed[l.ID] = l
		}
	}

	return changed
}

// translateFlow moves a flow's whole path and valve rigidly.
func translateFlow(f core.Flow, delta geometry.Point) core.Flow {
	out := f
	out.X -= delta.X
	out.Y -= delta.Y
	pts := f.ClonePoints()
	for i := range pts {
		pts[i].X -= delta.X
		pts[i].Y -= delta.Y
	}
	out.Points = pts
	return out
}

// attachSide reports which stock edge the point lies on.
func attachSide(p core.Point, s core.Stock) side {
	hw, hh := core.StockWidth/2, core.StockHeight/2
	switch {
	case geometry.AlmostEqual(p.Y, s.Y-hh):
		return sideTop
	case geometry.AlmostEqual(p.Y, s.Y+hh):
		return sideBottom
	case geometry.AlmostEqual(p.X, s.X-hw):
		return sideLeft
	case geometry.AlmostEqual(p.X, s.X+hw):
		return sideRight
	}
	return sideNone
}

// spreadFlows spaces the attachment points of flows sharing a stock edge at
// k/(n+1) fractions of the edge length, ordered by each flow's far-anchor
// coordinate so coincident corners cannot produce ties. Flows that stayed
// straight keep their anchor-aligned attachment but still occupy a slot, so
// a spread flow cannot land on top of one that is not.
func spreadFlows(stock core.Stock, flows []core.Flow) []core.Flow {
	hw, hh := core.StockWidth/2, core.StockHeight/2

	type entry struct {
		flow     core.Flow
		stockEnd int // index of the terminus attached to the stock
		anchor   float64
	}
	bySide := make(map[side][]entry)

	for _, f := range flows {
		last := len(f.Points) - 1
		stockEnd := 0
		if f.Points[last].AttachedToUID == stock.ID {
			stockEnd = last
		} else if f.Points[0].AttachedToUID != stock.ID {
			continue
		}
		anchorEnd := last - stockEnd

		sd := attachSide(f.Points[stockEnd], stock)
		if sd == sideNone {
			continue
		}
		anchor := f.Points[anchorEnd].X
		if sd == sideLeft || sd == sideRight {
			anchor = f.Points[anchorEnd].Y
		}
		bySide[sd] = append(bySide[sd], entry{flow: f, stockEnd: stockEnd, anchor: anchor})
	}

	var out []core.Flow
	for sd, entries := range bySide {
		n := len(entries)
		if n < 2 {
			continue
		}
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].anchor != entries[j].anchor {
				return entries[i].anchor < entries[j].anchor
			}
			return entries[i].flow.ID < entries[j].flow.ID
		})

		for k, e := range entries {
			// Straight flows keep their anchor-aligned attachment;
			// they only consume a slot.
			if len(e.flow.Points) < 3 {
				continue
			}
			var target float64
			if sd == sideTop || sd == sideBottom {
				target = stock.X - hw + float64(k+1)*core.StockWidth/float64(n+1)
			} else {
				target = stock.Y - hh + float64(k+1)*core.StockHeight/float64(n+1)
			}
			if nf, ok := repositionAttach(e.flow, e.stockEnd, sd, target); ok {
				out = append(out, nf)
			}
		}
	}
	return out
}

// repositionAttach slides a flow's stock-side terminus (and its neighbour
// corner) along the edge to the target coordinate, keeping the path
// orthogonal.
func repositionAttach(f core.Flow, stockEnd int, sd side, target float64) (core.Flow, bool) {
	pts := f.ClonePoints()
	last := len(pts) - 1
	cornerIdx := 1
	if stockEnd != 0 {
		cornerIdx = last - 1
	}

	// Only a stock-adjacent segment running perpendicular to the edge can
	// slide along it.
	o := routing.OrientationOf(pts[stockEnd], pts[cornerIdx])
	if sd == sideTop || sd == sideBottom {
		if o != routing.Vertical {
			return f, false
		}
		pts[stockEnd].X = target
		pts[cornerIdx].X = target
	} else {
		if o != routing.Horizontal {
			return f, false
		}
		pts[stockEnd].Y = target
		pts[cornerIdx].Y = target
	}

	pts = routing.Normalize(pts)
	v, _ := routing.NearestPointOnPath(pts, geometry.Point{X: f.X, Y: f.Y})
	out := f
	out.Points = pts
	out.X, out.Y = v.X, v.Y
	return out, true
}
