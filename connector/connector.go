// Package connector resolves where straight and arced connectors meet an
// element's boundary: the rectangle edge for stocks and modules, the body
// circle for auxes and flow valves, and the point itself for clouds.
package connector

import (
	"math"
	"sort"

	"stockflow/core"
	"stockflow/geometry"
)

// VisualCenter returns the center an element is rendered around. Arrayed
// elements draw slightly up and to the left of their logical center, except
// while they are zero-radius drag placeholders.
func VisualCenter(el core.Element) geometry.Point {
	x, y := core.Position(el)
	if core.IsArrayed(el) && !core.IsZeroRadius(el) {
		return geometry.Point{X: x - core.ArrayedOffset, Y: y - core.ArrayedOffset}
	}
	return geometry.Point{X: x, Y: y}
}

// IntersectElementStraight returns the point where a ray leaving the
// element's visual center at angle theta crosses its boundary.
func IntersectElementStraight(el core.Element, theta float64) geometry.Point {
	c := VisualCenter(el)
	switch {
	case core.HasRectBody(el):
		hw, hh := core.HalfExtents(el)
		return geometry.RayRectIntersection(c.X, c.Y, hw, hh, theta)
	case core.HasCircleBody(el):
		r := core.Radius(el)
		return geometry.Point{X: c.X + r*math.Cos(theta), Y: c.Y + r*math.Sin(theta)}
	default:
		return c
	}
}

// IntersectElementArc returns the point where the circular arc described by
// circle meets the element's boundary. The circle generally crosses the
// boundary twice; inverted selects the second crossing. The crossings are
// ordered by their angle around the arc's center so the choice is stable.
// When the circle misses the element entirely, the visual center is
// returned.
func IntersectElementArc(el core.Element, circle geometry.Circle, inverted bool) geometry.Point {
	c := VisualCenter(el)

	var pts []geometry.Point
	switch {
	case core.HasRectBody(el):
		hw, hh := core.HalfExtents(el)
		pts = geometry.CircleRectIntersections(circle, c.X, c.Y, hw, hh)
	case core.HasCircleBody(el):
		body := geometry.Circle{X: c.X, Y: c.Y, R: core.Radius(el)}
		pts = geometry.CircleCircleIntersections(circle, body)
	default:
		return c
	}

	if len(pts) == 0 {
		return c
	}
	sort.Slice(pts, func(i, j int) bool {
		ai := math.Atan2(pts[i].Y-circle.Y, pts[i].X-circle.X)
		aj := math.Atan2(pts[j].Y-circle.Y, pts[j].X-circle.X)
		return ai < aj
	})
	if inverted {
		return pts[len(pts)-1]
	}
	return pts[0]
}
