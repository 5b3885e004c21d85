package drag

import (
	"math"

	"stockflow/geometry"
)

// UpdateArcAngle recomputes a link's arc when an endpoint moves, so the
// rendered curve keeps its visual shape: the arc is reduced by however many
// degrees the straight-line bearing between the endpoints rotated.
func UpdateArcAngle(arc float64, oldFrom, oldTo, newFrom, newTo geometry.Point) float64 {
	oldBearing := math.Atan2(oldTo.Y-oldFrom.Y, oldTo.X-oldFrom.X)
	newBearing := math.Atan2(newTo.Y-newFrom.Y, newTo.X-newFrom.X)
	return normalizeDeg(arc - geometry.RadToDeg(newBearing-oldBearing))
}

// ArcFromPoint returns the arc, in degrees of deviation from the straight
// chord, of the circular arc from from to to passing through the drag point
// p. A drag point colinear with the endpoints straightens the link.
func ArcFromPoint(from, to, p geometry.Point) float64 {
	cross := (to.X-from.X)*(p.Y-from.Y) - (to.Y-from.Y)*(p.X-from.X)
	if math.Abs(cross) < geometry.Epsilon {
		return 0
	}

	c := geometry.CircleFromPoints(from, p, to)
	s := geometry.Distance(from, to) / (2 * c.R)
	if s > 1 {
		s = 1
	}
	deg := geometry.RadToDeg(math.Asin(s))

	// The takeoff angle exceeds 90° when the drag point lies beyond the
	// semicircle, which puts the circle's center on the same side of the
	// chord as the point.
	centerCross := (to.X-from.X)*(c.Y-from.Y) - (to.Y-from.Y)*(c.X-from.X)
	if centerCross*cross > 0 {
		deg = 180 - deg
	}
	if cross > 0 {
		deg = -deg
	}
	return deg
}

// normalizeDeg wraps d into (-180, 180].
func normalizeDeg(d float64) float64 {
	for d <= -180 {
		d += 360
	}
	for d > 180 {
		d -= 360
	}
	return d
}
