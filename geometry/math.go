// Package geometry provides the pure float math used by the connector and
// routing layers.
package geometry

import "math"

// Epsilon is the tolerance used for float comparisons throughout the
// geometry kernel.
const Epsilon = 1e-6

// Point is a 2D coordinate in diagram units. The Y axis grows downward,
// matching screen space.
type Point struct {
	X, Y float64
}

// Circle is a circle by center and radius.
type Circle struct {
	X, Y, R float64
}

// Center returns the circle's center point.
func (c Circle) Center() Point {
	return Point{X: c.X, Y: c.Y}
}

// AlmostEqual reports whether a and b differ by less than Epsilon.
func AlmostEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// AlmostEqualPoints reports whether both coordinates of a and b differ by
// less than Epsilon.
func AlmostEqualPoints(a, b Point) bool {
	return AlmostEqual(a.X, b.X) && AlmostEqual(a.Y, b.Y)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// RadToDeg converts radians to degrees.
func RadToDeg(r float64) float64 {
	return r * 180 / math.Pi
}

// DegToRad converts degrees to radians.
func DegToRad(d float64) float64 {
	return d * math.Pi / 180
}

// CircleFromPoints returns the unique circle through three points.
//
// Colinear input is a precondition violation and yields an undefined result;
// the caller must avoid it.
func CircleFromPoints(p1, p2, p3 Point) Circle {
	d := 2 * (p1.X*(p2.Y-p3.Y) + p2.X*(p3.Y-p1.Y) + p3.X*(p1.Y-p2.Y))
	s1 := p1.X*p1.X + p1.Y*p1.Y
	s2 := p2.X*p2.X + p2.Y*p2.Y
	s3 := p3.X*p3.X + p3.Y*p3.Y
	cx := (s1*(p2.Y-p3.Y) + s2*(p3.Y-p1.Y) + s3*(p1.Y-p2.Y)) / d
	cy := (s1*(p3.X-p2.X) + s2*(p1.X-p3.X) + s3*(p2.X-p1.X)) / d
	c := Point{X: cx, Y: cy}
	return Circle{X: cx, Y: cy, R: Distance(c, p1)}
}

// RayRectIntersection returns the point where a ray from (cx, cy) at angle
// theta exits the axis-aligned rectangle of half-extents (halfW, halfH)
// centered on (cx, cy). The returned point lies exactly on an edge and
// preserves the ray's angle.
func RayRectIntersection(cx, cy, halfW, halfH, theta float64) Point {
	dx := math.Cos(theta)
	dy := math.Sin(theta)

	t := math.Inf(1)
	if math.Abs(dx) > Epsilon {
		t = halfW / math.Abs(dx)
	}
	if math.Abs(dy) > Epsilon {
		if ty := halfH / math.Abs(dy); ty < t {
			t = ty
		}
	}
	if math.IsInf(t, 1) {
		return Point{X: cx, Y: cy}
	}
	return Point{X: cx + t*dx, Y: cy + t*dy}
}

// CircleRectIntersections returns every point where the circle c crosses the
// boundary of the axis-aligned rectangle of half-extents (halfW, halfH)
// centered on (cx, cy). A crossing at a rectangle corner is reported once.
func CircleRectIntersections(c Circle, cx, cy, halfW, halfH float64) []Point {
	left, right := cx-halfW, cx+halfW
	top, bottom := cy-halfH, cy+halfH

	var out []Point
	add := func(p Point) {
		for _, q := range out {
			if AlmostEqualPoints(p, q) {
				return
			}
		}
		out = append(out, p)
	}

	// Vertical edges: x fixed, y within [top, bottom].
	for _, x := range []float64{left, right} {
		dx := x - c.X
		if math.Abs(dx) > c.R {
			continue
		}
		dy := math.Sqrt(c.R*c.R - dx*dx)
		for _, y := range []float64{c.Y - dy, c.Y + dy} {
			if y >= top-Epsilon && y <= bottom+Epsilon {
				add(Point{X: x, Y: y})
			}
		}
	}
	// Horizontal edges: y fixed, x within [left, right].
	for _, y := range []float64{top, bottom} {
		dy := y - c.Y
		if math.Abs(dy) > c.R {
			continue
		}
		dx := math.Sqrt(c.R*c.R - dy*dy)
		for _, x := range []float64{c.X - dx, c.X + dx} {
			if x >= left-Epsilon && x <= right+Epsilon {
				add(Point{X: x, Y: y})
			}
		}
	}
	return out
}

// CircleCircleIntersections returns the points where circles a and b cross:
// two points when they overlap, one when tangent, none otherwise.
func CircleCircleIntersections(a, b Circle) []Point {
	d := Distance(a.Center(), b.Center())
	if d < Epsilon {
		return nil
	}
	if d > a.R+b.R+Epsilon || d < math.Abs(a.R-b.R)-Epsilon {
		return nil
	}

	// Distance from a's center to the chord joining the crossings.
	m := (d*d + a.R*a.R - b.R*b.R) / (2 * d)
	h2 := a.R*a.R - m*m
	ux := (b.X - a.X) / d
	uy := (b.Y - a.Y) / d
	base := Point{X: a.X + m*ux, Y: a.Y + m*uy}
	if h2 < Epsilon {
		return []Point{base}
	}
	h := math.Sqrt(h2)
	return []Point{
		{X: base.X - h*uy, Y: base.Y + h*ux},
		{X: base.X + h*uy, Y: base.Y - h*ux},
	}
}

// ProjectOntoSegment returns the point on segment ab nearest to p, along
// with the clamped parameter t in [0, 1] (t=0 at a, t=1 at b).
func ProjectOntoSegment(p, a, b Point) (Point, float64) {
	abx, aby := b.X-a.X, b.Y-a.Y
	l2 := abx*abx + aby*aby
	if l2 < Epsilon*Epsilon {
		return a, 0
	}
	t := ((p.X-a.X)*abx + (p.Y-a.Y)*aby) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Point{X: a.X + t*abx, Y: a.Y + t*aby}, t
}

// DistanceToSegment returns the distance from p to the segment ab.
func DistanceToSegment(p, a, b Point) float64 {
	q, _ := ProjectOntoSegment(p, a, b)
	return Distance(p, q)
}

// Lerp returns a + t*(b-a).
func Lerp(a, b Point, t float64) Point {
	return Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
}
