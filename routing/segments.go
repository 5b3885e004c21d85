package routing

import (
	"math"

	"stockflow/core"
	"stockflow/geometry"
)

// Orientation classifies a path segment.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
	Diagonal
)

// String returns the string representation of an Orientation.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	case Diagonal:
		return "Diagonal"
	default:
		return "Unknown"
	}
}

// Segment is one piece of a flow's path between consecutive points.
type Segment struct {
	Start, End  core.Point
	Orientation Orientation
}

// Length returns the segment's Euclidean length.
func (s Segment) Length() float64 {
	return geometry.Distance(pt(s.Start), pt(s.End))
}

func pt(p core.Point) geometry.Point {
	return geometry.Point{X: p.X, Y: p.Y}
}

func orient(a, b core.Point) Orientation {
	switch {
	case geometry.AlmostEqual(a.Y, b.Y):
		return Horizontal
	case geometry.AlmostEqual(a.X, b.X):
		return Vertical
	default:
		return Diagonal
	}
}

// OrientationOf classifies the segment from a to b.
func OrientationOf(a, b core.Point) Orientation {
	return orient(a, b)
}

// Segments classifies each consecutive pair of points as a horizontal,
// vertical, or diagonal segment. Paths of fewer than two points have no
// segments. Diagonal segments appear only in imported legacy geometry; the
// router never produces them.
func Segments(points []core.Point) []Segment {
	if len(points) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(points)-1)
	for i := 0; i < len(points)-1; i++ {
		segs = append(segs, Segment{
			Start:       points[i],
			End:         points[i+1],
			Orientation: orient(points[i], points[i+1]),
		})
	}
	return segs
}

// MoveSegment translates segment i of the path by delta (a point's new
// coordinate is its old coordinate minus the delta). Endpoints carrying an
// attachment never move. Orthogonal segments move only along their
// perpendicular axis, which keeps the neighbouring segments orthogonal;
// legacy diagonal segments take the full delta.
func MoveSegment(points []core.Point, i int, delta geometry.Point) []core.Point {
	out := append([]core.Point(nil), points...)
	if i < 0 || i >= len(points)-1 {
		return out
	}

	dx, dy := delta.X, delta.Y
	switch orient(points[i], points[i+1]) {
	case Horizontal:
		dx = 0
	case Vertical:
		dy = 0
	}
	for _, j := range [2]int{i, i + 1} {
		if out[j].AttachedToUID != 0 {
			continue
		}
		out[j].X -= dx
		out[j].Y -= dy
	}
	return out
}

// ClickedSegment hit-tests (px, py) against the path's draggable interior
// segments and returns the index of the nearest one. It reports false when
// the path has at most one segment, when the click lands on the valve, or
// when the nearest segment is diagonal or adjacent to either path terminus
// (only a segment with two corner endpoints may be dragged directly, whether
// or not the terminus is attached).
func ClickedSegment(px, py, valveX, valveY float64, points []core.Point) (int, bool) {
	segs := Segments(points)
	if len(segs) <= 1 {
		return 0, false
	}

	p := geometry.Point{X: px, Y: py}
	if geometry.Distance(p, geometry.Point{X: valveX, Y: valveY}) <= core.ValveRadius {
		return 0, false
	}

	best := -1
	bestDist := math.Inf(1)
	for i, s := range segs {
		d := geometry.DistanceToSegment(p, pt(s.Start), pt(s.End))
		if d < bestDist {
			best, bestDist = i, d
		}
	}

	if segs[best].Orientation == Diagonal {
		return 0, false
	}
	if best == 0 || best == len(segs)-1 {
		return 0, false
	}
	return best, true
}

// Normalize merges consecutive colinear segments and drops zero-length
// interior segments, recursively, never going below two points. Attached
// endpoints are never dropped.
func Normalize(points []core.Point) []core.Point {
	pts := append([]core.Point(nil), points...)
	for len(pts) > 2 {
		removed := false
		for i := 1; i < len(pts)-1; i++ {
			a, b, c := pts[i-1], pts[i], pts[i+1]
			colinear := (geometry.AlmostEqual(a.X, b.X) && geometry.AlmostEqual(b.X, c.X)) ||
				(geometry.AlmostEqual(a.Y, b.Y) && geometry.AlmostEqual(b.Y, c.Y))
			zero := geometry.AlmostEqualPoints(pt(a), pt(b)) || geometry.AlmostEqualPoints(pt(b), pt(c))
			if colinear || zero {
				pts = append(pts[:i], pts[i+1:]...)
				removed = true
				break
			}
		}
		if !removed {
			break
		}
	}
	return pts
}

// NearestPointOnPath returns the point on the path nearest to p and the
// index of the segment containing it. Used to keep the valve on the path
// after a reroute.
func NearestPointOnPath(points []core.Point, p geometry.Point) (geometry.Point, int) {
	if len(points) == 0 {
		return p, -1
	}
	if len(points) == 1 {
		return pt(points[0]), -1
	}

	best := pt(points[0])
	bestSeg := 0
	bestDist := math.Inf(1)
	for i := 0; i < len(points)-1; i++ {
		q, _ := geometry.ProjectOntoSegment(p, pt(points[i]), pt(points[i+1]))
		if d := geometry.Distance(p, q); d < bestDist {
			best, bestSeg, bestDist = q, i, d
		}
	}
	return best, bestSeg
}
