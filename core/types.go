// Package core contains the fundamental types used throughout the stockflow
// diagram editor.
package core

// Fixed element dimensions, in diagram units.
const (
	StockWidth   = 45.0
	StockHeight  = 35.0
	ModuleWidth  = 55.0
	ModuleHeight = 45.0
	AuxRadius    = 9.0
	ValveRadius  = 9.0
	CloudRadius  = 8.0

	// ArrayedOffset is subtracted from both axes of an arrayed element's
	// logical center to get its visual center.
	ArrayedOffset = 3.0

	// ValveMargin keeps a dragged valve away from the ends of its segment.
	ValveMargin = 10.0

	// PerpDragThreshold is the minimum perpendicular drag distance that
	// bends a straight flow into an L-shape.
	PerpDragThreshold = 5.0
)

// Point is one vertex of a flow's routed path.
//
// AttachedToUID names the Stock or Cloud a path endpoint is glued to; zero
// means unattached. Interior corner points are always unattached.
type Point struct {
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	AttachedToUID int     `json:"attachedToUid,omitempty"`
}

// Element is the closed set of diagram element variants. All variants are
// immutable value records: operations take a snapshot and return new values.
type Element interface {
	UID() int
	element()
}

// Stock is a rectangular reservoir variable. Flow paths attach to its four
// edges.
type Stock struct {
	ID           int     `json:"id"`
	Name         string  `json:"name,omitempty"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	IsArrayed    bool    `json:"isArrayed,omitempty"`
	IsZeroRadius bool    `json:"isZeroRadius,omitempty"`
}

// Cloud is an unbounded point source or sink terminating a flow.
type Cloud struct {
	ID           int     `json:"id"`
	FlowID       int     `json:"flowUid"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	IsZeroRadius bool    `json:"isZeroRadius,omitempty"`
}

// Aux is a circular auxiliary variable.
type Aux struct {
	ID           int     `json:"id"`
	Name         string  `json:"name,omitempty"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	IsArrayed    bool    `json:"isArrayed,omitempty"`
	IsZeroRadius bool    `json:"isZeroRadius,omitempty"`
}

// Flow is a valve-controlled connector between two stocks or clouds. It owns
// an ordered path of at least two points; (X, Y) is the valve center, which
// always lies on one of the path's segments.
type Flow struct {
	ID           int     `json:"id"`
	Name         string  `json:"name,omitempty"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Points       []Point `json:"points"`
	IsArrayed    bool    `json:"isArrayed,omitempty"`
	IsZeroRadius bool    `json:"isZeroRadius,omitempty"`
}

// Link is a causal connector between two elements. Arc is the signed
// curvature in degrees of deviation from the straight chord; zero means
// straight.
type Link struct {
	ID      int     `json:"id"`
	FromUID int     `json:"fromUid"`
	ToUID   int     `json:"toUid"`
	Arc     float64 `json:"arc,omitempty"`
}

// Module is a rectangular sub-model reference.
type Module struct {
	ID   int     `json:"id"`
	Name string  `json:"name,omitempty"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Alias is a ghosted reference to another variable.
type Alias struct {
	ID         int     `json:"id"`
	AliasOfUID int     `json:"aliasOfUid"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
}

// Group is a visual grouping of elements.
type Group struct {
	ID   int     `json:"id"`
	Name string  `json:"name,omitempty"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

func (s Stock) UID() int  { return s.ID }
func (c Cloud) UID() int  { return c.ID }
func (a Aux) UID() int    { return a.ID }
func (f Flow) UID() int   { return f.ID }
func (l Link) UID() int   { return l.ID }
func (m Module) UID() int { return m.ID }
func (a Alias) UID() int  { return a.ID }
func (g Group) UID() int  { return g.ID }

func (Stock) element()  {}
func (Cloud) element()  {}
func (Aux) element()    {}
func (Flow) element()   {}
func (Link) element()   {}
func (Module) element() {}
func (Alias) element()  {}
func (Group) element()  {}

// SourceUID returns the UID of the element the flow's first point is
// attached to, or zero.
func (f Flow) SourceUID() int {
	if len(f.Points) == 0 {
		return 0
	}
	return f.Points[0].AttachedToUID
}

// SinkUID returns the UID of the element the flow's last point is attached
// to, or zero.
func (f Flow) SinkUID() int {
	if len(f.Points) == 0 {
		return 0
	}
	return f.Points[len(f.Points)-1].AttachedToUID
}

// AttachedTo reports whether either terminus of the flow is attached to uid.
func (f Flow) AttachedTo(uid int) bool {
	return uid != 0 && (f.SourceUID() == uid || f.SinkUID() == uid)
}

// ClonePoints returns a fresh copy of the flow's path.
func (f Flow) ClonePoints() []Point {
	return append([]Point(nil), f.Points...)
}

// HasRectBody reports whether el is drawn as an axis-aligned rectangle.
// A zero-radius placeholder is always treated as a point, whatever its kind.
func HasRectBody(el Element) bool {
	switch v := el.(type) {
	case Stock:
		return !v.IsZeroRadius
	case Module:
		return true
	}
	return false
}

// HasCircleBody reports whether el is drawn as a circle.
func HasCircleBody(el Element) bool {
	switch v := el.(type) {
	case Aux:
		return !v.IsZeroRadius
	case Flow:
		return !v.IsZeroRadius
	}
	return false
}

// IsPoint reports whether el has no extent for connection purposes.
func IsPoint(el Element) bool {
	return !HasRectBody(el) && !HasCircleBody(el)
}

// IsArrayed reports whether el is a vector-valued variable.
func IsArrayed(el Element) bool {
	switch v := el.(type) {
	case Stock:
		return v.IsArrayed
	case Aux:
		return v.IsArrayed
	case Flow:
		return v.IsArrayed
	}
	return false
}

// IsZeroRadius reports whether el is a transient drag placeholder.
func IsZeroRadius(el Element) bool {
	switch v := el.(type) {
	case Stock:
		return v.IsZeroRadius
	case Cloud:
		return v.IsZeroRadius
	case Aux:
		return v.IsZeroRadius
	case Flow:
		return v.IsZeroRadius
	}
	return false
}

// Position returns the logical center of el. For flows this is the valve
// center; links have no position of their own and report the origin.
func Position(el Element) (x, y float64) {
	switch v := el.(type) {
	case Stock:
		return v.X, v.Y
	case Cloud:
		return v.X, v.Y
	case Aux:
		return v.X, v.Y
	case Flow:
		return v.X, v.Y
	case Module:
		return v.X, v.Y
	case Alias:
		return v.X, v.Y
	case Group:
		return v.X, v.Y
	}
	return 0, 0
}

// HalfExtents returns the half-width and half-height of a rect-bodied
// element, or zeros.
func HalfExtents(el Element) (hw, hh float64) {
	switch el.(type) {
	case Stock:
		return StockWidth / 2, StockHeight / 2
	case Module:
		return ModuleWidth / 2, ModuleHeight / 2
	}
	return 0, 0
}

// Radius returns the body radius of a circle-bodied element, or zero.
func Radius(el Element) float64 {
	switch el.(type) {
	case Aux:
		return AuxRadius
	case Flow:
		return ValveRadius
	}
	return 0
}
