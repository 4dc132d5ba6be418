// Package shadows computes the region visible from a point light: wall segments
// are synthesized once per level from the room and corridor rectangles, and each
// query sweeps their endpoints by angle to produce the visible polygon.
package shadows

import "chosenoffset.com/gloomdelve/internal/core/geom"

// SegmentKind tells plain walls apart from the top edges that get extruded upward
type SegmentKind int

const (
	Wall SegmentKind = iota
	RoomTop
	CorridorTop
)

func (k SegmentKind) String() string {
	switch k {
	case Wall:
		return "wall"
	case RoomTop:
		return "room-top"
	case CorridorTop:
		return "corridor-top"
	}
	return "unknown"
}

// Segment is an opaque wall edge in pixel space
type Segment struct {
	P1, P2 geom.Point
	Kind   SegmentKind
}

// EndPoint is one end of a segment, annotated for a single query
type EndPoint struct {
	geom.Point
	Angle   float64 // atan2 relative to the query point, in (-π, π]
	Begin   bool    // true when the sweep reaches this end first
	Segment int     // Index into the engine's segment list
}

// Polygon is the visible area, as an ordered list of vertices
type Polygon []geom.Point

// Options configures an Engine
type Options struct {
	TileSize  float64   // Pixels per grid cell
	Extrude   float64   // How far top edges are raised, in pixels
	MaxRadius float64   // Half-side of the polygon returned when nothing blocks sight
	Bounds    geom.Rect // Optional pixel rectangle whose edges are added as walls
	Debug     bool
}

// DefaultOptions returns a 16px tile with one tile of extrusion
func DefaultOptions() Options {
	return Options{
		TileSize:  16,
		Extrude:   16,
		MaxRadius: 4096,
	}
}
