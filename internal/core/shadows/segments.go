package shadows

import (
	"log"
	"sort"

	"chosenoffset.com/gloomdelve/internal/core/geom"
)

// Engine holds one level's wall segments. Load replaces them; Query only reads,
// so queries may run concurrently between loads.
type Engine struct {
	opts     Options
	segments []Segment
}

// NewEngine creates an engine with no segments. A non-positive tile size or
// radius falls back to the defaults.
func NewEngine(opts Options) *Engine {
	def := DefaultOptions()
	if opts.TileSize <= 0 {
		opts.TileSize = def.TileSize
	}
	if opts.MaxRadius <= 0 {
		opts.MaxRadius = def.MaxRadius
	}
	if opts.Extrude < 0 {
		opts.Extrude = 0
	}
	return &Engine{opts: opts}
}

// Options returns the engine's effective options
func (e *Engine) Options() Options {
	return e.opts
}

// Segments returns a copy of the current segment set
func (e *Engine) Segments() []Segment {
	out := make([]Segment, len(e.segments))
	copy(out, e.segments)
	return out
}

// interval is a window span along one wall line
type interval struct {
	lo, hi float64
}

// Load rebuilds the segment set from cell rectangles. Corridors contribute their
// two long edges; rooms contribute four edges split around every window where a
// corridor's end edge lies on them.
func (e *Engine) Load(rooms, corridorsH, corridorsV []geom.Rect) {
	t := e.opts.TileSize
	ex := e.opts.Extrude
	segs := make([]Segment, 0, 4*len(rooms)+2*len(corridorsH)+2*len(corridorsV)+4)

	// Window lines keyed by their fixed coordinate
	vertWindows := map[float64][]interval{} // x -> y spans, from horizontal corridor ends
	horzWindows := map[float64][]interval{} // y -> x spans, from vertical corridor ends

	for _, c := range corridorsH {
		l, top, r, b := c.Pixels(t)
		segs = append(segs,
			Segment{P1: geom.Point{X: l, Y: top - ex}, P2: geom.Point{X: r, Y: top - ex}, Kind: CorridorTop},
			Segment{P1: geom.Point{X: l, Y: b}, P2: geom.Point{X: r, Y: b}, Kind: Wall},
		)
		vertWindows[l] = append(vertWindows[l], interval{top, b})
		vertWindows[r] = append(vertWindows[r], interval{top, b})
	}

	for _, c := range corridorsV {
		l, top, r, b := c.Pixels(t)
		// The lower room's top edge is raised, so the corridor walls stop there
		end := max(b-ex, top)
		segs = append(segs,
			Segment{P1: geom.Point{X: l, Y: top}, P2: geom.Point{X: l, Y: end}, Kind: Wall},
			Segment{P1: geom.Point{X: r, Y: top}, P2: geom.Point{X: r, Y: end}, Kind: Wall},
		)
		horzWindows[top] = append(horzWindows[top], interval{l, r})
		horzWindows[b] = append(horzWindows[b], interval{l, r})
	}

	windows := 0
	for _, room := range rooms {
		l, top, r, b := room.Pixels(t)

		var n int
		segs, n = splitHorizontal(segs, top, top-ex, l, r, horzWindows[top], RoomTop)
		windows += n
		segs, n = splitHorizontal(segs, b, b, l, r, horzWindows[b], Wall)
		windows += n
		segs, n = splitVertical(segs, l, top-ex, b, vertWindows[l])
		windows += n
		segs, n = splitVertical(segs, r, top-ex, b, vertWindows[r])
		windows += n
	}

	if !e.opts.Bounds.Empty() {
		bx, by := float64(e.opts.Bounds.X), float64(e.opts.Bounds.Y)
		br, bb := float64(e.opts.Bounds.Right()), float64(e.opts.Bounds.Bottom())
		segs = append(segs,
			Segment{P1: geom.Point{X: bx, Y: by}, P2: geom.Point{X: br, Y: by}},
			Segment{P1: geom.Point{X: br, Y: by}, P2: geom.Point{X: br, Y: bb}},
			Segment{P1: geom.Point{X: br, Y: bb}, P2: geom.Point{X: bx, Y: bb}},
			Segment{P1: geom.Point{X: bx, Y: bb}, P2: geom.Point{X: bx, Y: by}},
		)
	}

	e.segments = segs

	if e.opts.Debug {
		log.Printf("DEBUG: loaded %d segments (%d rooms, %d+%d corridors, %d windows)",
			len(segs), len(rooms), len(corridorsH), len(corridorsV), windows)
	}
}

// openSpans returns the pieces of [lo, hi] left after removing every window strictly inside it
func openSpans(lo, hi float64, windows []interval) (spans []interval, cut int) {
	inside := make([]interval, 0, len(windows))
	for _, w := range windows {
		if w.lo > lo && w.hi < hi {
			inside = append(inside, w)
		}
	}
	sort.Slice(inside, func(i, j int) bool { return inside[i].lo < inside[j].lo })

	start := lo
	for _, w := range inside {
		if w.lo > start {
			spans = append(spans, interval{start, w.lo})
		}
		start = max(start, w.hi)
	}
	if start < hi {
		spans = append(spans, interval{start, hi})
	}
	return spans, len(inside)
}

// splitHorizontal appends the pieces of a room's top or bottom edge. Windows are
// matched on the edge's cell line y; the pieces are placed at drawY.
func splitHorizontal(segs []Segment, y, drawY, l, r float64, windows []interval, kind SegmentKind) ([]Segment, int) {
	spans, cut := openSpans(l, r, windows)
	for _, s := range spans {
		segs = append(segs, Segment{
			P1:   geom.Point{X: s.lo, Y: drawY},
			P2:   geom.Point{X: s.hi, Y: drawY},
			Kind: kind,
		})
	}
	return segs, cut
}

// splitVertical appends the pieces of a room's left or right edge
func splitVertical(segs []Segment, x, top, b float64, windows []interval) ([]Segment, int) {
	spans, cut := openSpans(top, b, windows)
	for _, s := range spans {
		segs = append(segs, Segment{
			P1:   geom.Point{X: x, Y: s.lo},
			P2:   geom.Point{X: x, Y: s.hi},
			Kind: Wall,
		})
	}
	return segs, cut
}
