package shadows

import (
	"log"
	"math"
	"slices"

	"chosenoffset.com/gloomdelve/internal/core/geom"
)

// Query computes the polygon visible from p. With no segments loaded it returns
// a square of half-side MaxRadius around p. A p lying exactly on a wall line
// yields a degenerate polygon of two vertices; lights always sit in cell centres.
func (e *Engine) Query(p geom.Point) Polygon {
	if len(e.segments) == 0 {
		return e.unbounded(p)
	}

	endpoints := e.endpoints(p)
	s := sweep{engine: e, center: p}

	// Setup pass seeds the open list with segments that straddle the ±π seam
	s.pass(endpoints, false)
	seeded := slices.Clone(s.open)

	s.pass(endpoints, true)

	if !slices.Equal(seeded, s.open) && e.opts.Debug {
		log.Printf("DEBUG: sweep from (%.1f,%.1f) ended with open list %v, expected %v", p.X, p.Y, s.open, seeded)
	}

	return finish(s.output)
}

// endpoints annotates both ends of every segment for a query from p, sorted by
// angle with begin ends ahead of end ends at equal angles.
func (e *Engine) endpoints(p geom.Point) []EndPoint {
	out := make([]EndPoint, 0, 2*len(e.segments))
	for i, seg := range e.segments {
		a1 := math.Atan2(seg.P1.Y-p.Y, seg.P1.X-p.X)
		a2 := math.Atan2(seg.P2.Y-p.Y, seg.P2.X-p.X)

		d := a2 - a1
		if d <= -math.Pi {
			d += 2 * math.Pi
		}
		if d > math.Pi {
			d -= 2 * math.Pi
		}
		begin := d > 0

		out = append(out,
			EndPoint{Point: seg.P1, Angle: a1, Begin: begin, Segment: i},
			EndPoint{Point: seg.P2, Angle: a2, Begin: !begin, Segment: i},
		)
	}

	slices.SortStableFunc(out, func(a, b EndPoint) int {
		switch {
		case a.Angle < b.Angle:
			return -1
		case a.Angle > b.Angle:
			return 1
		case a.Begin && !b.Begin:
			return -1
		case !a.Begin && b.Begin:
			return 1
		}
		return 0
	})
	return out
}

// sweep is the per-query state. The open list holds segment indices, nearest first.
type sweep struct {
	engine     *Engine
	center     geom.Point
	open       []int
	beginAngle float64
	output     []geom.Point
}

func (s *sweep) nearest() int {
	if len(s.open) == 0 {
		return -1
	}
	return s.open[0]
}

// pass walks every endpoint once, keeping the open list current. Wedges are only
// emitted when emit is set.
func (s *sweep) pass(endpoints []EndPoint, emit bool) {
	segs := s.engine.segments
	for _, ep := range endpoints {
		before := s.nearest()

		if ep.Begin {
			seg := segs[ep.Segment]
			at := len(s.open)
			for i, idx := range s.open {
				if segmentInFrontOf(seg, segs[idx], s.center) {
					at = i
					break
				}
			}
			s.open = slices.Insert(s.open, at, ep.Segment)
		} else if i := slices.Index(s.open, ep.Segment); i >= 0 {
			s.open = slices.Delete(s.open, i, i+1)
		}

		if after := s.nearest(); after != before {
			if emit {
				s.wedge(s.beginAngle, ep.Angle, before)
			}
			s.beginAngle = ep.Angle
		}
	}
}

// wedge emits where the rays at angle1 and angle2 meet segment idx, or the
// MaxRadius circle when nothing was open.
func (s *sweep) wedge(angle1, angle2 float64, idx int) {
	c := s.center
	dir1 := geom.Point{X: math.Cos(angle1), Y: math.Sin(angle1)}
	dir2 := geom.Point{X: math.Cos(angle2), Y: math.Sin(angle2)}

	var p3, p4 geom.Point
	if idx >= 0 {
		seg := s.engine.segments[idx]
		p3, p4 = seg.P1, seg.P2
	} else {
		r := s.engine.opts.MaxRadius
		p3 = c.Add(geom.Point{X: dir1.X * r, Y: dir1.Y * r})
		p4 = c.Add(geom.Point{X: dir2.X * r, Y: dir2.Y * r})
	}

	s.output = append(s.output,
		lineIntersection(p3, p4, c, c.Add(dir1)),
		lineIntersection(p3, p4, c, c.Add(dir2)),
	)
}

func (e *Engine) unbounded(p geom.Point) Polygon {
	r := e.opts.MaxRadius
	return finish([]geom.Point{
		{X: p.X - r, Y: p.Y - r},
		{X: p.X + r, Y: p.Y - r},
		{X: p.X + r, Y: p.Y + r},
		{X: p.X - r, Y: p.Y + r},
	})
}

// finish rounds every vertex and drops consecutive duplicates, including a last
// vertex equal to the first.
func finish(pts []geom.Point) Polygon {
	poly := make(Polygon, 0, len(pts))
	for _, pt := range pts {
		pt = pt.Round()
		if n := len(poly); n > 0 && poly[n-1] == pt {
			continue
		}
		poly = append(poly, pt)
	}
	for len(poly) > 1 && poly[len(poly)-1] == poly[0] {
		poly = poly[:len(poly)-1]
	}
	return poly
}
