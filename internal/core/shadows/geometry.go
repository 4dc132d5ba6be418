package shadows

import (
	"math"

	"chosenoffset.com/gloomdelve/internal/core/geom"
)

// leftOf reports whether p lies on the left of s (negative cross product in screen space)
func leftOf(s Segment, p geom.Point) bool {
	cross := (s.P2.X-s.P1.X)*(p.Y-s.P1.Y) - (s.P2.Y-s.P1.Y)*(p.X-s.P1.X)
	return cross < 0
}

// segmentInFrontOf reports whether a is known to be nearer to p than b. Each
// segment is sampled 1% in from its ends so shared corners do not count as
// crossings. Crossing segments are never in front.
func segmentInFrontOf(a, b Segment, p geom.Point) bool {
	a1 := leftOf(a, b.P1.Lerp(b.P2, 0.01))
	a2 := leftOf(a, b.P2.Lerp(b.P1, 0.01))
	a3 := leftOf(a, p)
	b1 := leftOf(b, a.P1.Lerp(a.P2, 0.01))
	b2 := leftOf(b, a.P2.Lerp(a.P1, 0.01))
	b3 := leftOf(b, p)

	// b sits wholly behind a's line
	if a1 == a2 && a2 != a3 {
		return true
	}
	// a sits wholly on the viewer's side of b's line
	if b1 == b2 && b2 == b3 {
		return true
	}
	// Behind, or crossing and so undecidable
	return false
}

// lineIntersection intersects line p1-p2 with line p3-p4. Parallel lines return
// whichever of p1, p2 lies nearer p3.
func lineIntersection(p1, p2, p3, p4 geom.Point) geom.Point {
	den := (p4.Y-p3.Y)*(p2.X-p1.X) - (p4.X-p3.X)*(p2.Y-p1.Y)
	if math.Abs(den) < 1e-12 {
		if geom.Distance(p1, p3) <= geom.Distance(p2, p3) {
			return p1
		}
		return p2
	}
	s := ((p4.X-p3.X)*(p1.Y-p3.Y) - (p4.Y-p3.Y)*(p1.X-p3.X)) / den
	return geom.Point{X: p1.X + s*(p2.X-p1.X), Y: p1.Y + s*(p2.Y-p1.Y)}
}

// Area returns the polygon's unsigned area (shoelace formula)
func (poly Polygon) Area() float64 {
	n := len(poly)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2
}

// Contains tests if a point is inside the polygon using the even-odd ray casting rule
func (poly Polygon) Contains(pt geom.Point) bool {
	inside := false
	j := len(poly) - 1

	for i := 0; i < len(poly); i++ {
		xi, yi := poly[i].X, poly[i].Y
		xj, yj := poly[j].X, poly[j].Y

		if ((yi > pt.Y) != (yj > pt.Y)) &&
			(pt.X < (xj-xi)*(pt.Y-yi)/(yj-yi)+xi) {
			inside = !inside
		}
		j = i
	}

	return inside
}

// Triangles fan-triangulates the polygon around center, one triangle per edge
func (poly Polygon) Triangles(center geom.Point) [][3]geom.Point {
	n := len(poly)
	if n < 2 {
		return nil
	}
	tris := make([][3]geom.Point, 0, n)
	for i := 0; i < n; i++ {
		tris = append(tris, [3]geom.Point{center, poly[i], poly[(i+1)%n]})
	}
	return tris
}
