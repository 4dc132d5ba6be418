package lighting

import (
	"image"
	"image/color"
	"sync/atomic"
	"testing"

	"chosenoffset.com/gloomdelve/internal/core/geom"
	"chosenoffset.com/gloomdelve/internal/core/shadows"
	"chosenoffset.com/gloomdelve/internal/render"
)

// squareQuerier returns a 20x20 square around every query point
type squareQuerier struct {
	calls atomic.Int64
}

func (q *squareQuerier) Query(p geom.Point) shadows.Polygon {
	q.calls.Add(1)
	return shadows.Polygon{
		{X: p.X - 10, Y: p.Y - 10},
		{X: p.X + 10, Y: p.Y - 10},
		{X: p.X + 10, Y: p.Y + 10},
		{X: p.X - 10, Y: p.Y + 10},
	}
}

// recordingImage counts DrawTriangles calls
type recordingImage struct {
	triangles int
	calls     int
	blend     render.Blend
}

func (r *recordingImage) Bounds() image.Rectangle               { return image.Rect(0, 0, 64, 64) }
func (r *recordingImage) Size() (int, int)                      { return 64, 64 }
func (r *recordingImage) SubImage(image.Rectangle) render.Image { return r }
func (r *recordingImage) Fill(color.Color)                      {}
func (r *recordingImage) Clear()                                {}
func (r *recordingImage) DrawImage(render.Image, *render.DrawImageOptions) {
}
func (r *recordingImage) DrawTriangles(v []render.Vertex, idx []uint16, _ render.Image, opts *render.DrawTrianglesOptions) {
	r.calls++
	r.blend = opts.Blend
	r.triangles += len(idx) / 3
}
func (r *recordingImage) Dispose() {}

func light(x, y float64, static bool) Light {
	return Light{Position: geom.Point{X: x, Y: y}, Radius: 50, Intensity: 1, Color: color.NRGBA{255, 255, 255, 255}, Static: static}
}

func TestAddRemove(t *testing.T) {
	m := NewManager(&squareQuerier{}, Options{})
	a := m.Add(light(0, 0, false))
	b := m.Add(light(10, 0, false))
	c := m.Add(light(20, 0, false))

	m.Remove(a)
	if m.Len() != 2 {
		t.Fatalf("len = %d, want 2", m.Len())
	}
	if _, ok := m.Get(a); ok {
		t.Error("removed light still registered")
	}
	if l, ok := m.Get(c); !ok || l.Position.X != 20 {
		t.Errorf("light c moved slots incorrectly: %+v %v", l, ok)
	}
	if l, ok := m.Get(b); !ok || l.Position.X != 10 {
		t.Errorf("light b lost: %+v %v", l, ok)
	}

	m.Remove(a) // already gone
	m.Remove(c)
	m.Remove(b)
	if m.Len() != 0 {
		t.Errorf("len = %d, want 0", m.Len())
	}

	d := m.Add(light(0, 0, false))
	if d == a || d == b || d == c {
		t.Errorf("id %d reused", d)
	}
}

func TestVisibleInRegistrationOrder(t *testing.T) {
	m := NewManager(&squareQuerier{}, Options{})
	ids := []LightID{
		m.Add(light(0, 0, false)),
		m.Add(light(10, 0, false)),
		m.Add(light(20, 0, false)),
		m.Add(light(30, 0, false)),
	}
	m.Remove(ids[1])
	m.Update(geom.Rect{})

	vis := m.Visible()
	want := []LightID{ids[0], ids[2], ids[3]}
	if len(vis) != len(want) {
		t.Fatalf("got %d visible, want %d", len(vis), len(want))
	}
	for i, lit := range vis {
		if lit.ID != want[i] {
			t.Errorf("visible[%d] = %d, want %d", i, lit.ID, want[i])
		}
	}
}

func TestStaticLightsCached(t *testing.T) {
	q := &squareQuerier{}
	m := NewManager(q, Options{})
	static := m.Add(light(0, 0, true))
	m.SetHeroLight(geom.Point{X: 5, Y: 5})

	m.Update(geom.Rect{})
	m.Update(geom.Rect{})
	// Hero twice, static once
	if got := q.calls.Load(); got != 3 {
		t.Errorf("queries = %d, want 3", got)
	}

	m.SetPosition(static, geom.Point{X: 1, Y: 1})
	m.Update(geom.Rect{})
	if got := q.calls.Load(); got != 5 {
		t.Errorf("queries after move = %d, want 5", got)
	}
}

func TestCameraCulling(t *testing.T) {
	q := &squareQuerier{}
	m := NewManager(q, Options{})
	near := m.Add(light(100, 100, false))
	far := m.Add(light(1000, 1000, false))

	m.Update(geom.Rect{X: 0, Y: 0, W: 200, H: 200})
	if _, ok := m.Polygon(near); !ok {
		t.Error("light inside the camera has no polygon")
	}
	if _, ok := m.Polygon(far); ok {
		t.Error("light far outside the camera was queried")
	}
	if got := len(m.Visible()); got != 1 {
		t.Errorf("visible = %d, want 1", got)
	}

	// Just outside the camera but its radius reaches in
	edge := m.Add(light(240, 100, false))
	m.Update(geom.Rect{X: 0, Y: 0, W: 200, H: 200})
	if _, ok := m.Polygon(edge); !ok {
		t.Error("light within radius of the camera was culled")
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	engine := shadows.NewEngine(shadows.DefaultOptions())
	engine.Load([]geom.Rect{{X: 2, Y: 2, W: 20, H: 10}, {X: 30, Y: 2, W: 10, H: 10}},
		[]geom.Rect{{X: 22, Y: 5, W: 8, H: 1}}, nil)

	seq := NewManager(engine, Options{})
	par := NewManager(engine, Options{Parallel: true, Workers: 3})
	for i := 0; i < 12; i++ {
		l := light(float64(40+i*25), float64(50+(i%4)*30), i%2 == 0)
		seq.Add(l)
		par.Add(l)
	}
	seq.Update(geom.Rect{})
	par.Update(geom.Rect{})

	a, b := seq.Visible(), par.Visible()
	if len(a) != len(b) {
		t.Fatalf("sequential %d lights, parallel %d", len(a), len(b))
	}
	for i := range a {
		if len(a[i].Polygon) != len(b[i].Polygon) {
			t.Fatalf("light %d: %d vs %d vertices", i, len(a[i].Polygon), len(b[i].Polygon))
		}
		for j := range a[i].Polygon {
			if a[i].Polygon[j] != b[i].Polygon[j] {
				t.Errorf("light %d vertex %d: %v vs %v", i, j, a[i].Polygon[j], b[i].Polygon[j])
			}
		}
	}
}

func TestMaskTriangles(t *testing.T) {
	m := NewManager(&squareQuerier{}, Options{})
	id := m.Add(light(100, 100, false))
	m.Update(geom.Rect{})

	verts, idx := m.Mask(id, geom.Point{X: 90, Y: 80})
	if len(verts) != 5 {
		t.Fatalf("vertices = %d, want 5", len(verts))
	}
	if len(idx) != 12 {
		t.Fatalf("indices = %d, want 12 (4 triangles)", len(idx))
	}
	if verts[0].DstX != 10 || verts[0].DstY != 20 {
		t.Errorf("centre in screen space = (%v, %v), want (10, 20)", verts[0].DstX, verts[0].DstY)
	}
	if verts[0].ColorA != 1 {
		t.Errorf("centre alpha = %v, want 1", verts[0].ColorA)
	}
	for i := 1; i < len(verts); i++ {
		if verts[i].ColorA >= verts[0].ColorA {
			t.Errorf("rim vertex %d alpha %v not below centre", i, verts[i].ColorA)
		}
	}
	if idx[len(idx)-1] != 1 {
		t.Errorf("fan does not close back to the first rim vertex")
	}
}

func TestDrawAndLit(t *testing.T) {
	m := NewManager(&squareQuerier{}, Options{})
	m.Add(light(100, 100, false))
	m.SetHeroLight(geom.Point{X: 300, Y: 300})
	m.Update(geom.Rect{})

	dst := &recordingImage{}
	m.Draw(dst, &recordingImage{}, geom.Point{})
	if dst.calls != 2 || dst.triangles != 8 {
		t.Errorf("draw calls=%d triangles=%d, want 2 and 8", dst.calls, dst.triangles)
	}
	if dst.blend != render.BlendLighter {
		t.Errorf("lights drawn with blend %v, want additive", dst.blend)
	}

	if !m.Lit(105, 95) || !m.Lit(300, 300) {
		t.Error("points inside light polygons should be lit")
	}
	if m.Lit(200, 200) {
		t.Error("point between lights should be dark")
	}
}

func TestClearStatic(t *testing.T) {
	m := NewManager(&squareQuerier{}, Options{})
	m.Add(light(0, 0, true))
	m.Add(light(10, 10, true))
	hero := m.SetHeroLight(geom.Point{X: 5, Y: 5})
	m.Update(geom.Rect{})

	m.ClearStatic()
	if m.Len() != 1 {
		t.Fatalf("len = %d, want 1", m.Len())
	}
	if _, ok := m.Polygon(hero); ok {
		t.Error("hero polygon should be invalidated on level change")
	}
	if again := m.SetHeroLight(geom.Point{X: 6, Y: 6}); again != hero {
		t.Errorf("hero light re-registered as %d, want %d", again, hero)
	}
}
