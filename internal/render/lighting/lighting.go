package lighting

import (
	"image/color"
	"log"
	"math"
	"slices"

	"golang.org/x/sync/errgroup"

	"chosenoffset.com/gloomdelve/internal/core/geom"
	"chosenoffset.com/gloomdelve/internal/core/shadows"
	"chosenoffset.com/gloomdelve/internal/render"
)

// Querier computes the visible polygon from a point. *shadows.Engine implements it.
type Querier interface {
	Query(p geom.Point) shadows.Polygon
}

// LightID identifies a registered light. IDs increase with registration order.
type LightID int

// Light is a point light in world pixel space
type Light struct {
	Position  geom.Point
	Radius    float64     // Falloff radius (in pixels)
	Intensity float64     // Light intensity (0.0 to 1.0)
	Color     color.NRGBA // Light color
	Static    bool        // Static lights (fountains, bonfires) are queried once and cached
	Owner     string      // Free-form tag of whatever created the light
}

// Lit pairs a light with the polygon it currently lights
type Lit struct {
	ID      LightID
	Light   Light
	Polygon shadows.Polygon
}

// Options configures a Manager
type Options struct {
	Parallel bool // Run per-light queries concurrently
	Workers  int  // Concurrent queries when Parallel is set (0 = one per light)
	Debug    bool

	HeroRadius float64 // Overrides HeroLight's radius when positive
}

type entry struct {
	id      LightID
	light   Light
	poly    shadows.Polygon
	fresh   bool // poly matches light.Position
	visible bool // inside the camera on the last Update
}

// Manager owns the level's lights and their per-frame polygons
type Manager struct {
	engine  Querier
	opts    Options
	entries []entry
	slots   map[LightID]int
	next    LightID
	hero    LightID
	hasHero bool
	ambient float64 // Global ambient light level (0.0 = pitch black, 1.0 = fully lit)
}

// HeroLight is the light registered by the first SetHeroLight call
var HeroLight = Light{
	Radius:    160,
	Intensity: 0.9,
	Color:     color.NRGBA{255, 220, 170, 255},
	Owner:     "hero",
}

// NewManager creates a manager that queries engine for every light
func NewManager(engine Querier, opts Options) *Manager {
	return &Manager{
		engine:  engine,
		opts:    opts,
		slots:   make(map[LightID]int),
		next:    1,
		ambient: 0.15,
	}
}

// SetEngine swaps the querier after a level load. Every cached polygon is dropped.
func (m *Manager) SetEngine(engine Querier) {
	m.engine = engine
	for i := range m.entries {
		m.entries[i].fresh = false
		m.entries[i].poly = nil
	}
}

// SetAmbientLight sets the global ambient light level
func (m *Manager) SetAmbientLight(level float64) {
	m.ambient = max(0, min(1, level))
}

// Ambient returns the current ambient light level
func (m *Manager) Ambient() float64 {
	return m.ambient
}

// Len returns the number of registered lights
func (m *Manager) Len() int {
	return len(m.entries)
}

// Add registers a light and returns its id
func (m *Manager) Add(l Light) LightID {
	id := m.next
	m.next++
	m.slots[id] = len(m.entries)
	m.entries = append(m.entries, entry{id: id, light: l})
	if m.opts.Debug {
		log.Printf("DEBUG: added light %d (%s) at (%.1f, %.1f) radius=%.1f static=%v",
			id, l.Owner, l.Position.X, l.Position.Y, l.Radius, l.Static)
	}
	return id
}

// Remove unregisters a light. Unknown ids are ignored.
func (m *Manager) Remove(id LightID) {
	slot, ok := m.slots[id]
	if !ok {
		return
	}
	last := len(m.entries) - 1
	if slot != last {
		m.entries[slot] = m.entries[last]
		m.slots[m.entries[slot].id] = slot
	}
	m.entries[last] = entry{}
	m.entries = m.entries[:last]
	delete(m.slots, id)
	if m.hasHero && id == m.hero {
		m.hasHero = false
	}
}

// Get returns a registered light
func (m *Manager) Get(id LightID) (Light, bool) {
	slot, ok := m.slots[id]
	if !ok {
		return Light{}, false
	}
	return m.entries[slot].light, true
}

// SetPosition moves a light; its polygon is recomputed on the next Update
func (m *Manager) SetPosition(id LightID, p geom.Point) {
	slot, ok := m.slots[id]
	if !ok {
		return
	}
	e := &m.entries[slot]
	if e.light.Position != p {
		e.light.Position = p
		e.fresh = false
	}
}

// SetHeroLight moves the hero light, registering it on first use
func (m *Manager) SetHeroLight(p geom.Point) LightID {
	if !m.hasHero {
		l := HeroLight
		l.Position = p
		if m.opts.HeroRadius > 0 {
			l.Radius = m.opts.HeroRadius
		}
		m.hero = m.Add(l)
		m.hasHero = true
		return m.hero
	}
	m.SetPosition(m.hero, p)
	return m.hero
}

// ClearStatic drops every static light, called when a new level is loaded.
// Cached polygons of the remaining lights are invalidated too.
func (m *Manager) ClearStatic() {
	kept := m.entries[:0]
	clear(m.slots)
	for _, e := range m.entries {
		if e.light.Static {
			continue
		}
		e.fresh = false
		e.poly = nil
		m.slots[e.id] = len(kept)
		kept = append(kept, e)
	}
	clear(m.entries[len(kept):])
	m.entries = kept
}

// inView reports whether a light of radius r at p can reach the camera rectangle.
// An empty camera disables culling.
func inView(p geom.Point, r float64, cam geom.Rect) bool {
	if cam.Empty() {
		return true
	}
	return p.X >= float64(cam.X)-r && p.X <= float64(cam.Right())+r &&
		p.Y >= float64(cam.Y)-r && p.Y <= float64(cam.Bottom())+r
}

// Update recomputes the polygon of every light that can reach the camera.
// Static lights that have not moved keep their cached polygon.
func (m *Manager) Update(camera geom.Rect) {
	var pending []int
	for i := range m.entries {
		e := &m.entries[i]
		e.visible = inView(e.light.Position, e.light.Radius, camera)
		if !e.visible {
			continue
		}
		if e.light.Static && e.fresh {
			continue
		}
		pending = append(pending, i)
	}

	if m.opts.Parallel && len(pending) > 1 {
		var g errgroup.Group
		if m.opts.Workers > 0 {
			g.SetLimit(m.opts.Workers)
		}
		for _, i := range pending {
			g.Go(func() error {
				m.entries[i].poly = m.engine.Query(m.entries[i].light.Position)
				return nil
			})
		}
		// Queries never fail
		_ = g.Wait()
	} else {
		for _, i := range pending {
			m.entries[i].poly = m.engine.Query(m.entries[i].light.Position)
		}
	}

	for _, i := range pending {
		m.entries[i].fresh = true
	}
}

// Polygon returns the light's polygon from the last Update
func (m *Manager) Polygon(id LightID) (shadows.Polygon, bool) {
	slot, ok := m.slots[id]
	if !ok || m.entries[slot].poly == nil {
		return nil, false
	}
	return m.entries[slot].poly, true
}

// Visible returns the lights inside the camera on the last Update, in registration order
func (m *Manager) Visible() []Lit {
	out := make([]Lit, 0, len(m.entries))
	for _, e := range m.entries {
		if e.visible && e.poly != nil {
			out = append(out, Lit{ID: e.id, Light: e.light, Polygon: e.poly})
		}
	}
	slices.SortFunc(out, func(a, b Lit) int { return int(a.ID - b.ID) })
	return out
}

// Mask fan-triangulates the light's polygon around the light, in screen space
// relative to cam. The centre vertex carries the light's intensity, the rim fades out.
func (m *Manager) Mask(id LightID, cam geom.Point) ([]render.Vertex, []uint16) {
	slot, ok := m.slots[id]
	if !ok {
		return nil, nil
	}
	e := m.entries[slot]
	return mask(e.light, e.poly, cam)
}

func mask(l Light, poly shadows.Polygon, cam geom.Point) ([]render.Vertex, []uint16) {
	n := len(poly)
	if n < 2 || n+1 > math.MaxUint16 {
		return nil, nil
	}

	r := float32(l.Color.R) / 255
	g := float32(l.Color.G) / 255
	b := float32(l.Color.B) / 255
	vertex := func(p geom.Point, alpha float32) render.Vertex {
		return render.Vertex{
			DstX: float32(p.X - cam.X), DstY: float32(p.Y - cam.Y),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: alpha,
		}
	}

	centre := float32(l.Intensity)
	verts := make([]render.Vertex, 0, n+1)
	verts = append(verts, vertex(l.Position, centre))
	for _, p := range poly {
		alpha := centre
		if l.Radius > 0 {
			alpha *= float32(max(0, 1-geom.Distance(l.Position, p)/l.Radius))
		}
		verts = append(verts, vertex(p, alpha))
	}

	indices := make([]uint16, 0, 3*n)
	for i := 1; i <= n; i++ {
		next := i + 1
		if next > n {
			next = 1
		}
		indices = append(indices, 0, uint16(i), uint16(next))
	}
	return verts, indices
}

// Draw adds every visible light's mask onto dst, sampling src. dst is normally a
// lightmap filled with the ambient level.
func (m *Manager) Draw(dst, src render.Image, cam geom.Point) {
	opts := &render.DrawTrianglesOptions{AntiAlias: true, Blend: render.BlendLighter}
	for _, lit := range m.Visible() {
		verts, indices := mask(lit.Light, lit.Polygon, cam)
		if len(indices) == 0 {
			continue
		}
		dst.DrawTriangles(verts, indices, src, opts)
	}
}

// Lit reports whether any light's current polygon contains the point
func (m *Manager) Lit(x, y float64) bool {
	p := geom.Point{X: x, Y: y}
	for _, e := range m.entries {
		if e.visible && e.poly != nil && e.poly.Contains(p) {
			return true
		}
	}
	return false
}
