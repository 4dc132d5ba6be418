package dungeon

import (
	"errors"
	"testing"

	"chosenoffset.com/gloomdelve/internal/core/geom"
	"chosenoffset.com/gloomdelve/internal/core/rng"
)

// scripted hands out queued Range values in order, then lo. Chance is always false.
type scripted struct {
	queue []int
}

func (s *scripted) NextInt() uint32     { return 0 }
func (s *scripted) NextFloat() float64  { return 0 }
func (s *scripted) Chance(float64) bool { return false }

func (s *scripted) Range(lo, hi int) int {
	if len(s.queue) == 0 {
		return lo
	}
	v := s.queue[0]
	s.queue = s.queue[1:]
	return v
}

func levelConfig(level int) Config {
	cfg := DefaultConfig()
	cfg.Rooms = RoomsForLevel(level)
	return cfg
}

func TestGenerateDeterministic(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		cfg := levelConfig(6)
		a, err := Generate(cfg, rng.New(seed))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		b, err := Generate(cfg, rng.New(seed))
		if err != nil {
			t.Fatalf("seed %d (second run): %v", seed, err)
		}
		if !a.Grid.Equal(b.Grid) {
			t.Errorf("seed %d: grids differ between runs", seed)
		}
		if len(a.Rooms) != len(b.Rooms) || a.Ladder != b.Ladder {
			t.Errorf("seed %d: layouts differ between runs", seed)
		}
		for i := range a.Rooms {
			if a.Rooms[i] != b.Rooms[i] {
				t.Errorf("seed %d: room %d differs: %+v vs %+v", seed, i, a.Rooms[i], b.Rooms[i])
			}
		}
	}
}

func TestGenerateRoomCount(t *testing.T) {
	for level := 0; level < 8; level++ {
		d, err := Generate(levelConfig(level), rng.New(uint64(100+level)))
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		if want := 1 + level; len(d.Rooms) != want {
			t.Errorf("level %d: got %d rooms, want %d", level, len(d.Rooms), want)
		}
		if d.Spawn != d.Rooms[0].Center() {
			t.Errorf("level %d: spawn %v is not the centre of the first room", level, d.Spawn)
		}
	}
}

func TestGenerateNonOverlap(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		cfg := levelConfig(9)
		d, err := Generate(cfg, rng.New(seed))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}

		for i := range d.Rooms {
			exp := d.Rooms[i].Expand(cfg.RoomMargin, cfg.RoomMargin)
			for j := range d.Rooms {
				if i != j && exp.Overlaps(d.Rooms[j]) {
					t.Errorf("seed %d: rooms %d and %d closer than margin", seed, i, j)
				}
			}
		}

		corridors := d.Corridors()
		for i, c := range corridors {
			exp := c.expanded(cfg.CorridorMargin)
			for j, r := range d.Rooms {
				if c.Overlaps(r) {
					t.Errorf("seed %d: corridor %d overlaps room %+v", seed, i, r)
				}
				if j != c.From && j != c.To && exp.Overlaps(r) {
					t.Errorf("seed %d: corridor %d closer than margin to room %d", seed, i, j)
				}
			}
			for j, o := range corridors {
				if i != j && exp.Overlaps(o.Rect) {
					t.Errorf("seed %d: corridors %d and %d closer than margin", seed, i, j)
				}
			}
		}
	}
}

func TestGenerateConnected(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		d, err := Generate(levelConfig(7), rng.New(seed))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}

		parent := make([]int, len(d.Rooms))
		for i := range parent {
			parent[i] = i
		}
		var find func(int) int
		find = func(i int) int {
			if parent[i] != i {
				parent[i] = find(parent[i])
			}
			return parent[i]
		}
		for _, c := range d.Corridors() {
			parent[find(c.From)] = find(c.To)
		}

		root := find(0)
		for i := range d.Rooms {
			if find(i) != root {
				t.Errorf("seed %d: room %d not connected to room 0", seed, i)
			}
		}
	}
}

func TestGenerateWallClosure(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		d, err := Generate(levelConfig(8), rng.New(seed))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		g := d.Grid
		g.Each(func(x, y int, c Cell) {
			if c.Floor == "" || c.Wall != "" {
				return
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if g.At(x+dx, y+dy).Empty() {
						t.Errorf("seed %d: walkable (%d,%d) touches empty (%d,%d)", seed, x, y, x+dx, y+dy)
					}
				}
			}
		})
	}
}

func TestGenerateWallsNeverFloat(t *testing.T) {
	for level := 1; level <= 12; level += 3 {
		for seed := uint64(1); seed <= 10; seed++ {
			cfg := levelConfig(level)
			cfg.WallVariantChance = 0.5
			d, err := Generate(cfg, rng.New(seed))
			if err != nil {
				t.Fatalf("level %d seed %d: %v", level, seed, err)
			}
			g := d.Grid
			g.Each(func(x, y int, c Cell) {
				// The fountain top overhangs the room's top wall
				if c.Wall == "" || c.Wall == TileFountainTop {
					return
				}
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if g.HasFloor(x+dx, y+dy) {
							return
						}
					}
				}
				t.Errorf("level %d seed %d: %s at (%d,%d) has no floor beside it", level, seed, c.Wall, x, y)
			})
		}
	}
}

func TestGenerateLadderOnFloor(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		d, err := Generate(levelConfig(4), rng.New(seed))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		floor, wall := d.CellTileIDs(d.Ladder.X, d.Ladder.Y)
		if floor != TileLadder || wall != "" {
			t.Errorf("seed %d: ladder cell holds floor=%q wall=%q", seed, floor, wall)
		}
		if d.Ladder == d.Spawn {
			t.Errorf("seed %d: ladder placed on spawn", seed)
		}
	}
}

func TestGenerateFountainsComplete(t *testing.T) {
	cfg := levelConfig(10)
	cfg.WallVariantChance = 1
	d, err := Generate(cfg, rng.New(3))
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range d.Fountains {
		_, wall := d.CellTileIDs(f.X, f.Y)
		if !IsFountain(wall) {
			t.Errorf("fountain %v holds %q", f, wall)
		}
		if _, above := d.CellTileIDs(f.X, f.Y-1); above != TileFountainTop {
			t.Errorf("fountain %v has %q above", f, above)
		}
		below, _ := d.CellTileIDs(f.X, f.Y+1)
		if below != fountainBasin[wall] {
			t.Errorf("fountain %v has floor %q below, want %q", f, below, fountainBasin[wall])
		}
	}
}

// A scripted RNG places a single 5x3 room at (10,8) with no decoration
func TestGenerateSingleScriptedRoom(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 30, 20
	cfg.Rooms = 1
	cfg.RoomMinW, cfg.RoomMaxW = 5, 5
	cfg.RoomMinH, cfg.RoomMaxH = 3, 3

	d, err := Generate(cfg, &scripted{queue: []int{5, 3, 10, 8}})
	if err != nil {
		t.Fatal(err)
	}

	want := geom.Rect{X: 10, Y: 8, W: 5, H: 3}
	if len(d.Rooms) != 1 || d.Rooms[0] != want {
		t.Fatalf("rooms = %+v, want [%+v]", d.Rooms, want)
	}
	if len(d.Corridors()) != 0 {
		t.Errorf("got %d corridors, want 0", len(d.Corridors()))
	}

	walls := map[geom.Cell]string{
		{X: 9, Y: 7}:   TileCornerTopLeft,
		{X: 15, Y: 7}:  TileCornerTopRight,
		{X: 9, Y: 11}:  TileCornerBottomLeft,
		{X: 15, Y: 11}: TileCornerBottomRight,
		{X: 12, Y: 7}:  TileWallMid,
		{X: 12, Y: 11}: TileWallTopMid,
		{X: 9, Y: 9}:   TileSideMidLeft,
		{X: 15, Y: 9}:  TileSideMidRight,
	}
	for c, id := range walls {
		if _, got := d.CellTileIDs(c.X, c.Y); got != id {
			t.Errorf("wall at %v = %q, want %q", c, got, id)
		}
	}

	floors := 0
	d.Grid.Each(func(x, y int, c Cell) {
		if c.Floor != "" {
			floors++
			if !want.Contains(geom.Cell{X: x, Y: y}) {
				t.Errorf("floor outside room at (%d,%d)", x, y)
			}
		}
	})
	if floors != 15 {
		t.Errorf("got %d floor cells, want 15", floors)
	}

	// Interior cells are (11..13, 9); spawn is (12,9), so the first farthest is (11,9)
	if d.Ladder != (geom.Cell{X: 11, Y: 9}) {
		t.Errorf("ladder at %v, want (11,9)", d.Ladder)
	}
}

// Two rooms ten columns apart sharing six rows get one horizontal corridor
func TestGenerateTwoRoomCorridor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 40, 20
	cfg.Rooms = 2

	r := &scripted{queue: []int{
		8, 6, 5, 5, // first room
		8, 6, 23, 5, // second room
		7, // corridor row
	}}
	d, err := Generate(cfg, r)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.CorridorsH) != 1 || len(d.CorridorsV) != 0 {
		t.Fatalf("got %d horizontal and %d vertical corridors, want 1 and 0", len(d.CorridorsH), len(d.CorridorsV))
	}
	c := d.CorridorsH[0]
	if want := (geom.Rect{X: 13, Y: 7, W: 10, H: 1}); c.Rect != want {
		t.Errorf("corridor = %+v, want %+v", c.Rect, want)
	}
	if c.From != 0 || c.To != 1 {
		t.Errorf("corridor joins %d->%d, want 0->1", c.From, c.To)
	}

	checks := []struct {
		x, y        int
		floor, wall string
	}{
		{13, 6, "", TileSideFrontRight},
		{13, 7, TileFloor, ""},
		{13, 8, "", TileSideTopRight},
		{22, 6, "", TileSideFrontLeft},
		{22, 7, TileFloor, ""},
		{22, 8, "", TileSideTopLeft},
		{17, 6, "", TileWallMid},
		{17, 7, TileFloor, ""},
		{17, 8, "", TileWallTopMid},
	}
	for _, ck := range checks {
		floor, wall := d.CellTileIDs(ck.x, ck.y)
		if floor != ck.floor || wall != ck.wall {
			t.Errorf("(%d,%d) = (%q,%q), want (%q,%q)", ck.x, ck.y, floor, wall, ck.floor, ck.wall)
		}
	}
}

func TestGenerateRoomLargerThanGrid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 10, 10
	cfg.Rooms = 1
	cfg.RoomMinW, cfg.RoomMaxW = 12, 15

	_, err := Generate(cfg, rng.New(1))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestGeneratePlacementExhausted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 24, 16
	cfg.Rooms = 12
	cfg.MaxRoomAttempts = 200

	_, err := Generate(cfg, rng.New(9))
	if !errors.Is(err, ErrPlacementExhausted) {
		t.Fatalf("err = %v, want ErrPlacementExhausted", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"no rooms", func(c *Config) { c.Rooms = 0 }, false},
		{"zero width", func(c *Config) { c.Width = 0 }, false},
		{"inverted sizes", func(c *Config) { c.RoomMinW = 20 }, false},
		{"overlap too small", func(c *Config) { c.MinCorridorOverlap = 2 }, false},
		{"room margin too small", func(c *Config) { c.RoomMargin = 1 }, false},
		{"corridor margin too small", func(c *Config) { c.CorridorMargin = 1 }, false},
		{"no attempts", func(c *Config) { c.MaxRoomAttempts = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := levelConfig(2)
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
