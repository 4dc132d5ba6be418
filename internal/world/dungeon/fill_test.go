package dungeon

import (
	"errors"
	"strings"
	"testing"

	"chosenoffset.com/gloomdelve/internal/core/geom"
)

func TestSpliceTable(t *testing.T) {
	for key, want := range spliceTable {
		got, ok := spliceReplacement(key.existing, key.role)
		if !ok || got != want {
			t.Errorf("splice(%s, %s) = %q, %v; want %q", key.existing, key.role, got, ok, want)
		}
	}
	if _, ok := spliceReplacement(TileCornerTopLeft, RoleOpening); ok {
		t.Error("corner tile should not splice")
	}
}

func TestSpliceDefectOnCorner(t *testing.T) {
	d := &Dungeon{Grid: NewGrid(10, 10)}
	if err := d.Grid.SetWall(2, 1, TileCornerTopRight); err != nil {
		t.Fatal(err)
	}

	err := d.stampHorizontal(geom.Rect{X: 2, Y: 2, W: 3, H: 1})
	if !errors.Is(err, ErrSpliceDefect) {
		t.Fatalf("err = %v, want ErrSpliceDefect", err)
	}
	var se *SpliceError
	if !errors.As(err, &se) {
		t.Fatalf("err %T is not a *SpliceError", err)
	}
	if se.X != 2 || se.Y != 1 || se.Existing != TileCornerTopRight || se.Role != RoleJambBefore {
		t.Errorf("splice error = %+v", se)
	}
	if !strings.Contains(se.Error(), "jamb-before") {
		t.Errorf("message %q does not name the role", se.Error())
	}
}

func mouthGrid(t *testing.T) *Dungeon {
	t.Helper()
	d := &Dungeon{Grid: NewGrid(10, 6)}
	for y := 1; y <= 3; y++ {
		if err := d.Grid.SetWall(2, y, TileSideMidRight); err != nil {
			t.Fatal(err)
		}
		if err := d.Grid.SetWall(5, y, TileSideMidLeft); err != nil {
			t.Fatal(err)
		}
	}
	return d
}

func TestStampHorizontalCorridor(t *testing.T) {
	d := mouthGrid(t)
	if err := d.stampHorizontal(geom.Rect{X: 2, Y: 2, W: 4, H: 1}); err != nil {
		t.Fatal(err)
	}
	for x := 2; x <= 5; x++ {
		if !d.Walkable(x, 2) {
			t.Errorf("(%d,2) should be walkable", x)
		}
	}
	for x := 3; x <= 4; x++ {
		if _, w := d.CellTileIDs(x, 1); w != TileWallMid {
			t.Errorf("(%d,1) wall = %q", x, w)
		}
		if _, w := d.CellTileIDs(x, 3); w != TileWallTopMid {
			t.Errorf("(%d,3) wall = %q", x, w)
		}
	}
}

func TestStampBodyDefect(t *testing.T) {
	d := mouthGrid(t)
	if err := d.Grid.SetFloor(3, 2, TileFloor); err != nil {
		t.Fatal(err)
	}

	err := d.stampHorizontal(geom.Rect{X: 2, Y: 2, W: 4, H: 1})
	var se *SpliceError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *SpliceError", err)
	}
	if se.Role != RoleBody || se.X != 3 || se.Y != 2 {
		t.Errorf("splice error = %+v", se)
	}
}

func TestStampVerticalCorridor(t *testing.T) {
	d := &Dungeon{Grid: NewGrid(8, 10)}
	for x := 1; x <= 3; x++ {
		_ = d.Grid.SetWall(x, 2, TileWallTopMid)
		_ = d.Grid.SetWall(x, 6, TileWallMid)
	}
	if err := d.stampVertical(geom.Rect{X: 2, Y: 2, W: 1, H: 5}); err != nil {
		t.Fatal(err)
	}

	want := map[geom.Cell]string{
		{X: 1, Y: 2}: TileInnerCornerTRight,
		{X: 3, Y: 2}: TileInnerCornerTLeft,
		{X: 1, Y: 6}: TileInnerCornerMidRight,
		{X: 3, Y: 6}: TileInnerCornerMidLeft,
		{X: 1, Y: 4}: TileSideMidLeft,
		{X: 3, Y: 4}: TileSideMidRight,
	}
	for c, id := range want {
		if _, w := d.CellTileIDs(c.X, c.Y); w != id {
			t.Errorf("%v wall = %q, want %q", c, w, id)
		}
	}
	for y := 2; y <= 6; y++ {
		if !d.Walkable(2, y) {
			t.Errorf("(2,%d) should be walkable", y)
		}
	}
}

func openRoom(t *testing.T, r geom.Rect) *Dungeon {
	t.Helper()
	d := &Dungeon{Grid: NewGrid(r.Right()+2, r.Bottom()+2), Rooms: []geom.Rect{r}}
	if err := d.stampRoom(r); err != nil {
		t.Fatal(err)
	}
	return d
}

func TestFindFreeRect(t *testing.T) {
	d := openRoom(t, geom.Rect{X: 2, Y: 2, W: 4, H: 3})

	if got := d.FindFreeRect(1, 1, nil); len(got) != 12 {
		t.Errorf("1x1 blocks = %d, want 12", len(got))
	}
	two := d.FindFreeRect(2, 2, nil)
	if len(two) != 6 {
		t.Errorf("2x2 blocks = %d, want 6", len(two))
	}
	if len(two) > 0 && two[0] != (geom.Cell{X: 2, Y: 2}) {
		t.Errorf("first 2x2 block at %v, want (2,2)", two[0])
	}
	if got := d.FindFreeRect(5, 1, nil); len(got) != 0 {
		t.Errorf("5x1 blocks = %d, want 0", len(got))
	}

	noFirstColumn := func(x, y int) bool { return x != 2 }
	if got := d.FindFreeRect(1, 1, noFirstColumn); len(got) != 9 {
		t.Errorf("filtered 1x1 blocks = %d, want 9", len(got))
	}
}

func TestPlaceLadderFallsBackToEdge(t *testing.T) {
	// A 2x2 room has no cell with eight floor neighbours
	d := openRoom(t, geom.Rect{X: 2, Y: 2, W: 2, H: 2})
	got, err := d.PlaceLadder(geom.Cell{X: 2, Y: 2})
	if err != nil {
		t.Fatal(err)
	}
	if got != (geom.Cell{X: 3, Y: 3}) {
		t.Errorf("ladder at %v, want (3,3)", got)
	}
	if f, _ := d.CellTileIDs(3, 3); f != TileLadder {
		t.Errorf("ladder floor = %q", f)
	}
}

func TestPlaceLadderNoFloor(t *testing.T) {
	d := &Dungeon{Grid: NewGrid(4, 4)}
	if _, err := d.PlaceLadder(geom.Cell{}); !errors.Is(err, ErrNoLadderCell) {
		t.Errorf("err = %v, want ErrNoLadderCell", err)
	}
}

func TestDump(t *testing.T) {
	d := openRoom(t, geom.Rect{X: 1, Y: 1, W: 3, H: 1})
	d.Spawn = geom.Cell{X: 2, Y: 1}
	want := "" +
		"##### \n" +
		"#.@.# \n" +
		"##### \n" +
		"      \n" +
		""
	if got := d.String(); got != want {
		t.Errorf("dump:\n%s\nwant:\n%s", got, want)
	}
}
