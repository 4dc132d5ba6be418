package dungeon

import "chosenoffset.com/gloomdelve/internal/core/geom"

// fill stamps every room, then splices every corridor into the rooms it joins
func (d *Dungeon) fill() error {
	for _, r := range d.Rooms {
		if err := d.stampRoom(r); err != nil {
			return err
		}
	}
	for _, c := range d.CorridorsH {
		if err := d.stampHorizontal(c.Rect); err != nil {
			return err
		}
	}
	for _, c := range d.CorridorsV {
		if err := d.stampVertical(c.Rect); err != nil {
			return err
		}
	}
	return nil
}

// stampRoom writes the interior floor and the wall ring around it
func (d *Dungeon) stampRoom(r geom.Rect) error {
	g := d.Grid
	var err error
	set := func(x, y int, id string) {
		if err == nil {
			err = g.SetWall(x, y, id)
		}
	}

	g.cellsIn(r, func(x, y int) {
		if err == nil {
			err = g.SetFloor(x, y, TileFloor)
		}
	})

	top, bottom := r.Y-1, r.Bottom()
	left, right := r.X-1, r.Right()
	for x := r.X; x < r.Right(); x++ {
		set(x, top, TileWallMid)
		set(x, bottom, TileWallTopMid)
	}
	for y := r.Y; y < r.Bottom(); y++ {
		set(left, y, TileSideMidLeft)
		set(right, y, TileSideMidRight)
	}
	set(left, top, TileCornerTopLeft)
	set(right, top, TileCornerTopRight)
	set(left, bottom, TileCornerBottomLeft)
	set(right, bottom, TileCornerBottomRight)
	return err
}

// stampHorizontal splices both mouths and lays the corridor body between them
func (d *Dungeon) stampHorizontal(c geom.Rect) error {
	y := c.Y
	first, last := c.X, c.Right()-1
	for _, x := range []int{first, last} {
		if err := d.spliceMouth(geom.Cell{X: x, Y: y - 1}, geom.Cell{X: x, Y: y}, geom.Cell{X: x, Y: y + 1}); err != nil {
			return err
		}
	}
	for x := first + 1; x < last; x++ {
		if err := d.stampBody(x, y, geom.Cell{X: x, Y: y - 1}, TileWallMid, geom.Cell{X: x, Y: y + 1}, TileWallTopMid); err != nil {
			return err
		}
	}
	return nil
}

// stampVertical splices both mouths and lays the corridor body between them
func (d *Dungeon) stampVertical(c geom.Rect) error {
	x := c.X
	first, last := c.Y, c.Bottom()-1
	for _, y := range []int{first, last} {
		if err := d.spliceMouth(geom.Cell{X: x - 1, Y: y}, geom.Cell{X: x, Y: y}, geom.Cell{X: x + 1, Y: y}); err != nil {
			return err
		}
	}
	for y := first + 1; y < last; y++ {
		if err := d.stampBody(x, y, geom.Cell{X: x - 1, Y: y}, TileSideMidLeft, geom.Cell{X: x + 1, Y: y}, TileSideMidRight); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dungeon) spliceMouth(before, opening, after geom.Cell) error {
	if err := d.Grid.spliceCell(before.X, before.Y, RoleJambBefore); err != nil {
		return err
	}
	if err := d.Grid.spliceCell(opening.X, opening.Y, RoleOpening); err != nil {
		return err
	}
	return d.Grid.spliceCell(after.X, after.Y, RoleJambAfter)
}

// stampBody lays one corridor floor cell and its two side walls; all three must be empty
func (d *Dungeon) stampBody(x, y int, sideA geom.Cell, idA string, sideB geom.Cell, idB string) error {
	g := d.Grid
	for _, c := range []geom.Cell{{X: x, Y: y}, sideA, sideB} {
		if existing := g.At(c.X, c.Y); !existing.Empty() {
			id := existing.Wall
			if id == "" {
				id = existing.Floor
			}
			return &SpliceError{X: c.X, Y: c.Y, Existing: id, Role: RoleBody}
		}
	}
	if err := g.SetFloor(x, y, TileFloor); err != nil {
		return err
	}
	if err := g.SetWall(sideA.X, sideA.Y, idA); err != nil {
		return err
	}
	return g.SetWall(sideB.X, sideB.Y, idB)
}
