package dungeon

// SpliceRole is the part a wall cell plays at a corridor mouth
type SpliceRole int

const (
	// RoleJambBefore is the wall cell above (horizontal corridor) or left of (vertical corridor) the opening
	RoleJambBefore SpliceRole = iota
	// RoleOpening is the wall cell the corridor passes through
	RoleOpening
	// RoleJambAfter is the wall cell below or right of the opening
	RoleJambAfter
	// RoleBody is a corridor floor or side-wall cell between the two mouths; it must be empty
	RoleBody
)

func (r SpliceRole) String() string {
	switch r {
	case RoleJambBefore:
		return "jamb-before"
	case RoleOpening:
		return "opening"
	case RoleJambAfter:
		return "jamb-after"
	case RoleBody:
		return "corridor-body"
	}
	return "unknown"
}

type spliceKey struct {
	existing string
	role     SpliceRole
}

// spliceTable maps (existing wall id, role) to the replacement id. Empty = wall removed.
var spliceTable = map[spliceKey]string{
	{TileSideMidRight, RoleJambBefore}: TileSideFrontRight,
	{TileSideMidRight, RoleOpening}:    "",
	{TileSideMidRight, RoleJambAfter}:  TileSideTopRight,

	{TileSideMidLeft, RoleJambBefore}: TileSideFrontLeft,
	{TileSideMidLeft, RoleOpening}:    "",
	{TileSideMidLeft, RoleJambAfter}:  TileSideTopLeft,

	{TileWallMid, RoleJambBefore}: TileInnerCornerMidRight,
	{TileWallMid, RoleOpening}:    "",
	{TileWallMid, RoleJambAfter}:  TileInnerCornerMidLeft,

	{TileWallTopMid, RoleJambBefore}: TileInnerCornerTRight,
	{TileWallTopMid, RoleOpening}:    "",
	{TileWallTopMid, RoleJambAfter}:  TileInnerCornerTLeft,
}

// spliceReplacement looks up the replacement for a mouth cell.
// ok is false for any combination the table does not know, which is a generation defect.
func spliceReplacement(existing string, role SpliceRole) (string, bool) {
	id, ok := spliceTable[spliceKey{existing, role}]
	return id, ok
}

// spliceCell rewrites one mouth cell in place, or reports the defect
func (g *Grid) spliceCell(x, y int, role SpliceRole) error {
	existing := g.At(x, y).Wall
	replacement, ok := spliceReplacement(existing, role)
	if !ok {
		return &SpliceError{X: x, Y: y, Existing: existing, Role: role}
	}
	if err := g.SetWall(x, y, replacement); err != nil {
		return err
	}
	if role == RoleOpening {
		return g.SetFloor(x, y, TileFloor)
	}
	return nil
}
