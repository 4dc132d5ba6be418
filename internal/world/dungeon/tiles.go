package dungeon

import "strings"

// Floor tile ids
const (
	TileFloor       = "floor_1"
	TileLadder      = "floor_ladder"
	TileBasinRed    = "wall_fountain_basin_red"
	TileBasinBlue   = "wall_fountain_basin_blue"
	TileGooBase     = "wall_goo_base"
	floorTilePrefix = "floor_"
)

// Wall tile ids stamped by the tile fill
const (
	TileCornerTopLeft     = "wall_corner_top_left"
	TileCornerTopRight    = "wall_corner_top_right"
	TileCornerBottomLeft  = "wall_corner_bottom_left"
	TileCornerBottomRight = "wall_corner_bottom_right"
	TileWallMid           = "wall_mid"
	TileWallTopMid        = "wall_top_mid"
	TileSideMidLeft       = "wall_side_mid_left"
	TileSideMidRight      = "wall_side_mid_right"
)

// Wall tile ids written by corridor splices
const (
	TileSideFrontLeft       = "wall_side_front_left"
	TileSideFrontRight      = "wall_side_front_right"
	TileSideTopLeft         = "wall_side_top_left"
	TileSideTopRight        = "wall_side_top_right"
	TileInnerCornerMidLeft  = "wall_inner_corner_mid_left"
	TileInnerCornerMidRight = "wall_inner_corner_mid_right"
	TileInnerCornerTLeft    = "wall_inner_corner_t_top_left"
	TileInnerCornerTRight   = "wall_inner_corner_t_top_right"
)

// Decorative wall tile ids
const (
	TileFountainTop     = "wall_fountain_top"
	TileFountainMidRed  = "wall_fountain_mid_red"
	TileFountainMidBlue = "wall_fountain_mid_blue"
	TileGoo             = "wall_goo"
)

// FloorVariants are the decorative swaps for a plain floor cell
var FloorVariants = []string{
	"floor_2", "floor_3", "floor_4", "floor_5", "floor_6", "floor_7", "floor_8",
}

// WallVariants are the decorative swaps for a wall_mid cell
var WallVariants = []string{
	"wall_hole_1",
	"wall_hole_2",
	"wall_banner_red",
	"wall_banner_blue",
	"wall_banner_green",
	"wall_banner_yellow",
	TileGoo,
	TileFountainMidRed,
	TileFountainMidBlue,
}

// fountainBasin maps a fountain face to the basin floor piece below it
var fountainBasin = map[string]string{
	TileFountainMidRed:  TileBasinRed,
	TileFountainMidBlue: TileBasinBlue,
}

// IsPlainFloor reports whether id is a walkable floor variant (not a basin or goo puddle)
func IsPlainFloor(id string) bool {
	return strings.HasPrefix(id, floorTilePrefix) && id != TileLadder
}

// IsFountain reports whether id is a fountain face
func IsFountain(id string) bool {
	_, ok := fountainBasin[id]
	return ok
}

// AllTileIDs lists every tile id the generator can emit, for atlas building
func AllTileIDs() []string {
	ids := []string{
		TileFloor, TileLadder, TileBasinRed, TileBasinBlue, TileGooBase,
		TileCornerTopLeft, TileCornerTopRight, TileCornerBottomLeft, TileCornerBottomRight,
		TileWallMid, TileWallTopMid, TileSideMidLeft, TileSideMidRight,
		TileSideFrontLeft, TileSideFrontRight, TileSideTopLeft, TileSideTopRight,
		TileInnerCornerMidLeft, TileInnerCornerMidRight, TileInnerCornerTLeft, TileInnerCornerTRight,
		TileFountainTop,
	}
	ids = append(ids, FloorVariants...)
	return append(ids, WallVariants...)
}
