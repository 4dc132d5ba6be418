package dungeon

import "fmt"

// Config holds the generation parameters for one level
type Config struct {
	Width  int `json:"width"`  // Grid width in cells
	Height int `json:"height"` // Grid height in cells
	Rooms  int `json:"rooms"`  // Rooms to place (0 = 1 + level)

	RoomMinW int `json:"room_min_w"`
	RoomMaxW int `json:"room_max_w"`
	RoomMinH int `json:"room_min_h"`
	RoomMaxH int `json:"room_max_h"`

	RoomMargin         int `json:"room_margin"`          // Clearance around a new room against rooms and corridors
	CorridorMargin     int `json:"corridor_margin"`      // Clearance across a corridor's short axis
	MinCorridorOverlap int `json:"min_corridor_overlap"` // Shared span two rooms need before a corridor can join them
	MaxCorridorLength  int `json:"max_corridor_length"`  // Longest corridor, in cells between the two room interiors
	MaxRoomAttempts    int `json:"max_room_attempts"`    // Rejected samples allowed per room before giving up

	FloorVariantChance float64 `json:"floor_variant_chance"`
	WallVariantChance  float64 `json:"wall_variant_chance"`

	Debug bool `json:"debug"`
}

// borderPad keeps every room two cells from the grid edge: one for its wall ring,
// one for the extruded top piece above it.
const borderPad = 2

// DefaultConfig returns the tunneling-variant defaults
func DefaultConfig() Config {
	return Config{
		Width:              200,
		Height:             120,
		RoomMinW:           6,
		RoomMaxW:           15,
		RoomMinH:           4,
		RoomMaxH:           10,
		RoomMargin:         3,
		CorridorMargin:     2,
		MinCorridorOverlap: 3,
		MaxCorridorLength:  12,
		MaxRoomAttempts:    5000,
		FloorVariantChance: 0.20,
		WallVariantChance:  0.25,
	}
}

// RoomsForLevel is the room-count formula
func RoomsForLevel(level int) int {
	if level < 0 {
		level = 0
	}
	return 1 + level
}

// Validate rejects parameters that can never produce a level
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Rooms <= 0 {
		return fmt.Errorf("%w: room count %d", ErrInvalidConfig, c.Rooms)
	}
	if c.RoomMinW <= 0 || c.RoomMinH <= 0 || c.RoomMinW > c.RoomMaxW || c.RoomMinH > c.RoomMaxH {
		return fmt.Errorf("%w: room size bounds w=[%d,%d] h=[%d,%d]",
			ErrInvalidConfig, c.RoomMinW, c.RoomMaxW, c.RoomMinH, c.RoomMaxH)
	}
	if c.MinCorridorOverlap < 3 {
		return fmt.Errorf("%w: corridor overlap %d leaves no room for jambs", ErrInvalidConfig, c.MinCorridorOverlap)
	}
	if c.RoomMargin < 2 || c.CorridorMargin < 2 {
		return fmt.Errorf("%w: margins room=%d corridor=%d must be at least 2 so walls never share a cell",
			ErrInvalidConfig, c.RoomMargin, c.CorridorMargin)
	}
	if c.MaxCorridorLength < 2 {
		return fmt.Errorf("%w: max corridor length %d", ErrInvalidConfig, c.MaxCorridorLength)
	}
	if c.MaxRoomAttempts <= 0 {
		return fmt.Errorf("%w: max room attempts %d", ErrInvalidConfig, c.MaxRoomAttempts)
	}
	if c.RoomMinW+2*borderPad >= c.Width || c.RoomMinH+2*borderPad >= c.Height {
		return fmt.Errorf("%w: cannot generate level with %d rooms in %dx%d grid: smallest room %dx%d does not fit",
			ErrInvalidConfig, c.Rooms, c.Width, c.Height, c.RoomMinW, c.RoomMinH)
	}
	return nil
}
