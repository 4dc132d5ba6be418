package atlas

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"chosenoffset.com/gloomdelve/internal/render"
)

// fakeImage remembers the rectangle it was cut from
type fakeImage struct {
	rect image.Rectangle
}

func (f *fakeImage) Bounds() image.Rectangle                          { return f.rect }
func (f *fakeImage) Size() (int, int)                                 { return f.rect.Dx(), f.rect.Dy() }
func (f *fakeImage) SubImage(r image.Rectangle) render.Image          { return &fakeImage{rect: r} }
func (f *fakeImage) Fill(color.Color)                                 {}
func (f *fakeImage) Clear()                                           {}
func (f *fakeImage) Dispose()                                         {}
func (f *fakeImage) DrawImage(render.Image, *render.DrawImageOptions) {}
func (f *fakeImage) DrawTriangles([]render.Vertex, []uint16, render.Image, *render.DrawTrianglesOptions) {
}

type fakeLoader struct {
	path string
	err  error
}

func (l *fakeLoader) LoadImage(path string) (render.Image, error) {
	l.path = path
	if l.err != nil {
		return nil, l.err
	}
	return &fakeImage{rect: image.Rect(0, 0, 64, 32)}, nil
}

const testAtlas = `{
	"name": "dungeon",
	"image_path": "dungeon.png",
	"tile_width": 16,
	"tile_height": 16,
	"tiles": [
		{"name": "floor_1", "atlas_x": 0, "atlas_y": 0},
		{"name": "wall_mid", "atlas_x": 3, "atlas_y": 1}
	]
}`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(testAtlas))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "dungeon" || cfg.TileWidth != 16 || len(cfg.Tiles) != 2 {
		t.Errorf("parsed %+v", cfg)
	}

	bad := map[string]string{
		"syntax":     `{`,
		"dimensions": `{"image_path": "a.png", "tile_width": 0, "tile_height": 16}`,
		"no image":   `{"tile_width": 16, "tile_height": 16}`,
		"unnamed":    `{"image_path": "a.png", "tile_width": 16, "tile_height": 16, "tiles": [{"atlas_x": 1}]}`,
		"duplicate":  `{"image_path": "a.png", "tile_width": 16, "tile_height": 16, "tiles": [{"name": "a"}, {"name": "a"}]}`,
	}
	for name, data := range bad {
		if _, err := Parse([]byte(data)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestLoadResolvesImageRelativeToConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dungeon.json")
	if err := os.WriteFile(path, []byte(testAtlas), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := &fakeLoader{}
	a, err := Load(path, loader)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "dungeon.png"); loader.path != want {
		t.Errorf("loaded %s, want %s", loader.path, want)
	}

	img, ok := a.Tile("wall_mid")
	if !ok {
		t.Fatal("wall_mid missing")
	}
	if want := image.Rect(48, 16, 64, 32); img.Bounds() != want {
		t.Errorf("wall_mid bounds = %v, want %v", img.Bounds(), want)
	}
	if _, ok := a.Tile("floor_9"); ok {
		t.Error("unknown tile found")
	}
	if got := a.Missing([]string{"floor_1", "floor_9", "wall_mid"}); len(got) != 1 || got[0] != "floor_9" {
		t.Errorf("Missing = %v, want [floor_9]", got)
	}
}

func TestLoadImageError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dungeon.json")
	if err := os.WriteFile(path, []byte(testAtlas), 0o644); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("boom")
	if _, err := Load(path, &fakeLoader{err: boom}); !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped boom", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.json"), &fakeLoader{}); err == nil {
		t.Error("missing config should fail")
	}
}
