// Package ebiten backs the render interfaces with Ebitengine for the windowed
// viewer.
package ebiten

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chosenoffset.com/gloomdelve/internal/render"
)

func init() {
	render.NewGeoM = func() render.GeoM { return &geoM{} }
}

// Renderer draws shapes and debug text onto ebiten images
type Renderer struct{}

// NewRenderer returns the ebiten-backed render.Renderer
func NewRenderer() render.Renderer {
	return &Renderer{}
}

func (r *Renderer) NewImage(width, height int) render.Image {
	return &Image{img: ebiten.NewImage(width, height)}
}

func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	vector.DrawFilledCircle(unwrap(dst), x, y, radius, clr, true)
}

func (r *Renderer) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	vector.StrokeCircle(unwrap(dst), x, y, radius, strokeWidth, clr, true)
}

// DrawText prints with the built-in debug font, which is always white at 6x13
// per glyph; clr and scale are ignored.
func (r *Renderer) DrawText(dst render.Image, str string, x, y int, clr color.Color, scale float64) {
	ebitenutil.DebugPrintAt(unwrap(dst), str, x, y)
}

// Image adapts *ebiten.Image to render.Image
type Image struct {
	img *ebiten.Image
}

func unwrap(i render.Image) *ebiten.Image {
	return i.(*Image).img
}

func (i *Image) Bounds() image.Rectangle { return i.img.Bounds() }

func (i *Image) Size() (width, height int) {
	b := i.img.Bounds()
	return b.Dx(), b.Dy()
}

// SubImage shares pixels with i; atlas tiles are cut this way
func (i *Image) SubImage(r image.Rectangle) render.Image {
	return &Image{img: i.img.SubImage(r).(*ebiten.Image)}
}

func (i *Image) Fill(clr color.Color) { i.img.Fill(clr) }

func (i *Image) Clear() { i.img.Clear() }

func (i *Image) Dispose() {
	if i.img != nil {
		i.img.Dispose()
	}
}

func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	op := &ebiten.DrawImageOptions{}
	if opts != nil {
		op.Blend = toEbitenBlend(opts.Blend)
		if m, ok := opts.GeoM.(*geoM); ok {
			op.GeoM = m.m
		}
	}
	i.img.DrawImage(unwrap(src), op)
}

// DrawTriangles draws light masks; vertex colours carry each light's tint
func (i *Image) DrawTriangles(vertices []render.Vertex, indices []uint16, src render.Image, opts *render.DrawTrianglesOptions) {
	vs := make([]ebiten.Vertex, len(vertices))
	for j, v := range vertices {
		vs[j] = ebiten.Vertex{
			DstX:   v.DstX,
			DstY:   v.DstY,
			SrcX:   v.SrcX,
			SrcY:   v.SrcY,
			ColorR: v.ColorR,
			ColorG: v.ColorG,
			ColorB: v.ColorB,
			ColorA: v.ColorA,
		}
	}

	op := &ebiten.DrawTrianglesOptions{}
	if opts != nil {
		op.AntiAlias = opts.AntiAlias
		op.Blend = toEbitenBlend(opts.Blend)
	}
	i.img.DrawTriangles(vs, indices, unwrap(src), op)
}

// blendMultiply scales the destination by the source colour
var blendMultiply = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
	BlendFactorSourceAlpha:      ebiten.BlendFactorZero,
	BlendFactorDestinationRGB:   ebiten.BlendFactorZero,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

func toEbitenBlend(b render.Blend) ebiten.Blend {
	switch b {
	case render.BlendLighter:
		return ebiten.BlendLighter
	case render.BlendMultiply:
		return blendMultiply
	default:
		return ebiten.BlendSourceOver
	}
}

type geoM struct {
	m ebiten.GeoM
}

func (g *geoM) Translate(tx, ty float64) { g.m.Translate(tx, ty) }

// Input reads the keyboard through inpututil
type Input struct{}

// NewInputManager returns the ebiten-backed render.InputManager
func NewInputManager() render.InputManager {
	return &Input{}
}

var keys = map[render.Key]ebiten.Key{
	render.KeyW:      ebiten.KeyW,
	render.KeyA:      ebiten.KeyA,
	render.KeyS:      ebiten.KeyS,
	render.KeyD:      ebiten.KeyD,
	render.KeyL:      ebiten.KeyL,
	render.KeyUp:     ebiten.KeyArrowUp,
	render.KeyDown:   ebiten.KeyArrowDown,
	render.KeyLeft:   ebiten.KeyArrowLeft,
	render.KeyRight:  ebiten.KeyArrowRight,
	render.KeySpace:  ebiten.KeySpace,
	render.KeyEscape: ebiten.KeyEscape,
}

func (in *Input) IsKeyJustPressed(key render.Key) bool {
	k, ok := keys[key]
	return ok && inpututil.IsKeyJustPressed(k)
}

// Loader reads atlas images from disk
type Loader struct{}

// NewResourceLoader returns the ebiten-backed render.ResourceLoader
func NewResourceLoader() render.ResourceLoader {
	return &Loader{}
}

func (l *Loader) LoadImage(path string) (render.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, err
	}
	return &Image{img: img}, nil
}

// Engine owns the window and the game loop
type Engine struct{}

// NewEngine returns the ebiten-backed render.Engine
func NewEngine() render.Engine {
	return &Engine{}
}

func (e *Engine) SetWindowSize(width, height int) { ebiten.SetWindowSize(width, height) }

func (e *Engine) SetWindowTitle(title string) { ebiten.SetWindowTitle(title) }

func (e *Engine) SetWindowResizable(resizable bool) {
	mode := ebiten.WindowResizingModeDisabled
	if resizable {
		mode = ebiten.WindowResizingModeEnabled
	}
	ebiten.SetWindowResizingMode(mode)
}

// RunGame blocks until the game's Update returns an error or the window closes
func (e *Engine) RunGame(game render.Game) error {
	return ebiten.RunGame(&adapter{game: game})
}

type adapter struct {
	game render.Game
}

func (a *adapter) Update() error { return a.game.Update() }

func (a *adapter) Draw(screen *ebiten.Image) { a.game.Draw(&Image{img: screen}) }

func (a *adapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
