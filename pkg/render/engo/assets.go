// pkg/render/engo/assets.go
package engo

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/opd-ai/go-glide/pkg/entity"
)

// HUDFontURL is the resource name the Go font is registered under.
const HUDFontURL = "fonts/goregular.ttf"

// shipPattern is the nose-up ship silhouette.
var shipPattern = [][]int{
	{0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
	{0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0},
	{0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0},
	{0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 0, 1, 1, 1, 1, 1, 1, 0, 1, 1, 1, 1},
	{1, 1, 1, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 1, 1, 1},
	{1, 1, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 1, 1},
	{1, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 1},
	{0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
}

// AssetManager handles loading and managing scene assets
type AssetManager struct {
	// Ship sprites by model name
	shipSprites map[string]common.Drawable

	fontLoaded bool
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{
		shipSprites: make(map[string]common.Drawable),
	}
}

// LoadFont registers the Go font with engo's resource loader. It does not
// need a GL context.
func (am *AssetManager) LoadFont() error {
	if am.fontLoaded {
		return nil
	}
	if err := engo.Files.LoadReaderData(HUDFontURL, bytes.NewReader(goregular.TTF)); err != nil {
		return fmt.Errorf("failed to load HUD font: %w", err)
	}
	am.fontLoaded = true
	return nil
}

// NewFont builds a HUD font of the given size. LoadFont must have
// succeeded first.
func (am *AssetManager) NewFont(size float64) (*common.Font, error) {
	if !am.fontLoaded {
		return nil, fmt.Errorf("HUD font %s not loaded", HUDFontURL)
	}
	font := &common.Font{
		URL:  HUDFontURL,
		FG:   color.White,
		Size: size,
	}
	if err := font.CreatePreloaded(); err != nil {
		return nil, fmt.Errorf("failed to create HUD font: %w", err)
	}
	return font, nil
}

// LoadAssets builds the ship textures. It needs a GL context.
func (am *AssetManager) LoadAssets() error {
	am.shipSprites[entity.DefaultShipModel] = am.createSprite(16, 16, shipPattern)
	return nil
}

// createSprite creates a sprite from a 2D pattern
func (am *AssetManager) createSprite(width, height int, pattern [][]int) common.Drawable {
	img := createPatternImage(width, height, pattern)
	return common.NewTextureSingle(common.NewImageObject(img))
}

// createPatternImage draws pattern in white onto a transparent image.
func createPatternImage(width, height int, pattern [][]int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)

	for y, row := range pattern {
		if y >= height {
			break
		}
		for x, pixel := range row {
			if x >= width {
				break
			}
			if pixel == 1 {
				img.Set(x, y, color.White)
			}
		}
	}
	return img
}

// GetShipSprite returns the sprite for a ship model. Unknown models, and
// every model before LoadAssets, get a plain triangle.
func (am *AssetManager) GetShipSprite(model string) common.Drawable {
	if sprite, exists := am.shipSprites[model]; exists {
		return sprite
	}
	if sprite, exists := am.shipSprites[entity.DefaultShipModel]; exists {
		return sprite
	}
	return common.Triangle{}
}

// GetPropShape returns the drawable for a prop shape
func (am *AssetManager) GetPropShape(shape entity.ShapeKind) common.Drawable {
	if shape == entity.ShapeSphere {
		return common.Circle{}
	}
	return common.Rectangle{}
}

// GetMarkerShape returns the drawable for the marker cube
func (am *AssetManager) GetMarkerShape() common.Drawable {
	return common.Rectangle{}
}

// GetCursorShape returns the gizmo circle drawn at the cursor
func (am *AssetManager) GetCursorShape() common.Drawable {
	return common.Circle{BorderWidth: 1, BorderColor: color.White}
}
