// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"
	"math"

	"github.com/EngoEngine/engo/common"
)

// Table colors
var (
	WallColor   = color.RGBA{0, 0, 0, 255}
	FeltColor   = color.RGBA{0, 255, 0, 255}
	BallColor   = color.RGBA{255, 255, 255, 255}
	BorderColor = color.RGBA{0, 0, 0, 255}
	GuideColor  = color.RGBA{0, 0, 0, 255}
)

// BallBorder is the width of the dark ring around each ball
const BallBorder = 2

// AssetManager builds the textures the table scene draws with. Sprites are
// generated in memory; there are no asset files.
type AssetManager struct {
	ballSprites map[int]common.Drawable
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{
		ballSprites: make(map[int]common.Drawable),
	}
}

// LoadBall creates the sprite for a ball of the given radius. It needs an
// OpenGL context.
func (am *AssetManager) LoadBall(radius float64) common.Drawable {
	r := int(math.Ceil(radius))
	if sprite, ok := am.ballSprites[r]; ok {
		return sprite
	}
	sprite := common.NewTextureSingle(common.NewImageObject(BallImage(r, BallBorder)))
	am.ballSprites[r] = sprite
	return sprite
}

// GetBallSprite returns a loaded ball sprite, or nil if LoadBall has not
// been called for radius.
func (am *AssetManager) GetBallSprite(radius float64) common.Drawable {
	return am.ballSprites[int(math.Ceil(radius))]
}

// BallImage draws a disc of the given radius: a BorderColor ring border
// pixels wide around a BallColor center, transparent outside.
func BallImage(radius, border int) *image.NRGBA {
	size := 2 * radius
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	center := float64(radius)
	inner := float64(radius - border)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-center, float64(y)+0.5-center)
			switch {
			case d <= inner:
				img.Set(x, y, BallColor)
			case d <= center:
				img.Set(x, y, BorderColor)
			}
		}
	}
	return img
}
