package assets

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

const iconSize = 16

var (
	iconOnce sync.Once
	icon     *ebiten.Image

	iconLight = color.RGBA{R: 0xff, G: 0x00, B: 0xdc, A: 0xff}
	iconDark  = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
)

// IconImage returns the placeholder pattern drawn for objects without an
// image: a 16x16 checkerboard of 4px cells.
func IconImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			c := iconDark
			if (x/4+y/4)%2 == 0 {
				c = iconLight
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// Icon returns the placeholder as an ebiten image. It is built on first use.
func Icon() *ebiten.Image {
	iconOnce.Do(func() {
		icon = ebiten.NewImageFromImage(IconImage())
	})
	return icon
}
