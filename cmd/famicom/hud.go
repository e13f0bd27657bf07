package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/briarwood/famicom/nes"
)

// drawHUD overlays a one-line diagnostic string (DMA stalls this run)
// in the top-left corner, using the stdlib-adjacent basicfont face
// rather than pulling in a full font-rendering stack — exactly the
// weight class x/image/font/basicfont exists for.
func drawHUD(dst draw.Image, c *nes.Console) {
	text := fmt.Sprintf("DMA stalls: %d", c.Bus.Stats().DMAStalls)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.RGBA{R: 0xFF, G: 0xFF, B: 0x00, A: 0xFF}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, 12),
	}
	d.DrawString(text)
}
