package raster

import (
	"image"

	"github.com/gogpu/vg"
)

// Pixmap is a rectangular pixel buffer holding non-premultiplied RGBA
// bytes, 4 per pixel.
type Pixmap struct {
	width  int
	height int
	pix    []uint8
}

// NewPixmap returns a transparent pixmap of the given size.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}
}

// Width returns the pixmap width in pixels.
func (p *Pixmap) Width() int { return p.width }

// Height returns the pixmap height in pixels.
func (p *Pixmap) Height() int { return p.height }

// Clear fills the whole buffer with c, replacing existing pixels.
func (p *Pixmap) Clear(c vg.Color) {
	r, g, b, a := c.RGBA8()
	for i := 0; i < len(p.pix); i += 4 {
		p.pix[i+0] = r
		p.pix[i+1] = g
		p.pix[i+2] = b
		p.pix[i+3] = a
	}
}

// BlendPixel composites c over the pixel at (x, y) with an extra coverage
// factor in [0, 1]. Out-of-bounds coordinates are ignored.
func (p *Pixmap) BlendPixel(x, y int, c vg.Color, coverage float64) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	sa := c.A * coverage
	if sa <= 0 {
		return
	}
	i := (y*p.width + x) * 4
	if sa >= 1 {
		r, g, b, _ := c.RGBA8()
		p.pix[i+0] = r
		p.pix[i+1] = g
		p.pix[i+2] = b
		p.pix[i+3] = 255
		return
	}
	dr := float64(p.pix[i+0]) / 255
	dg := float64(p.pix[i+1]) / 255
	db := float64(p.pix[i+2]) / 255
	da := float64(p.pix[i+3]) / 255

	outA := sa + da*(1-sa)
	if outA <= 0 {
		p.pix[i+0], p.pix[i+1], p.pix[i+2], p.pix[i+3] = 0, 0, 0, 0
		return
	}
	outR := (c.R*sa + dr*da*(1-sa)) / outA
	outG := (c.G*sa + dg*da*(1-sa)) / outA
	outB := (c.B*sa + db*da*(1-sa)) / outA

	p.pix[i+0] = u8(outR)
	p.pix[i+1] = u8(outG)
	p.pix[i+2] = u8(outB)
	p.pix[i+3] = u8(outA)
}

func u8(v float64) uint8 {
	if v >= 1 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return uint8(v*255 + 0.5)
}

// NRGBA returns an image.NRGBA view sharing the pixmap's buffer.
func (p *Pixmap) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    p.pix,
		Stride: p.width * 4,
		Rect:   image.Rect(0, 0, p.width, p.height),
	}
}

// ToRGBA copies the buffer into a premultiplied image.RGBA.
func (p *Pixmap) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	for i := 0; i < len(p.pix); i += 4 {
		a := uint32(p.pix[i+3])
		out.Pix[i+0] = uint8((uint32(p.pix[i+0])*a + 127) / 255)
		out.Pix[i+1] = uint8((uint32(p.pix[i+1])*a + 127) / 255)
		out.Pix[i+2] = uint8((uint32(p.pix[i+2])*a + 127) / 255)
		out.Pix[i+3] = uint8(a)
	}
	return out
}
