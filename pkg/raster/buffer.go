// Package raster implements a packed ARGB pixel buffer and the primitives
// used to draw scan frames into it.
package raster

import (
	"image"
)

// Buffer is a row-major array of packed 0xAARRGGBB pixels.
type Buffer struct {
	Width, Height int
	Pix           []uint32
}

func NewBuffer(width, height int) *Buffer {
	return &Buffer{Width: width, Height: height, Pix: make([]uint32, width*height)}
}

// Clone returns an independent copy of b.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint32, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// CopyFrom overwrites b with the pixels of src, which must have the same size.
func (b *Buffer) CopyFrom(src *Buffer) {
	copy(b.Pix, src.Pix)
}

func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// Set writes c at (x, y). Out of bounds writes are dropped.
func (b *Buffer) Set(x, y int, c uint32) {
	if b.InBounds(x, y) {
		b.Pix[y*b.Width+x] = c
	}
}

// At returns the pixel at (x, y), or 0 when out of bounds.
func (b *Buffer) At(x, y int) uint32 {
	if !b.InBounds(x, y) {
		return 0
	}
	return b.Pix[y*b.Width+x]
}

func (b *Buffer) Fill(c uint32) {
	for i := range b.Pix {
		b.Pix[i] = c
	}
}

// HLine paints the full row y.
func (b *Buffer) HLine(y int, c uint32) {
	if y < 0 || y >= b.Height {
		return
	}
	row := b.Pix[y*b.Width : (y+1)*b.Width]
	for i := range row {
		row[i] = c
	}
}

// VLine paints the full column x.
func (b *Buffer) VLine(x int, c uint32) {
	if x < 0 || x >= b.Width {
		return
	}
	for y := 0; y < b.Height; y++ {
		b.Pix[y*b.Width+x] = c
	}
}

// AppendRGBA appends the buffer as non-premultiplied RGBA bytes, the layout
// expected by image.RGBA and ebiten.Image.WritePixels. Pixels are opaque so
// premultiplication is a no-op.
func (b *Buffer) AppendRGBA(dst []byte) []byte {
	for _, p := range b.Pix {
		dst = append(dst, byte(p>>16), byte(p>>8), byte(p), byte(p>>24))
	}
	return dst
}

// RGBA converts the buffer to an image.RGBA.
func (b *Buffer) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	img.Pix = b.AppendRGBA(img.Pix[:0])
	return img
}
