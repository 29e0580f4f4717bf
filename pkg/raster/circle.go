package raster

// FillCircle sets every pixel with dx²+dy² <= r² around (cx, cy).
// Pixels outside the buffer are dropped.
func FillCircle(b *Buffer, cx, cy, r int, c uint32) {
	drawBand(b, cx, cy, r, 0, c)
}

// StrokeCircle sets the pixels with (r-1)² <= dx²+dy² <= r², a ring about
// one pixel wide. For r == 0 the band is [1, 0] and nothing is drawn.
func StrokeCircle(b *Buffer, cx, cy, r int, c uint32) {
	drawBand(b, cx, cy, r, (r-1)*(r-1), c)
}

// drawBand scans the bounding square of the circle and sets the pixels
// whose squared distance from the centre lies in [minSq, r²].
func drawBand(b *Buffer, cx, cy, r, minSq int, c uint32) {
	if r < 0 {
		return
	}
	maxSq := r * r
	y0, y1 := max(cy-r, 0), min(cy+r, b.Height-1)
	x0, x1 := max(cx-r, 0), min(cx+r, b.Width-1)
	for y := y0; y <= y1; y++ {
		dy := y - cy
		row := b.Pix[y*b.Width : (y+1)*b.Width]
		for x := x0; x <= x1; x++ {
			dx := x - cx
			if d := dx*dx + dy*dy; d >= minSq && d <= maxSq {
				row[x] = c
			}
		}
	}
}
