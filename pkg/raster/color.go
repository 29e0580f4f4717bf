package raster

import "math"

// Pack builds an opaque 0xAARRGGBB value.
func Pack(r, g, b uint8) uint32 {
	return 0xff<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// HSVToARGB converts hue (degrees), saturation and value ([0,1]) to an
// opaque packed pixel. Out of range inputs are clamped.
func HSVToARGB(h, s, v float64) uint32 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s, v = clamp01(s), clamp01(v)

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return Pack(channel(r+m), channel(g+m), channel(b+m))
}

func channel(f float64) uint8 {
	return uint8(math.Round(clamp01(f) * 255))
}

func clamp01(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
