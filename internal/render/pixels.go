package render

import "image/color"

// fillColorRGBA copies per-cell display colors into the RGBA pixel buffer.
func fillColorRGBA(buf []byte, colors []color.RGBA) {
	for i, col := range colors {
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
