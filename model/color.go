package model

// This file contains the packed 24 bit color representation used across the
// strip, the color maps and the effects

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Color is a 24 bit RGB value packed as 0xRRGGBB, the same layout the strip
// driver registers use
type Color uint32

// Off is the blank pixel
const Off Color = 0x000000

// Decompose extracts the red, green and blue channels from a packed color.
// Bits above the low 24 are ignored
func (c Color) Decompose() (r, g, b int) {
	return int(c>>16) & 0xff, int(c>>8) & 0xff, int(c) & 0xff
}

// Compose packs the three channels into a color.
//
// The channels are not masked. A channel outside of 0-255 spills into its
// neighbour exactly as the hardware register packing would, callers that do
// channel arithmetic must use Clamp first
func Compose(r, g, b int) Color {
	return Color(uint32(r<<16 + g<<8 + b))
}

// Clamp limits a channel value to the 8 bit range
func Clamp(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 0xff:
		return 0xff
	}
	return v
}

// Scale multiplies every channel by k/256 truncating each result to 8 bits,
// the brightness ramp used by the pulse, sparkle and wheel effects
func (c Color) Scale(k float64) Color {
	r, g, b := c.Decompose()
	return Compose(
		int(k/256.0*float64(r))&0xff,
		int(k/256.0*float64(g))&0xff,
		int(k/256.0*float64(b))&0xff,
	)
}

// Dim multiplies every channel by a 0-1 brightness level
func (c Color) Dim(level float64) Color {
	if level >= 1.0 {
		return c
	}
	if level <= 0 {
		return Off
	}
	r, g, b := c.Decompose()
	return Compose(int(float64(r)*level), int(float64(g)*level), int(float64(b)*level))
}

// Colorful converts the packed value for use with the go-colorful package
func (c Color) Colorful() colorful.Color {
	r, g, b := c.Decompose()
	return colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
}

// String renders the color as a #rrggbb hex string
func (c Color) String() string {
	return c.Colorful().Hex()
}

