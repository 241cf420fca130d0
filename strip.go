package hatlights

// This file contains the contract between the animation engine and the
// hardware, or simulated, LED strip

import (
	"github.com/TeamNorCal/hatlights/model"
)

// Strip is a buffered addressable LED strip.  SetPixel and Fill only touch
// the buffer, Show commits the buffer as one visual frame applying the
// current brightness
type Strip interface {
	Len() int
	SetPixel(i int, c model.Color)
	Fill(c model.Color)
	SetBrightness(level model.Brightness)
	Show() error
}

// PixelBuffer is the buffering shared by the strip drivers
type PixelBuffer struct {
	pixels     []model.Color
	brightness model.Brightness
}

func NewPixelBuffer(length int) (buf *PixelBuffer) {
	return &PixelBuffer{
		pixels:     make([]model.Color, length),
		brightness: model.DefaultBrightness,
	}
}

func (buf *PixelBuffer) Len() int {
	return len(buf.pixels)
}

// SetPixel ignores indexes outside of the strip
func (buf *PixelBuffer) SetPixel(i int, c model.Color) {
	if i < 0 || i >= len(buf.pixels) {
		return
	}
	buf.pixels[i] = c
}

func (buf *PixelBuffer) Fill(c model.Color) {
	for i := range buf.pixels {
		buf.pixels[i] = c
	}
}

func (buf *PixelBuffer) SetBrightness(level model.Brightness) {
	buf.brightness = level
}

func (buf *PixelBuffer) Brightness() model.Brightness {
	return buf.brightness
}

// Pixels copies the buffered colors before brightness is applied
func (buf *PixelBuffer) Pixels() (pixels []model.Color) {
	return append([]model.Color(nil), buf.pixels...)
}

// Frame returns the buffer contents scaled by the brightness, ready to be
// written to the device
func (buf *PixelBuffer) Frame() (frame []model.Color) {
	frame = make([]model.Color, len(buf.pixels))
	for i, c := range buf.pixels {
		frame[i] = c.Dim(float64(buf.brightness))
	}
	return frame
}

// MultiStrip mirrors every operation onto several strips, for example the
// fadecandy and a terminal preview.  Show attempts every strip and returns
// the first failure
type MultiStrip struct {
	strips []Strip
	length int
}

// NewMultiStrip reports the length of its shortest member
func NewMultiStrip(strips ...Strip) (multi *MultiStrip) {
	multi = &MultiStrip{strips: strips}
	for i, s := range strips {
		if i == 0 || s.Len() < multi.length {
			multi.length = s.Len()
		}
	}
	return multi
}

func (multi *MultiStrip) Len() int {
	return multi.length
}

func (multi *MultiStrip) SetPixel(i int, c model.Color) {
	for _, s := range multi.strips {
		s.SetPixel(i, c)
	}
}

func (multi *MultiStrip) Fill(c model.Color) {
	for _, s := range multi.strips {
		s.Fill(c)
	}
}

func (multi *MultiStrip) SetBrightness(level model.Brightness) {
	for _, s := range multi.strips {
		s.SetBrightness(level)
	}
}

func (multi *MultiStrip) Show() (err error) {
	for _, s := range multi.strips {
		if errGo := s.Show(); errGo != nil && err == nil {
			err = errGo
		}
	}
	return err
}
