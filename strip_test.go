package hatlights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TeamNorCal/hatlights/model"
)

func TestPixelBuffer(t *testing.T) {
	buf := NewPixelBuffer(4)
	assert.Equal(t, 4, buf.Len())
	assert.Equal(t, model.DefaultBrightness, buf.Brightness())

	buf.SetPixel(-1, 0xffffff)
	buf.SetPixel(4, 0xffffff)
	assert.Equal(t, make([]model.Color, 4), buf.Pixels())

	buf.Fill(0x808080)
	buf.SetPixel(2, 0xff0000)
	assert.Equal(t, []model.Color{0x808080, 0x808080, 0xff0000, 0x808080}, buf.Pixels())

	// Pixels hands out a copy
	buf.Pixels()[0] = model.Off
	assert.Equal(t, model.Color(0x808080), buf.Pixels()[0])
}

func TestPixelBufferFrameDims(t *testing.T) {
	buf := NewPixelBuffer(2)
	buf.SetPixel(0, 0xff0000)
	buf.SetPixel(1, 0x00ff00)

	buf.SetBrightness(1)
	assert.Equal(t, []model.Color{0xff0000, 0x00ff00}, buf.Frame())

	buf.SetBrightness(0)
	assert.Equal(t, []model.Color{model.Off, model.Off}, buf.Frame())

	buf.SetBrightness(0.5)
	for i, c := range buf.Frame() {
		assert.Equal(t, buf.Pixels()[i].Dim(0.5), c)
	}
}

func TestMultiStrip(t *testing.T) {
	long := newRecordingStrip(10)
	short := newRecordingStrip(6)
	multi := NewMultiStrip(long, short)

	assert.Equal(t, 6, multi.Len())

	multi.Fill(0x0000ff)
	multi.SetPixel(1, 0xff0000)
	multi.SetBrightness(model.BrightnessMedium)
	require.NoError(t, multi.Show())

	for _, s := range []*recordingStrip{long, short} {
		require.Len(t, s.frames, 1)
		assert.Equal(t, model.Color(0xff0000), s.frames[0][1])
		assert.Equal(t, model.Color(0x0000ff), s.frames[0][0])
		assert.Equal(t, model.BrightnessMedium, s.Brightness())
	}
}

func TestMultiStripShowsEveryStrip(t *testing.T) {
	failing := newRecordingStrip(3)
	failing.failAt = 1
	healthy := newRecordingStrip(3)

	assert.Error(t, NewMultiStrip(failing, healthy).Show())
	assert.Len(t, healthy.frames, 1)
}

func TestMultiStripEmpty(t *testing.T) {
	multi := NewMultiStrip()
	assert.Zero(t, multi.Len())
	assert.NoError(t, multi.Show())
}
