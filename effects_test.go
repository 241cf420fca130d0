package hatlights

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TeamNorCal/hatlights/model"
)

func newCanvas(strip Strip, cmap ColorMap, p model.Palette) (*Canvas, *recordingPacer) {
	pacer := &recordingPacer{}
	return &Canvas{
		Strip:   strip,
		Map:     cmap,
		Palette: p,
		Pacer:   pacer,
		Rand:    rand.New(rand.NewSource(42)),
	}, pacer
}

func assertWaits(t *testing.T, pacer *recordingPacer, count int, interval interface{}) {
	t.Helper()
	require.Len(t, pacer.waits, count)
	for _, w := range pacer.waits {
		assert.EqualValues(t, interval, w)
	}
}

func TestWipeFrames(t *testing.T) {
	strip := newRecordingStrip(37)
	cmap := gradientMap(37)
	cv, pacer := newCanvas(strip, cmap, model.PaletteRainbow)

	require.NoError(t, Render(context.Background(), model.EffectWipe, cv))

	require.Len(t, strip.frames, 74)
	assertWaits(t, pacer, 74, WipeInterval)

	// The first frame lights only pixel 0
	assert.Equal(t, cmap[0], strip.frames[0][0])
	assert.Equal(t, model.Off, strip.frames[0][1])

	// Fully revealed half way through, fully dark at the end
	assert.Equal(t, []model.Color(cmap), strip.frames[36])
	assert.Equal(t, make([]model.Color, 37), strip.frames[73])

	// Clearing runs left to right as well
	assert.Equal(t, model.Off, strip.frames[37][0])
	assert.Equal(t, cmap[1], strip.frames[37][1])
}

func TestPulseFrames(t *testing.T) {
	strip := newRecordingStrip(12)
	cmap := distinctMap(12)
	cv, pacer := newCanvas(strip, cmap, model.PaletteRainbow)

	require.NoError(t, Render(context.Background(), model.EffectPulse, cv))

	require.Len(t, strip.frames, 100)
	assertWaits(t, pacer, 100, PulseInterval)

	for k := range cmap {
		assert.Equal(t, cmap[k].Scale(5), strip.frames[0][k])
		assert.Equal(t, cmap[k].Scale(250), strip.frames[49][k])
		assert.Equal(t, cmap[k].Scale(255), strip.frames[50][k])
		assert.Equal(t, cmap[k].Scale(10), strip.frames[99][k])
	}
}

func TestChaseFrames(t *testing.T) {
	strip := newRecordingStrip(10)
	cmap := distinctMap(10)
	cv, pacer := newCanvas(strip, cmap, model.PaletteRainbow)

	// Leftovers from a previous effect must be blanked
	strip.Fill(0xffffff)

	require.NoError(t, Render(context.Background(), model.EffectChase, cv))

	require.Len(t, strip.frames, 3)
	assertWaits(t, pacer, 3, ChaseInterval)

	for j, frame := range strip.frames {
		for k, c := range frame {
			if k%3 == j {
				assert.Equal(t, cmap[k], c, "frame %d pixel %d", j, k)
			} else {
				assert.Equal(t, model.Off, c, "frame %d pixel %d", j, k)
			}
		}
	}
}

func TestWheelFullCycleIsIdentity(t *testing.T) {
	strip := newRecordingStrip(37)
	cmap := distinctMap(37)
	cv, pacer := newCanvas(strip, cmap, model.PaletteRainbow)

	require.NoError(t, Render(context.Background(), model.EffectWheel, cv))

	require.Len(t, strip.frames, 37)
	assertWaits(t, pacer, 37, WheelInterval)

	// One step per frame
	for k := range cmap {
		assert.Equal(t, cmap[k], strip.frames[0][(k+1)%37])
		assert.Equal(t, cmap[k], strip.frames[4][(k+5)%37])
	}
	assert.Equal(t, []model.Color(cmap), strip.frames[36])
}

func TestWheelShadesSolidMaps(t *testing.T) {
	strip := newRecordingStrip(8)
	cmap := BuildSolid(0xff0000, 8)
	cv, _ := newCanvas(strip, cmap, model.PaletteRed)

	require.NoError(t, Render(context.Background(), model.EffectWheel, cv))

	last := strip.frames[len(strip.frames)-1]
	assert.Equal(t, model.Off, last[0])
	assert.Equal(t, model.Color(0x1f0000), last[1])
	assert.Equal(t, model.Color(0xdf0000), last[7])

	// The controller's map is borrowed, not modified
	assert.Equal(t, BuildSolid(0xff0000, 8), cmap)
}

func TestSparkleSingleFlash(t *testing.T) {
	strip := newRecordingStrip(37)
	cmap := BuildSolid(0xffffff, 37)
	cv, pacer := newCanvas(strip, cmap, model.PaletteWhite)

	require.NoError(t, Render(context.Background(), model.EffectSparkle, cv))

	require.Len(t, strip.frames, 1)
	assertWaits(t, pacer, 1, SparkleInterval)

	levels := map[model.Color]bool{}
	for _, c := range strip.frames[0] {
		r, g, b := c.Decompose()
		assert.True(t, r == g && g == b)
		levels[c] = true
	}
	assert.Greater(t, len(levels), 1, "every pixel had the same intensity")
}

func TestRandomSingleFrame(t *testing.T) {
	strip := newRecordingStrip(37)
	cmap := distinctMap(37)
	cv, pacer := newCanvas(strip, cmap, model.PaletteRainbow)

	require.NoError(t, Render(context.Background(), model.EffectRandom, cv))

	require.Len(t, strip.frames, 1)
	assertWaits(t, pacer, 1, RandomInterval)

	known := map[model.Color]bool{}
	for _, c := range cmap {
		known[c] = true
	}
	lit, dark := 0, 0
	for _, c := range strip.frames[0] {
		if c == model.Off {
			dark++
			continue
		}
		lit++
		assert.True(t, known[c], "%s is not from the map", c)
	}
	assert.NotZero(t, lit)
	assert.NotZero(t, dark)
}

func TestRenderUnknownEffect(t *testing.T) {
	cv, _ := newCanvas(newRecordingStrip(4), distinctMap(4), model.PaletteRainbow)
	assert.Error(t, Render(context.Background(), model.EffectNone, cv))
}

func TestRenderStopsOnShowFailure(t *testing.T) {
	strip := newRecordingStrip(10)
	strip.failAt = 3
	cv, pacer := newCanvas(strip, distinctMap(10), model.PaletteRainbow)

	err := Render(context.Background(), model.EffectWipe, cv)
	require.Error(t, err)
	assert.Len(t, strip.frames, 2)
	assert.Len(t, pacer.waits, 2)
}

type panicStrip struct {
	*PixelBuffer
}

func (panicStrip) Show() error {
	panic("strip wedged")
}

func TestRenderRecoversPanics(t *testing.T) {
	cv, _ := newCanvas(panicStrip{NewPixelBuffer(4)}, distinctMap(4), model.PaletteRainbow)

	err := Render(context.Background(), model.EffectChase, cv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strip wedged")
}

func TestRenderEndsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	strip := newRecordingStrip(10)
	cv, pacer := newCanvas(strip, distinctMap(10), model.PaletteRainbow)
	pacer.onYield = cancel

	require.Error(t, Render(ctx, model.EffectWipe, cv))
	assert.Len(t, strip.frames, 1)
}

func TestEffectsHandleShortMaps(t *testing.T) {
	for _, effect := range model.Effects() {
		strip := newRecordingStrip(10)
		cv, _ := newCanvas(strip, distinctMap(4), model.PaletteRainbow)
		require.NoError(t, Render(context.Background(), effect, cv), effect.String())
	}
}
