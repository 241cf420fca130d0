package hatlights

// Contains the library of motion effects.  Every effect paints the color map
// captured at the start of a cycle onto the strip as a finite run of frames,
// each frame being a batch of buffered pixel writes committed by a single
// Show, and yields to the scheduler for the frame interval after every Show.
// An effect never yields between its pixel writes and the Show that
// completes them

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/TeamNorCal/hatlights/model"
)

// Frame intervals for each effect
const (
	WipeInterval    = 100 * time.Millisecond
	PulseInterval   = 10 * time.Millisecond
	ChaseInterval   = 500 * time.Millisecond
	WheelInterval   = 100 * time.Millisecond
	SparkleInterval = 100 * time.Millisecond
	RandomInterval  = 200 * time.Millisecond
)

// Canvas is everything an effect needs for one render
type Canvas struct {
	Strip   Strip
	Map     ColorMap      // Borrowed read only for the render
	Palette model.Palette // The palette Map was built from
	Pacer   Yielder
	Rand    *rand.Rand
}

type renderFunc func(ctx context.Context, cv *Canvas) error

func renderer(effect model.Effect) renderFunc {
	switch effect {
	case model.EffectWipe:
		return wipe
	case model.EffectPulse:
		return pulse
	case model.EffectChase:
		return chase
	case model.EffectWheel:
		return wheel
	case model.EffectSparkle:
		return sparkle
	case model.EffectRandom:
		return random
	}
	return nil
}

// Render runs one complete pass of the effect.  Failures from the strip, and
// panics inside the effect, are returned rather than propagated so the
// caller can end the cycle and carry on
func Render(ctx context.Context, effect model.Effect, cv *Canvas) (err errors.Error) {
	render := renderer(effect)
	if render == nil {
		return errors.New("unknown effect").With("effect", int(effect)).With("stack", stack.Trace().TrimRuntime())
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.New(fmt.Sprint("effect panicked: ", r)).With("effect", effect.String()).With("stack", stack.Trace().TrimRuntime())
		}
	}()

	if errGo := render(ctx, cv); errGo != nil {
		return errors.Wrap(errGo).With("effect", effect.String()).With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}

// pixels is the number of positions that exist both in the map and on the
// strip
func (cv *Canvas) pixels() int {
	if n := cv.Strip.Len(); n < len(cv.Map) {
		return n
	}
	return len(cv.Map)
}

// frame commits the buffered writes and then suspends for the interval
func (cv *Canvas) frame(ctx context.Context, interval time.Duration) (err error) {
	if err = cv.Strip.Show(); err != nil {
		return err
	}
	return cv.Pacer.Yield(ctx, interval)
}

// wipe reveals the map one pixel at a time and then clears it the same way
func wipe(ctx context.Context, cv *Canvas) (err error) {
	n := cv.pixels()
	for i := 0; i < n; i++ {
		cv.Strip.SetPixel(i, cv.Map[i])
		if err = cv.frame(ctx, WipeInterval); err != nil {
			return err
		}
	}
	for i := 0; i < n; i++ {
		cv.Strip.SetPixel(i, model.Off)
		if err = cv.frame(ctx, WipeInterval); err != nil {
			return err
		}
	}
	return nil
}

// pulse ramps the whole map up from 5/256 to 250/256 of full intensity and
// back down from 255/256 to 10/256
func pulse(ctx context.Context, cv *Canvas) (err error) {
	n := cv.pixels()
	step := func(j int) error {
		for k := 0; k < n; k++ {
			cv.Strip.SetPixel(k, cv.Map[k].Scale(float64(j)))
		}
		return cv.frame(ctx, PulseInterval)
	}

	for j := 5; j < 255; j += 5 {
		if err = step(j); err != nil {
			return err
		}
	}
	for j := 255; j > 5; j -= 5 {
		if err = step(j); err != nil {
			return err
		}
	}
	return nil
}

// chase lights every third pixel, shifting the lit set by one on each of
// three frames
func chase(ctx context.Context, cv *Canvas) (err error) {
	n := cv.pixels()
	for j := 0; j < 3; j++ {
		cv.Strip.Fill(model.Off)
		for k := j; k < n; k += 3 {
			cv.Strip.SetPixel(k, cv.Map[k])
		}
		if err = cv.frame(ctx, ChaseInterval); err != nil {
			return err
		}
	}
	return nil
}

// wheel rotates the map around the strip one position per frame until it
// arrives back where it started.  A solid map would look static while
// rotating so it is first shaded with an intensity ramp along the strip
func wheel(ctx context.Context, cv *Canvas) (err error) {
	n := cv.pixels()
	if n == 0 {
		return nil
	}

	cmap := cv.Map[:n]
	if cv.Palette.Solid() {
		shaded := make(ColorMap, n)
		mult := 256.0 / float64(n)
		for i, c := range cmap {
			shaded[i] = c.Scale(float64(i) * mult)
		}
		cmap = shaded
	}

	for j := 1; j <= n; j++ {
		for k, c := range cmap {
			cv.Strip.SetPixel((j+k)%n, c)
		}
		if err = cv.frame(ctx, WheelInterval); err != nil {
			return err
		}
	}
	return nil
}

// sparkle is a single flash with every pixel at its own random intensity
func sparkle(ctx context.Context, cv *Canvas) (err error) {
	n := cv.pixels()
	for j := 0; j < n; j++ {
		cv.Strip.SetPixel(j, cv.Map[j].Scale(float64(cv.Rand.Intn(256))))
	}
	return cv.frame(ctx, SparkleInterval)
}

// random is a single frame where roughly half of the pixels show a color
// drawn from a random position of the map and the rest are dark
func random(ctx context.Context, cv *Canvas) (err error) {
	n := cv.pixels()
	for j := 0; j < n; j++ {
		if cv.Rand.Intn(2) == 1 {
			cv.Strip.SetPixel(j, cv.Map[cv.Rand.Intn(n)])
		} else {
			cv.Strip.SetPixel(j, model.Off)
		}
	}
	return cv.frame(ctx, RandomInterval)
}
