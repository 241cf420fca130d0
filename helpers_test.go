package hatlights

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	logxi "github.com/mgutz/logxi/v1"

	"github.com/TeamNorCal/hatlights/model"
)

func testLogger() logxi.Logger {
	return logxi.NewLogger(io.Discard, "test")
}

// recordingStrip keeps a copy of the pixels committed by every Show
type recordingStrip struct {
	*PixelBuffer
	frames [][]model.Color
	failAt  int // 1 based Show call that fails, 0 never fails
	failAll bool
	shows  int
	sync.Mutex
}

func newRecordingStrip(length int) *recordingStrip {
	return &recordingStrip{PixelBuffer: NewPixelBuffer(length)}
}

func (s *recordingStrip) Show() error {
	s.Lock()
	defer s.Unlock()

	s.shows++
	if s.failAll || s.shows == s.failAt {
		return fmt.Errorf("show %d failed", s.shows)
	}
	s.frames = append(s.frames, s.Pixels())
	return nil
}

func (s *recordingStrip) frameCount() int {
	s.Lock()
	defer s.Unlock()
	return len(s.frames)
}

// recordingPacer notes every requested suspension without sleeping
type recordingPacer struct {
	waits   []time.Duration
	onYield func()
}

func (p *recordingPacer) Yield(ctx context.Context, d time.Duration) error {
	p.waits = append(p.waits, d)
	if p.onYield != nil {
		p.onYield()
	}
	return ctx.Err()
}

func gradientMap(length int) ColorMap {
	cmap, err := BuildGradient([]model.Color{0x8000ff, 0x00b4ec, 0x80ffb4, 0xffb462, 0xff0000}, length)
	if err != nil {
		panic(err)
	}
	return cmap
}

// distinctMap has a different color at every position
func distinctMap(length int) ColorMap {
	cmap := make(ColorMap, length)
	for i := range cmap {
		cmap[i] = model.Compose(i+1, 0x40, 0xff-i)
	}
	return cmap
}
