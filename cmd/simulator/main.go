package main

// The simulator runs the complete engine against a strip drawn in the
// terminal.  The space bar stands in for the physical button and the control
// surface is served as usual so the web console can be tried out on a laptop

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/karlmutch/errors"
	logxi "github.com/mgutz/logxi/v1"

	"github.com/TeamNorCal/hatlights"
	"github.com/TeamNorCal/hatlights/model"
)

var (
	listen  = flag.String("listen", ":8080", "Address to bind the control surface to")
	pixels  = flag.Int("pixels", 37, "Number of pixels on the simulated strip")
	logFile = flag.String("log", "simulator.log", "File receiving the log output, the terminal is used for the strip")
	verbose = flag.Bool("v", false, "When enabled will log debugging information")
)

// termStrip draws the strip as a single row of cells
type termStrip struct {
	*hatlights.PixelBuffer
	screen tcell.Screen
	store  *model.Store
}

// cells converts the frame, brightness applied, into terminal colors
func (strip *termStrip) cells() (colors []tcell.Color) {
	for _, c := range strip.Frame() {
		r, g, b := c.Colorful().RGB255()
		colors = append(colors, tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	}
	return colors
}

func (strip *termStrip) Show() error {
	for i, color := range strip.cells() {
		strip.screen.SetContent(i*2, 1, '●', nil, tcell.StyleDefault.Foreground(color))
	}

	if strip.store != nil {
		cfg := strip.store.Snapshot()
		status := fmt.Sprintf("color %-8s method %-8s brightness %.2f   [space] button  [q] quit", cfg.Palette, cfg.Effect, float64(strip.Brightness()))
		for i, r := range status {
			strip.screen.SetContent(i, 3, r, nil, tcell.StyleDefault)
		}
	}

	strip.screen.Show()
	return nil
}

func main() {
	flag.Parse()

	f, errGo := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if errGo != nil {
		fmt.Fprintln(os.Stderr, errGo.Error())
		os.Exit(-1)
	}
	defer f.Close()

	logger := logxi.NewLogger(logxi.NewConcurrentWriter(f), "simulator")
	if *verbose {
		logger.SetLevel(logxi.LevelDebug)
	}

	screen, errGo := tcell.NewScreen()
	if errGo != nil {
		fmt.Fprintln(os.Stderr, errGo.Error())
		os.Exit(-1)
	}
	if errGo = screen.Init(); errGo != nil {
		fmt.Fprintln(os.Stderr, errGo.Error())
		os.Exit(-1)
	}
	defer screen.Fini()

	opts := hatlights.DefaultOptions()
	opts.Pixels = *pixels
	opts.Listen = *listen
	if err := opts.Validate(); err != nil {
		screen.Fini()
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(-1)
	}

	strip := &termStrip{
		PixelBuffer: hatlights.NewPixelBuffer(opts.Pixels),
		screen:      screen,
	}

	gw := hatlights.NewGateway(opts, strip, rand.New(rand.NewSource(time.Now().UnixNano())), logger)
	strip.store = gw.Store

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errorC := make(chan errors.Error, 4)
	go func() {
		for {
			select {
			case err := <-errorC:
				logger.Warn(err.Error())
			case <-ctx.Done():
				return
			}
		}
	}()

	_, doneC := gw.Start(ctx, errorC)

	eventC := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventC <- ev
		}
	}()

	for {
		select {
		case ev := <-eventC:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					cancel()
					<-doneC
					return
				}
				if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' {
					gw.Latch.Press()
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-doneC:
			return
		}
	}
}
