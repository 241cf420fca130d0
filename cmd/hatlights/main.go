package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/karlmutch/envflag" // Forked copy of https://github.com/GoBike/envflag
	"github.com/karlmutch/errors"
	_ "github.com/kidoman/embd/host/rpi"
	logxi "github.com/mgutz/logxi/v1"

	"github.com/TeamNorCal/hatlights"
)

var (
	logger = logxi.New("hatlights")

	verbose    = flag.Bool("v", false, "When enabled will print internal logging for this tool")
	configFile = flag.String("config", "", "Optional YAML file with the installation options")
	pixels     = flag.Int("pixels", 0, "Number of pixels on the strip, overrides the options file")
	opcServer  = flag.String("opc", "", "host:port of the fcserver, overrides the options file")
	listen     = flag.String("listen", "", "Address for the control surface, overrides the options file")
	buttonPin  = flag.Int("button-pin", -1, "GPIO pin of the physical button, overrides the options file")
)

func usage() {
	fmt.Fprintln(os.Stderr, path.Base(os.Args[0]))
	fmt.Fprintln(os.Stderr, "usage: ", os.Args[0], "[options]       http/button → animation → OPC (hatlights)")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "hatlights animates an LED strip attached to a fadecandy board, taking commands from a web console and a push button")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Environment Variables:")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "options can also be extracted from environment variables by changing dashes '-' to underscores and using upper case.")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "log levels are handled by the LOGXI env variables, these are documented at https://github.com/mgutz/logxi")
}

func init() {
	flag.Usage = usage
}

func options() (opts hatlights.Options, err errors.Error) {
	opts = hatlights.DefaultOptions()
	if len(*configFile) != 0 {
		if opts, err = hatlights.LoadOptions(*configFile); err != nil {
			return opts, err
		}
	}

	if *pixels != 0 {
		opts.Pixels = *pixels
	}
	if len(*opcServer) != 0 {
		opts.OPCServer = *opcServer
	}
	if len(*listen) != 0 {
		opts.Listen = *listen
	}
	if *buttonPin >= 0 {
		opts.ButtonPin = *buttonPin
	}
	return opts, opts.Validate()
}

func main() {

	// Parse the CLI flags
	if !flag.Parsed() {
		envflag.Parse()
	}

	// Debug logging only when asked for, LOGXI env settings apply otherwise
	if *verbose {
		logger.SetLevel(logxi.LevelDebug)
	}

	opts, err := options()
	if err != nil {
		logger.Error("invalid options", "error", err.Error())
		os.Exit(-1)
	}

	strip, err := hatlights.NewOPCStrip(opts.OPCServer, opts.OPCChannel, opts.Pixels)
	if err != nil {
		logger.Error("fadecandy unavailable", "error", err.Error())
		os.Exit(-1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errorC := make(chan errors.Error, 4)
	go errorWatch(errorC, ctx.Done())

	gw := hatlights.NewGateway(opts, strip, rand.New(rand.NewSource(time.Now().UnixNano())), logger)

	if opts.ButtonPin >= 0 {
		button, err := hatlights.StartGPIOButton(opts.ButtonPin, gw.Latch)
		if err != nil {
			// Non-fatal, the hat still runs from the web console
			logger.Warn("button unavailable", "error", err.Error())
		} else {
			defer button.Close()
		}
	}

	subscribeC, doneC := gw.Start(ctx, errorC)
	go runMonitoring(subscribeC, ctx.Done())

	logger.Info("started", "pixels", opts.Pixels, "opc", opts.OPCServer, "listen", opts.Listen)

	stopC := make(chan os.Signal, 1)
	signal.Notify(stopC, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stopC:
		logger.Info("stopping")
	case <-doneC:
		logger.Warn("engine stopped unexpectedly")
	}
	cancel()
	<-doneC
}
