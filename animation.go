package hatlights

// This file contains the animation controller.  Once per cycle it reads the
// shared configuration, rebuilds the color map when the palette has moved
// on and then plays the selected effect through to completion
//
// A cycle moves through Idle -> MapDirty -> Rendering -> Idle.  Bad
// configuration never stops the loop, the previous map is kept and the cycle
// simply renders what it can

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	logxi "github.com/mgutz/logxi/v1"

	"github.com/TeamNorCal/hatlights/model"
)

// State is the position of the controller within a cycle
type State int

const (
	Idle State = iota
	MapDirty
	Rendering
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case MapDirty:
		return "map-dirty"
	case Rendering:
		return "rendering"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type Controller struct {
	store  *model.Store
	strip  Strip
	rnd    *rand.Rand
	logger logxi.Logger

	state   State
	cmap    ColorMap      // Replaced wholesale, never patched
	source  model.Palette // Palette cmap was built from, PaletteNone before the first build
	started bool
}

func NewController(store *model.Store, strip Strip, rnd *rand.Rand, logger logxi.Logger) (ctrl *Controller) {
	return &Controller{
		store:  store,
		strip:  strip,
		rnd:    rnd,
		logger: logger,
	}
}

// State reports where in the cycle the controller is
func (ctrl *Controller) State() State {
	return ctrl.state
}

// ColorMap returns the map the controller is currently rendering from
func (ctrl *Controller) ColorMap() ColorMap {
	return ctrl.cmap
}

// Palette returns the palette the current map was built from
func (ctrl *Controller) Palette() model.Palette {
	return ctrl.source
}

// refresh rebuilds the color map when the palette differs from the one the
// current map came from.  A palette that cannot be built leaves the old map
// in place
func (ctrl *Controller) refresh(p model.Palette) (err errors.Error) {
	if ctrl.started && p == ctrl.source {
		return nil
	}
	ctrl.state = MapDirty

	cmap, errGo := BuildColorMap(p, ctrl.strip.Len())
	if errGo != nil {
		return errors.Wrap(errGo).With("palette", p.String()).With("stack", stack.Trace().TrimRuntime())
	}

	ctrl.cmap = cmap
	ctrl.source = p
	ctrl.started = true

	if ctrl.logger.IsDebug() && len(cmap) != 0 {
		ctrl.logger.Debug("color map rebuilt", "palette", p.String(), "first", cmap[0].String(), "pixels", len(cmap))
	}
	return nil
}

// Cycle performs one read, rebuild, render pass.  It returns true when an
// effect was rendered through to the end, a false return tells the caller
// the cycle may not have yielded and it should idle before trying again.  Only the end of ctx is reported as an
// error, everything else is logged and absorbed
func (ctrl *Controller) Cycle(ctx context.Context, y Yielder) (rendered bool, err error) {
	defer func() { ctrl.state = Idle }()

	cfg := ctrl.store.Snapshot()

	if err := ctrl.refresh(cfg.Palette); err != nil {
		ctrl.logger.Warn("palette ignored", "error", err.Error())
	}
	if !ctrl.started {
		return false, nil
	}

	if !cfg.Effect.Valid() {
		ctrl.logger.Warn("effect ignored", "effect", int(cfg.Effect))
		return false, nil
	}

	ctrl.strip.SetBrightness(cfg.Brightness)
	ctrl.state = Rendering

	canvas := &Canvas{
		Strip:   ctrl.strip,
		Map:     ctrl.cmap,
		Palette: ctrl.source,
		Pacer:   y,
		Rand:    ctrl.rnd,
	}
	if err := Render(ctx, cfg.Effect, canvas); err != nil {
		if ctx.Err() != nil {
			return true, ctx.Err()
		}
		// A render can fail before its first yield, reporting nothing drawn
		// makes the caller idle so the other tasks get to run
		ctrl.logger.Warn("render ended early", "effect", cfg.Effect.String(), "error", err.Error())
		return false, nil
	}
	return true, nil
}
