package hatlights

// This file contains the three cooperative tasks run by the scheduler,
// animation, network polling and button polling.  The network and button
// tasks are the only writers of the configuration and do all of their
// writing between two yields

import (
	"context"
	"math/rand"
	"time"

	logxi "github.com/mgutz/logxi/v1"

	"github.com/TeamNorCal/hatlights/model"
)

// Default polling and idle intervals
const (
	DefaultNetworkPoll  = 500 * time.Millisecond
	DefaultButtonPoll   = 500 * time.Millisecond
	DefaultIdleInterval = 50 * time.Millisecond
)

// AnimationTask runs controller cycles back to back.  A cycle that draws
// nothing, which yields nowhere, is followed by an idle yield so the other
// tasks are not starved
func AnimationTask(ctrl *Controller, idle time.Duration) Task {
	return Task{
		Name: "animation",
		Run: func(ctx context.Context, y Yielder) (err error) {
			for {
				rendered, err := ctrl.Cycle(ctx, y)
				if err != nil {
					return err
				}
				if !rendered {
					if err = y.Yield(ctx, idle); err != nil {
						return err
					}
				}
			}
		},
	}
}

// NetworkTask applies queued control requests, answering each with its
// acknowledgment, then sleeps until the next poll
func NetworkTask(inbox *CommandInbox, store *model.Store, interval time.Duration, logger logxi.Logger) Task {
	return Task{
		Name: "network",
		Run: func(ctx context.Context, y Yielder) (err error) {
			for {
				for _, req := range inbox.drain() {
					resp := ApplyCommands(store, req.cmds)
					if logger.IsDebug() {
						logger.Debug("commands applied", "commands", req.cmds, "response", resp)
					}
					req.replyC <- resp
				}
				if err = y.Yield(ctx, interval); err != nil {
					return err
				}
			}
		},
	}
}

// ButtonTask reselects the palette and effect at random whenever the button
// was pressed since the previous poll
func ButtonTask(latch *ButtonLatch, store *model.Store, rnd *rand.Rand, interval time.Duration, logger logxi.Logger) Task {
	return Task{
		Name: "button",
		Run: func(ctx context.Context, y Yielder) (err error) {
			for {
				if latch.Consume() {
					cfg := store.Randomize(rnd)
					logger.Info("button pressed", "color", cfg.Palette.String(), "method", cfg.Effect.String())
				}
				if err = y.Yield(ctx, interval); err != nil {
					return err
				}
			}
		},
	}
}
