package hatlights

// This module wires the configuration store, the animation controller, the
// inputs and the control surface together and runs them until cancelled

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	logxi "github.com/mgutz/logxi/v1"
	"golang.org/x/sync/errgroup"

	"github.com/TeamNorCal/hatlights/model"
)

type Gateway struct {
	Store      *model.Store
	Inbox      *CommandInbox
	Latch      *ButtonLatch
	Controller *Controller
	Control    *ControlServer

	opts   Options
	rnd    *rand.Rand
	logger logxi.Logger
}

// NewGateway prepares the engine for a strip starting from a random palette
// and effect at the configured brightness
func NewGateway(opts Options, strip Strip, rnd *rand.Rand, logger logxi.Logger) (gw *Gateway) {
	cfg := model.RandomConfig(rnd)
	cfg.Brightness = opts.Brightness

	store := model.NewStore(cfg)
	inbox := NewCommandInbox()

	return &Gateway{
		Store:      store,
		Inbox:      inbox,
		Latch:      &ButtonLatch{},
		Controller: NewController(store, strip, rnd, logger),
		Control:    NewControlServer(inbox, store, opts.AckTimeout, logger),
		opts:       opts,
		rnd:        rnd,
		logger:     logger,
	}
}

// Tasks returns the cooperative tasks making up the engine
func (gw *Gateway) Tasks() []Task {
	return []Task{
		AnimationTask(gw.Controller, gw.opts.IdleInterval),
		NetworkTask(gw.Inbox, gw.Store, gw.opts.NetworkPoll, gw.logger),
		ButtonTask(gw.Latch, gw.Store, gw.rnd, gw.opts.ButtonPoll, gw.logger),
	}
}

func reportError(err errors.Error, errorC chan<- errors.Error) {
	select {
	case errorC <- err:
	case <-time.After(100 * time.Millisecond):
		fmt.Fprintln(os.Stderr, err.Error())
	}
}

// Start runs the scheduler and, when a listen address is configured, the
// control surface.  Configuration changes are broadcast to channels sent on
// the returned subscription channel.  doneC is closed once everything has
// stopped after ctx is cancelled, failures are sent to errorC
func (gw *Gateway) Start(ctx context.Context, errorC chan<- errors.Error) (subscribeC chan chan model.Config, doneC chan struct{}) {

	inC, subscribeC := startFanOut(ctx.Done(), gw.logger)
	gw.Store.OnChange(publisher(inC, gw.logger))

	doneC = make(chan struct{})
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := NewScheduler(gw.logger).Run(groupCtx, gw.Tasks()...); err != nil {
			reportError(err, errorC)
			return err
		}
		return nil
	})

	if len(gw.opts.Listen) != 0 {
		srv := &http.Server{
			Addr:    gw.opts.Listen,
			Handler: gw.Control.Router(),
		}

		group.Go(func() error {
			if errGo := srv.ListenAndServe(); errGo != nil && errGo != http.ErrServerClosed {
				err := errors.Wrap(errGo).With("listen", gw.opts.Listen).With("stack", stack.Trace().TrimRuntime())
				reportError(err, errorC)
				return err
			}
			return nil
		})

		group.Go(func() error {
			<-groupCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	go func() {
		defer close(doneC)
		group.Wait()
	}()

	return subscribeC, doneC
}
