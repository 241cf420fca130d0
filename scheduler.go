package hatlights

// This file contains a cooperative scheduler.  The animation, network and
// button tasks are each run on their own goroutine but only ever execute
// while holding a single baton, so exactly one of them makes progress at any
// moment.  A task gives the baton up only when it calls Yield, which makes
// the points at which another task can observe or change shared state
// explicit, matching a single threaded event loop

import (
	"context"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	logxi "github.com/mgutz/logxi/v1"
	"golang.org/x/sync/errgroup"
)

// Yielder suspends the calling task for at least the given duration while
// letting other tasks run.  It returns an error only when ctx ends
type Yielder interface {
	Yield(ctx context.Context, d time.Duration) error
}

// Task is one unit of cooperative work.  Run is entered holding the baton
// and is expected to loop, calling Yield between steps, until ctx is done
type Task struct {
	Name string
	Run  func(ctx context.Context, y Yielder) error
}

// Scheduler interleaves tasks strictly at their yield points
type Scheduler struct {
	baton  chan struct{}
	logger logxi.Logger
}

func NewScheduler(logger logxi.Logger) (sched *Scheduler) {
	return &Scheduler{
		baton:  make(chan struct{}, 1),
		logger: logger,
	}
}

func (sched *Scheduler) acquire(ctx context.Context) (err error) {
	select {
	case sched.baton <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (sched *Scheduler) release() {
	<-sched.baton
}

// Yield releases the baton, waits out the duration and then queues to take
// the baton back.  A zero duration still lets any waiting task run first
func (sched *Scheduler) Yield(ctx context.Context, d time.Duration) (err error) {
	sched.release()

	if d > 0 {
		timer := time.NewTimer(d)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
		}
	}

	// The baton must be held again on return, even during shutdown, as
	// the deferred release in Run expects it
	sched.baton <- struct{}{}
	return ctx.Err()
}

// Run starts every task and blocks until all have returned.  Tasks end when
// ctx is cancelled, the first task failing with anything other than the
// context ending cancels the others and is returned
func (sched *Scheduler) Run(ctx context.Context, tasks ...Task) (err errors.Error) {
	group, groupCtx := errgroup.WithContext(ctx)

	for _, task := range tasks {
		task := task
		group.Go(func() (errGo error) {
			if errGo = sched.acquire(groupCtx); errGo != nil {
				return nil
			}
			defer sched.release()

			sched.logger.Debug("task started", "task", task.Name)
			defer sched.logger.Debug("task stopped", "task", task.Name)

			if errGo = task.Run(groupCtx, sched); errGo != nil && groupCtx.Err() == nil {
				return errors.Wrap(errGo).With("task", task.Name).With("stack", stack.Trace().TrimRuntime())
			}
			return nil
		})
	}

	if errGo := group.Wait(); errGo != nil {
		if err, isErr := errGo.(errors.Error); isErr {
			return err
		}
		return errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}
