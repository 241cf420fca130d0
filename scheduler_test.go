package hatlights

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestSchedulerMutualExclusion(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	inside := int32(0)
	overlaps := int32(0)
	steps := int32(0)

	worker := func(name string) Task {
		return Task{
			Name: name,
			Run: func(ctx context.Context, y Yielder) error {
				for {
					if atomic.AddInt32(&inside, 1) != 1 {
						atomic.AddInt32(&overlaps, 1)
					}
					time.Sleep(100 * time.Microsecond)
					atomic.AddInt32(&steps, 1)
					atomic.AddInt32(&inside, -1)

					if err := y.Yield(ctx, time.Millisecond); err != nil {
						return err
					}
				}
			},
		}
	}

	err := NewScheduler(testLogger()).Run(ctx, worker("a"), worker("b"), worker("c"))
	require.NoError(t, err)

	assert.Zero(t, atomic.LoadInt32(&overlaps))
	assert.NotZero(t, atomic.LoadInt32(&steps))
}

func TestSchedulerRunsEveryTaskToCompletion(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	trace := []string{}
	traceLock := sync.Mutex{}

	worker := func(name string) Task {
		return Task{
			Name: name,
			Run: func(ctx context.Context, y Yielder) error {
				for i := 0; i < 3; i++ {
					traceLock.Lock()
					trace = append(trace, name)
					traceLock.Unlock()
					if err := y.Yield(ctx, 0); err != nil {
						return err
					}
				}
				return nil
			},
		}
	}

	require.NoError(t, NewScheduler(testLogger()).Run(context.Background(), worker("a"), worker("b")))
	require.Len(t, trace, 6)
	assert.Contains(t, trace, "a")
	assert.Contains(t, trace, "b")
}

func TestSchedulerTaskFailureStopsOthers(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	failing := Task{
		Name: "failing",
		Run: func(ctx context.Context, y Yielder) error {
			if err := y.Yield(ctx, 5*time.Millisecond); err != nil {
				return err
			}
			return fmt.Errorf("sensor unplugged")
		},
	}
	looping := Task{
		Name: "looping",
		Run: func(ctx context.Context, y Yielder) error {
			for {
				if err := y.Yield(ctx, time.Millisecond); err != nil {
					return err
				}
			}
		},
	}

	err := NewScheduler(testLogger()).Run(context.Background(), failing, looping)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sensor unplugged")
}

func TestSchedulerYieldHonoursContext(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	started := time.Now()

	sleeper := Task{
		Name: "sleeper",
		Run: func(ctx context.Context, y Yielder) error {
			return y.Yield(ctx, time.Hour)
		},
	}
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	require.NoError(t, NewScheduler(testLogger()).Run(ctx, sleeper))
	assert.Less(t, time.Since(started), time.Minute)
}
