package hatlights

import (
	"sync"
	"time"

	logxi "github.com/mgutz/logxi/v1"

	"github.com/TeamNorCal/hatlights/model"
)

type subs struct {
	subs []chan model.Config
	sync.Mutex
}

// startFanOut implement a broadcast mechanisim for accepting configuration
// changes and relaying them to subscribers.  The function returns a single
// channel to which configurations get sent and, a channel that can be used to
// add listeners.  Subscribers that cannot keep up are skipped after a short
// wait, the configuration writers are never held up by them
//
func startFanOut(quitC <-chan struct{}, logger logxi.Logger) (inC chan model.Config, subC chan chan model.Config) {

	inC = make(chan model.Config, 8)
	subC = make(chan chan model.Config, 1)

	listeners := &subs{
		subs: []chan model.Config{},
	}

	go func(quitC <-chan struct{}) {
		defer logger.Debug("fanout stopped")
		for {
			select {
			case <-quitC:
				return
			case sub := <-subC:
				if nil != sub {
					listeners.Lock()
					listeners.subs = append(listeners.subs, sub)
					listeners.Unlock()
					logger.Debug("subscription added")
				}
			case cfg := <-inC:
				listeners.Lock()
				for _, ch := range listeners.subs {
					select {
					case ch <- cfg:
					case <-time.After(250 * time.Millisecond):
						logger.Debug("subscription failed to send")
					}
				}
				listeners.Unlock()
			}
		}
	}(quitC)

	return inC, subC
}

// publisher returns a store change hook that queues each configuration for
// the fan out without ever blocking, dropping it if the queue is full
func publisher(inC chan<- model.Config, logger logxi.Logger) func(model.Config) {
	return func(cfg model.Config) {
		select {
		case inC <- cfg:
		default:
			logger.Debug("configuration change dropped", "color", cfg.Palette.String())
		}
	}
}
