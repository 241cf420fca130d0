package main

import (
	"github.com/karlmutch/errors"
)

// errorWatch logs failures reported by the background parts of the engine
func errorWatch(errorC <-chan errors.Error, quitC <-chan struct{}) {
	for {
		select {
		case err := <-errorC:
			if err != nil {
				logger.Warn(err.Error())
			}
		case <-quitC:
			return
		}
	}
}
