package main

import (
	"github.com/TeamNorCal/hatlights/model"
)

// This file implements a monitor that subscribe to and displays
// configuration changes using event subscription

func runMonitoring(subscribeC chan chan model.Config, quitC <-chan struct{}) {

	configC := make(chan model.Config, 1)
	subscribeC <- configC

	for {
		select {
		case cfg := <-configC:
			logger.Info("configuration", "color", cfg.Palette.String(), "method", cfg.Effect.String(), "brightness", float64(cfg.Brightness))
		case <-quitC:
			return
		}
	}
}
