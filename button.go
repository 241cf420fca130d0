package hatlights

// This module implements the physical button input.  Presses are latched
// from whichever goroutine observes them and consumed by the button task on
// its next poll, so any number of presses between two polls count once

import (
	"sync"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	"github.com/kidoman/embd"
)

// ButtonLatch remembers that the button was pressed until consumed
type ButtonLatch struct {
	pressed bool
	sync.Mutex
}

func (latch *ButtonLatch) Press() {
	latch.Lock()
	latch.pressed = true
	latch.Unlock()
}

// Consume reports whether a press happened since the last call and clears it
func (latch *ButtonLatch) Consume() (pressed bool) {
	latch.Lock()
	defer latch.Unlock()

	pressed = latch.pressed
	latch.pressed = false
	return pressed
}

// GPIOButton watches a pulled up input pin, the button pulls it low when
// pressed, and latches each falling edge
type GPIOButton struct {
	pin embd.DigitalPin
}

// StartGPIOButton opens the pin and begins watching it.  The host board
// driver must already be registered, for example by importing
// github.com/kidoman/embd/host/rpi
func StartGPIOButton(pinNum int, latch *ButtonLatch) (button *GPIOButton, err errors.Error) {
	if errGo := embd.InitGPIO(); errGo != nil {
		return nil, errors.Wrap(errGo).With("pin", pinNum).With("stack", stack.Trace().TrimRuntime())
	}

	pin, errGo := embd.NewDigitalPin(pinNum)
	if errGo != nil {
		embd.CloseGPIO()
		return nil, errors.Wrap(errGo).With("pin", pinNum).With("stack", stack.Trace().TrimRuntime())
	}

	if errGo = pin.SetDirection(embd.In); errGo != nil {
		pin.Close()
		embd.CloseGPIO()
		return nil, errors.Wrap(errGo).With("pin", pinNum).With("stack", stack.Trace().TrimRuntime())
	}

	errGo = pin.Watch(embd.EdgeFalling, func(embd.DigitalPin) {
		latch.Press()
	})
	if errGo != nil {
		pin.Close()
		embd.CloseGPIO()
		return nil, errors.Wrap(errGo).With("pin", pinNum).With("stack", stack.Trace().TrimRuntime())
	}

	return &GPIOButton{pin: pin}, nil
}

func (button *GPIOButton) Close() {
	button.pin.StopWatching()
	button.pin.Close()
	embd.CloseGPIO()
}
