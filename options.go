package hatlights

// This file contains the deployment options, loaded from an optional YAML
// file and overridden from the command line

import (
	"os"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	"gopkg.in/yaml.v2"

	"github.com/TeamNorCal/hatlights/model"
)

// Options describes the strip and the inputs of one installation
type Options struct {
	Pixels       int              `yaml:"pixels"`
	OPCServer    string           `yaml:"opc_server"`
	OPCChannel   uint8            `yaml:"opc_channel"`
	Listen       string           `yaml:"listen"`
	ButtonPin    int              `yaml:"button_pin"` // Negative disables the GPIO button
	NetworkPoll  time.Duration    `yaml:"network_poll"`
	ButtonPoll   time.Duration    `yaml:"button_poll"`
	IdleInterval time.Duration    `yaml:"idle_interval"`
	AckTimeout   time.Duration    `yaml:"ack_timeout"`
	Brightness   model.Brightness `yaml:"brightness"`
}

func DefaultOptions() (opts Options) {
	return Options{
		Pixels:       37,
		OPCServer:    "localhost:7890",
		OPCChannel:   0,
		Listen:       ":80",
		ButtonPin:    -1,
		NetworkPoll:  DefaultNetworkPoll,
		ButtonPoll:   DefaultButtonPoll,
		IdleInterval: DefaultIdleInterval,
		AckTimeout:   DefaultAckTimeout,
		Brightness:   model.DefaultBrightness,
	}
}

// LoadOptions reads a YAML options file on top of the defaults, values
// missing from the file keep their defaults
func LoadOptions(fn string) (opts Options, err errors.Error) {
	opts = DefaultOptions()

	byt, errGo := os.ReadFile(fn)
	if errGo != nil {
		return opts, errors.Wrap(errGo).With("file", fn).With("stack", stack.Trace().TrimRuntime())
	}
	if errGo = yaml.Unmarshal(byt, &opts); errGo != nil {
		return opts, errors.Wrap(errGo).With("file", fn).With("stack", stack.Trace().TrimRuntime())
	}
	return opts, opts.Validate()
}

// Validate rejects options the engine cannot run with
func (opts *Options) Validate() (err errors.Error) {
	if opts.Pixels < 1 {
		return errors.New("the strip needs at least one pixel").With("pixels", opts.Pixels).With("stack", stack.Trace().TrimRuntime())
	}
	if opts.Brightness < 0 || opts.Brightness > 1 {
		return errors.New("brightness must be between 0 and 1").With("brightness", float64(opts.Brightness)).With("stack", stack.Trace().TrimRuntime())
	}
	for name, d := range map[string]time.Duration{
		"network_poll":  opts.NetworkPoll,
		"button_poll":   opts.ButtonPoll,
		"idle_interval": opts.IdleInterval,
		"ack_timeout":   opts.AckTimeout,
	} {
		if d <= 0 {
			return errors.New("intervals must be positive").With("option", name).With("value", d).With("stack", stack.Trace().TrimRuntime())
		}
	}
	return nil
}
