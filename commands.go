package hatlights

// This module decodes the key/value commands arriving from the control
// surface and applies them to the configuration store.  It is the only place
// that palette and effect names are translated into their enumerations

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/TeamNorCal/hatlights/model"
)

// Command is one key=value pair from a control request
type Command struct {
	Key   string
	Value string
}

// ParseCommands splits a form style body, "color=red&method=wipe", into its
// pairs keeping their order.  Pairs without an = or with an empty key are
// dropped
func ParseCommands(body string) (cmds []Command) {
	cmds = []Command{}
	for _, pair := range strings.Split(strings.TrimSpace(body), "&") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(unescape(key))
		if len(key) == 0 {
			continue
		}
		cmds = append(cmds, Command{Key: key, Value: strings.TrimSpace(unescape(value))})
	}
	return cmds
}

// unescape decodes form escaping, values that fail to decode are used as is
func unescape(s string) string {
	if decoded, errGo := url.QueryUnescape(s); errGo == nil {
		return decoded
	}
	return s
}

func helpText() string {
	return `List of commands:
color [color]   - sets color of lights.
                    Choose from ` + strings.Join(paletteNames(), ", ") + `
method [method] - sets animation of lights.
                    Choose from ` + strings.Join(effectNames(), ", ") + `
bright [level]  - sets brightness of lights.
                    Choose from low, medium, high
help            - shows this list

Console allows tab completion and listing choices with [command] <double tab>
`
}

func bannerText() string {
	return `
  _   _       _      ____            _             _
 | | | | __ _| |_   / ___|___  _ __ | |_ _ __ ___ | |
 | |_| |/ _' | __| | |   / _ \| '_ \| __| '__/ _ \| |
 |  _  | (_| | |_  | |__| (_) | | | | |_| | | (_) | |
 |_| |_|\__,_|\__|  \____\___/|_| |_|\__|_|  \___/|_|

Welcome to Hat Control.

Type   help   to see a list of commands.
`
}

func paletteNames() (names []string) {
	for _, p := range model.Palettes() {
		names = append(names, p.String())
	}
	return names
}

func effectNames() (names []string) {
	for _, e := range model.Effects() {
		names = append(names, e.String())
	}
	return names
}

// ApplyCommands writes every recognised command into the store in order and
// returns the acknowledgment for the last one that took effect.  Unknown
// keys, and unknown values for known keys, change nothing and add no text
func ApplyCommands(store *model.Store, cmds []Command) (resp string) {
	for _, cmd := range cmds {
		value := strings.ToLower(cmd.Value)

		switch strings.ToLower(cmd.Key) {
		case "command":
			switch value {
			case "help":
				resp = helpText()
			case "banner":
				resp = bannerText()
			}
		case "color":
			if p, isPresent := model.ParsePalette(value); isPresent && store.SetPalette(p) {
				resp = fmt.Sprintf("set color to %s", p)
			}
		case "method":
			if e, isPresent := model.ParseEffect(value); isPresent && store.SetEffect(e) {
				resp = fmt.Sprintf("set method to %s", e)
			}
		case "bright":
			if level, isPresent := model.ParseBrightness(value); isPresent && store.SetBrightness(level) {
				resp = fmt.Sprintf("set brightness to %s", value)
			}
		}
	}
	return resp
}
