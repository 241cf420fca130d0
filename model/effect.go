package model

import (
	"math/rand"
	"strings"
)

// Effect identifies one of the motion effects in the effect library
type Effect int

const (
	EffectNone Effect = iota
	EffectRandom
	EffectSparkle
	EffectWheel
	EffectChase
	EffectPulse
	EffectWipe
	numEffects
)

var effectNames = [numEffects]string{
	EffectNone:    "none",
	EffectRandom:  "random",
	EffectSparkle: "sparkle",
	EffectWheel:   "wheel",
	EffectChase:   "chase",
	EffectPulse:   "pulse",
	EffectWipe:    "wipe",
}

// Effects returns every valid effect in registry order
func Effects() (all []Effect) {
	all = make([]Effect, 0, numEffects-1)
	for e := EffectNone + 1; e < numEffects; e++ {
		all = append(all, e)
	}
	return all
}

// ParseEffect maps an operator supplied name, in any case, onto an effect
func ParseEffect(name string) (Effect, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, e := range Effects() {
		if effectNames[e] == name {
			return e, true
		}
	}
	return EffectNone, false
}

// RandomEffect picks uniformly from the registry
func RandomEffect(rnd *rand.Rand) Effect {
	return EffectNone + 1 + Effect(rnd.Intn(int(numEffects-1)))
}

func (e Effect) Valid() bool {
	return e > EffectNone && e < numEffects
}

func (e Effect) String() string {
	if e < EffectNone || e >= numEffects {
		return "unknown"
	}
	return effectNames[e]
}

func (e Effect) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}
