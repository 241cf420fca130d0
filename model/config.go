package model

// This module defines the runtime configuration shared by the animation,
// network and button tasks.
//
// Writers are the network and button tasks, each performing whole field
// assignments while holding the scheduler baton.  The animation task is the
// only reader that matters and takes a single Snapshot at the top of every
// cycle so it never observes a palette from one write paired with an effect
// from another

import (
	"math/rand"
	"strings"
	"sync"
)

// Brightness is a strip brightness level on a 0-1 scale
type Brightness float64

const (
	BrightnessLow    Brightness = 0.05
	BrightnessMedium Brightness = 0.1
	BrightnessHigh   Brightness = 0.3

	// DefaultBrightness is the level the strip is brought up with
	DefaultBrightness Brightness = 0.01
)

// ParseBrightness maps low, medium and high onto their levels
func ParseBrightness(name string) (Brightness, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "low":
		return BrightnessLow, true
	case "medium":
		return BrightnessMedium, true
	case "high":
		return BrightnessHigh, true
	}
	return 0, false
}

// Config is the tuple of settings read once per animation cycle
type Config struct {
	Palette    Palette    `json:"color"`
	Effect     Effect     `json:"method"`
	Brightness Brightness `json:"brightness"`
}

// RandomConfig selects a palette and an effect at random using the
// default brightness
func RandomConfig(rnd *rand.Rand) Config {
	return Config{
		Palette:    RandomPalette(rnd),
		Effect:     RandomEffect(rnd),
		Brightness: DefaultBrightness,
	}
}

// Store holds the process wide Config.  Every setter replaces one field
// wholesale, invalid values are ignored and reported through the return
// value so that the previous setting survives bad input
type Store struct {
	cfg    Config
	notify func(Config)
	sync.Mutex
}

func NewStore(cfg Config) (store *Store) {
	return &Store{cfg: cfg}
}

// OnChange registers a function receiving a copy of the configuration after
// every successful write.  It is invoked without the store lock held and
// must not block
func (s *Store) OnChange(notify func(Config)) {
	s.Lock()
	s.notify = notify
	s.Unlock()
}

// Snapshot copies the whole configuration in one step
func (s *Store) Snapshot() (cfg Config) {
	s.Lock()
	defer s.Unlock()
	return s.cfg
}

func (s *Store) update(mutate func(cfg *Config)) {
	s.Lock()
	mutate(&s.cfg)
	cfg := s.cfg
	notify := s.notify
	s.Unlock()

	if notify != nil {
		notify(cfg)
	}
}

func (s *Store) SetPalette(p Palette) bool {
	if !p.Valid() {
		return false
	}
	s.update(func(cfg *Config) { cfg.Palette = p })
	return true
}

func (s *Store) SetEffect(e Effect) bool {
	if !e.Valid() {
		return false
	}
	s.update(func(cfg *Config) { cfg.Effect = e })
	return true
}

func (s *Store) SetBrightness(b Brightness) bool {
	if b < 0 || b > 1 {
		return false
	}
	s.update(func(cfg *Config) { cfg.Brightness = b })
	return true
}

// Randomize replaces both the palette and the effect with fresh random
// choices in a single write, the action bound to the physical button
func (s *Store) Randomize(rnd *rand.Rand) (cfg Config) {
	p, e := RandomPalette(rnd), RandomEffect(rnd)
	s.update(func(cfg *Config) {
		cfg.Palette = p
		cfg.Effect = e
	})
	return s.Snapshot()
}
