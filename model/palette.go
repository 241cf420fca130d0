package model

// This module defines the fixed registry of palettes that color maps are
// generated from.  Palettes are a closed enumeration, string names are only
// ever mapped onto them at the input boundary

import (
	"math/rand"
	"strings"
)

// Palette identifies one of the built in palettes.  The zero value is not a
// valid palette
type Palette int

const (
	PaletteNone Palette = iota
	PaletteRed
	PaletteOrange
	PaletteYellow
	PaletteGreen
	PaletteBlue
	PalettePurple
	PalettePink
	PaletteWhite
	PaletteRainbow
	PaletteHot
	PaletteCool
	PaletteJet
	PaletteBone
	numPalettes
)

type paletteDef struct {
	name  string
	stops []Color // A single stop marks a solid palette
}

var palettes = [numPalettes]paletteDef{
	PaletteNone:    {name: "none"},
	PaletteRed:     {"red", []Color{0xff0000}},
	PaletteOrange:  {"orange", []Color{0xff5000}},
	PaletteYellow:  {"yellow", []Color{0xffff00}},
	PaletteGreen:   {"green", []Color{0x00ff00}},
	PaletteBlue:    {"blue", []Color{0x0000ff}},
	PalettePurple:  {"purple", []Color{0x7f00ff}},
	PalettePink:    {"pink", []Color{0xff1493}},
	PaletteWhite:   {"white", []Color{0xffffff}},
	PaletteRainbow: {"rainbow", []Color{0x8000ff, 0x00b4ec, 0x80ffb4, 0xffb462, 0xff0000}},
	PaletteHot:     {"hot", []Color{0x0b0000, 0xb20000, 0xff5a00, 0xffff04, 0xffffff}},
	PaletteCool:    {"cool", []Color{0x00ffff, 0x40bfff, 0x8080ff, 0xbf40ff, 0xff00ff}},
	PaletteJet:     {"jet", []Color{0x000080, 0x0080ff, 0x7bff7b, 0xff9700, 0x800000}},
	PaletteBone:    {"bone", []Color{0x000000, 0x38384e, 0x707b8f, 0xa8c7c7, 0xffffff}},
}

// Palettes returns every valid palette in registry order
func Palettes() (all []Palette) {
	all = make([]Palette, 0, numPalettes-1)
	for p := PaletteNone + 1; p < numPalettes; p++ {
		all = append(all, p)
	}
	return all
}

// ParsePalette maps an operator supplied name, in any case, onto a palette
func ParsePalette(name string) (Palette, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range Palettes() {
		if palettes[p].name == name {
			return p, true
		}
	}
	return PaletteNone, false
}

// RandomPalette picks uniformly from the registry
func RandomPalette(rnd *rand.Rand) Palette {
	return PaletteNone + 1 + Palette(rnd.Intn(int(numPalettes-1)))
}

func (p Palette) Valid() bool {
	return p > PaletteNone && p < numPalettes
}

func (p Palette) String() string {
	if p < PaletteNone || p >= numPalettes {
		return "unknown"
	}
	return palettes[p].name
}

// MarshalText allows palettes to appear by name inside JSON documents
func (p Palette) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Solid is true for palettes consisting of a single color
func (p Palette) Solid() bool {
	return p.Valid() && len(palettes[p].stops) == 1
}

// Stops returns a copy of the palette colors, a single entry for solid
// palettes and the ordered gradient stops otherwise
func (p Palette) Stops() (stops []Color) {
	if !p.Valid() {
		return nil
	}
	return append([]Color(nil), palettes[p].stops...)
}
