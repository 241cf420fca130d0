package hatlights

// This file contains the color map builder.  A color map holds one color for
// every pixel of the strip and is derived from the active palette, either a
// single solid color or a gradient interpolated between the palette stops.
//
// Gradients are laid out over the first half of the strip and mirrored onto
// the second half with the final pixel forced back to the first color, which
// lets effects that rotate the map around the strip do so without a seam

import (
	"fmt"

	"github.com/TeamNorCal/hatlights/model"
)

// ColorMap is the per pixel color buffer for the whole strip
type ColorMap []model.Color

// ConfigurationError indicates a palette that cannot produce a color map
type ConfigurationError struct {
	Stops int
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("a gradient needs at least 2 stops, %d supplied", e.Stops)
}

// BuildColorMap generates the map for a palette from the registry,
// dispatching to BuildSolid or BuildGradient
func BuildColorMap(p model.Palette, length int) (cmap ColorMap, err error) {
	stops := p.Stops()
	if len(stops) == 1 {
		return BuildSolid(stops[0], length), nil
	}
	return BuildGradient(stops, length)
}

// BuildSolid sets every position to the same color
func BuildSolid(c model.Color, length int) (cmap ColorMap) {
	if length < 0 {
		length = 0
	}
	cmap = make(ColorMap, length)
	for i := range cmap {
		cmap[i] = c
	}
	return cmap
}

// segmentLengths splits the first half of the strip across the gradient
// segments.  Every segment gets length/(2*segments) positions, segment 0 one
// fewer, and the remainder plus that position go one each to segments 1 and
// up.
//
// The filled positions are followed by the seam and the mirrored half, so
// they must come to ceil(length/2) or one less for the whole strip to be
// covered exactly.  Lengths where the split above misses that range are
// trimmed from the last segments or padded from segment 1 onward, and
// segment 0 always keeps at least one position so the first stop lands on
// index 0
func segmentLengths(segments int, length int) (quota []int) {
	steps := length / (2 * segments)
	extra := length%(2*segments) + 1

	quota = make([]int, segments)
	quota[0] = steps - 1
	for i := 1; i < segments; i++ {
		quota[i] = steps
		if extra > 0 {
			quota[i]++
			extra--
		}
	}

	filled := 0
	for i, q := range quota {
		if q < 0 {
			quota[i] = 0
		}
		filled += quota[i]
	}

	most := (length + 1) / 2
	for ; filled > most; filled-- {
		for i := segments - 1; i >= 0; i-- {
			if quota[i] > 0 {
				quota[i]--
				break
			}
		}
	}
	for i := 1 % segments; filled < most-1; filled, i = filled+1, (i+1)%segments {
		quota[i]++
	}

	if quota[0] == 0 && filled > 0 {
		for i := segments - 1; i > 0; i-- {
			if quota[i] > 0 {
				quota[i]--
				quota[0]++
				break
			}
		}
	}
	return quota
}

// floorDiv divides rounding toward negative infinity
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// BuildGradient interpolates linearly between consecutive stops across the
// first half of the map, repeats the last interpolated color once as the
// seam and mirrors the first half around the seam onto the rest of the map.
//
// The per step channel delta is an integer floor division so short segments
// band visibly, this is expected.  Channels are clamped to 8 bits before
// packing
func BuildGradient(stops []model.Color, length int) (cmap ColorMap, err error) {
	if len(stops) < 2 {
		return nil, &ConfigurationError{Stops: len(stops)}
	}
	if length <= 0 {
		return ColorMap{}, nil
	}

	cmap = make(ColorMap, length)

	idx := 0
	for i, cursteps := range segmentLengths(len(stops)-1, length) {
		if cursteps <= 0 {
			continue
		}
		r1, g1, b1 := stops[i].Decompose()
		r2, g2, b2 := stops[i+1].Decompose()
		dr, dg, db := floorDiv(r2-r1, cursteps), floorDiv(g2-g1, cursteps), floorDiv(b2-b1, cursteps)

		for j := 0; j < cursteps; j++ {
			cmap[idx+j] = model.Compose(
				model.Clamp(r1+dr*j),
				model.Clamp(g1+dg*j),
				model.Clamp(b1+db*j),
			)
		}
		idx += cursteps
	}

	seam := idx
	switch {
	case seam == 0:
		cmap[0] = stops[0]
	case seam < length:
		cmap[seam] = cmap[seam-1]
	}

	for i := 0; seam+1+i < length-1; i++ {
		cmap[seam+1+i] = cmap[seam-i]
	}

	cmap[length-1] = cmap[0]
	return cmap, nil
}
