// Package theme assigns terminal colors to condition-tree depths.
//
// Depth 0 is neutral grey; each deeper level drifts the RGB channels by a
// bounded amount that shrinks with depth, so nested groups stay
// distinguishable without jumping across the palette. The drift is seeded by
// depth alone: the same depth always renders the same color.
package theme

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Shade multipliers applied to the depth's base RGB.
const (
	textShade       = 0.45
	accentShade     = 0.7
	backgroundShade = 0.8
)

// Drift bounds for child levels.
const (
	maxDrift   = 0.6 // must exceed 0.1
	driftDecay = 0.9 // in [0,1)
)

// Color is the palette for one tree depth.
type Color struct {
	Text       lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
}

type rgb [3]float64

// ForDepth returns the palette for depth. Negative depths are treated as 0.
func ForDepth(depth int) Color {
	c := normalize(rgb{255, 255, 255})
	for d := 1; d <= depth; d++ {
		c = child(c, d)
	}
	return Color{
		Text:       hex(c, textShade),
		Accent:     hex(c, accentShade),
		Background: hex(c, backgroundShade),
	}
}

// Palette returns ForDepth for depths 0..n-1.
func Palette(n int) []Color {
	out := make([]Color, 0, n)
	for d := 0; d < n; d++ {
		out = append(out, ForDepth(d))
	}
	return out
}

// child derives depth d's base from its parent's.
func child(parent rgb, d int) rgb {
	var c rgb
	for ch := range parent {
		m := (unit(d, ch) - 0.5) * (maxDrift - 0.1) * math.Pow(driftDecay, float64(d-1))
		c[ch] = clamp(math.Floor(parent[ch] * (1 + m)))
	}
	return normalize(c)
}

// normalize lifts every channel so the brightest one is 255.
func normalize(c rgb) rgb {
	top := math.Max(c[0], math.Max(c[1], c[2]))
	for ch := range c {
		c[ch] = clamp(c[ch] + (255 - top))
	}
	return c
}

// unit maps (depth, channel) to a stable value in [0,1).
func unit(depth, channel int) float64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(depth))
	binary.LittleEndian.PutUint64(buf[8:], uint64(channel))
	h := fnv.New64a()
	h.Write(buf[:])
	return float64(h.Sum64()>>11) / (1 << 53)
}

func hex(c rgb, shade float64) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x",
		int(clamp(math.Floor(c[0]*shade))),
		int(clamp(math.Floor(c[1]*shade))),
		int(clamp(math.Floor(c[2]*shade)))))
}

func clamp(v float64) float64 {
	return math.Min(255, math.Max(0, v))
}
