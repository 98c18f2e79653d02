// Package colors maps grid counts onto a fixed diverging palette.
package colors

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

type Scale int

const (
	Log Scale = iota
	Linear
)

func (s Scale) String() string {
	if s == Linear {
		return "linear"
	}
	return "log"
}

func ParseScale(s string) (Scale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "log", "logarithmic":
		return Log, nil
	case "linear", "lin":
		return Linear, nil
	}
	return 0, fmt.Errorf("unknown color scale %q", s)
}

// Palette is an ordered list of anchor colours from floor to ceiling.
type Palette []colorful.Color

// CoolWarm samples matplotlib's "coolwarm" map at 0, .25, .5, .75 and 1.
var CoolWarm = mustPalette("#3b4cc0", "#8db0fe", "#dddddd", "#f49a7b", "#b40426")

func mustPalette(hexes ...string) Palette {
	p := make(Palette, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		p = append(p, c)
	}
	return p
}

// At interpolates the palette at t in [0,1].
func (p Palette) At(t float64) colorful.Color {
	if len(p) == 0 {
		return colorful.Color{}
	}
	t = clamp(t)
	if len(p) == 1 || t == 0 {
		return p[0]
	}
	if t == 1 {
		return p[len(p)-1]
	}
	seg := t * float64(len(p)-1)
	i := int(seg)
	return p[i].BlendLab(p[i+1], seg-float64(i)).Clamped()
}

func (p Palette) Floor() string { return p.At(0).Hex() }

type Mapper struct {
	scale   Scale
	min     float64
	max     float64
	palette Palette
}

// NewMapper builds a mapper over the observed [min, max]. A nil palette uses CoolWarm.
// On the log scale the lower bound is raised to 1, since log(0) is undefined.
func NewMapper(scale Scale, min, max int, palette Palette) Mapper {
	if len(palette) == 0 {
		palette = CoolWarm
	}
	lo, hi := float64(min), float64(max)
	if scale == Log && lo < 1 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}
	return Mapper{scale: scale, min: lo, max: hi, palette: palette}
}

// Position is v's place on the palette in [0,1]. It never decreases as v grows.
func (m Mapper) Position(v int) float64 {
	x := float64(v)
	if m.max == m.min {
		return 0
	}
	switch m.scale {
	case Log:
		if x < 1 {
			return 0
		}
		return clamp((math.Log(x) - math.Log(m.min)) / (math.Log(m.max) - math.Log(m.min)))
	default:
		return clamp((x - m.min) / (m.max - m.min))
	}
}

// Color returns v's hex colour; counts below the log floor get the palette floor.
func (m Mapper) Color(v int) string {
	return m.palette.At(m.Position(v)).Hex()
}

func clamp(t float64) float64 {
	switch {
	case math.IsNaN(t), t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}
