package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs/component"
)

// PatternDirections expands an aim direction into the unit directions of one
// volley. A fan spreads Count shots evenly over SpreadDeg centered on base; a
// circle spaces them 360/Count degrees apart starting at base.
func PatternDirections(base cp.Vector, p component.Pattern) []cp.Vector {
	base = normalize(base)
	if base == (cp.Vector{}) {
		base = cp.Vector{X: 1}
	}
	n := p.Count
	if n < 1 {
		n = 1
	}
	if n == 1 || p.Kind == component.PatternSingle || p.Kind == "" {
		return []cp.Vector{base}
	}

	angle := base.ToAngle()
	out := make([]cp.Vector, 0, n)
	switch p.Kind {
	case component.PatternCircle:
		step := 2 * math.Pi / float64(n)
		for i := 0; i < n; i++ {
			out = append(out, cp.ForAngle(angle+step*float64(i)))
		}
	default:
		spread := p.SpreadDeg * math.Pi / 180
		step := spread / float64(n-1)
		start := angle - spread/2
		for i := 0; i < n; i++ {
			out = append(out, cp.ForAngle(start+step*float64(i)))
		}
	}
	return out
}
