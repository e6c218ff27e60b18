package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs/component"
)

func angleDeg(v cp.Vector) float64 {
	return math.Atan2(v.Y, v.X) * 180 / math.Pi
}

func angleDiff(a, b float64) float64 {
	d := math.Mod(b-a+540, 360) - 180
	return math.Abs(d)
}

func TestPatternDirections(t *testing.T) {
	tests := []struct {
		name    string
		base    cp.Vector
		pattern component.Pattern
		want    []float64
	}{
		{"single", cp.Vector{X: 0, Y: 1}, component.Pattern{Kind: component.PatternSingle}, []float64{90}},
		{"fan_of_one", cp.Vector{X: 1}, component.Pattern{Kind: component.PatternFan, Count: 1, SpreadDeg: 40}, []float64{0}},
		{"fan_of_three", cp.Vector{X: 1}, component.Pattern{Kind: component.PatternFan, Count: 3, SpreadDeg: 30}, []float64{-15, 0, 15}},
		{"fan_of_five", cp.Vector{X: 1}, component.Pattern{Kind: component.PatternFan, Count: 5, SpreadDeg: 40}, []float64{-20, -10, 0, 10, 20}},
		{"circle_of_four", cp.Vector{X: 0, Y: -2}, component.Pattern{Kind: component.PatternCircle, Count: 4}, []float64{-90, 0, 90, 180}},
		{"zero_base_defaults_right", cp.Vector{}, component.Pattern{Kind: component.PatternSingle}, []float64{0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := PatternDirections(tc.base, tc.pattern)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d directions, want %d", len(got), len(tc.want))
			}
			for i, d := range got {
				if !near(d.Length(), 1) {
					t.Fatalf("direction %d not unit: %v", i, d)
				}
				if angleDiff(angleDeg(d), tc.want[i]) > 1e-6 {
					t.Fatalf("direction %d at %v degrees, want %v", i, angleDeg(d), tc.want[i])
				}
			}
		})
	}
}

func TestCircleOfTwelveSpearsIsThirtyDegreesApart(t *testing.T) {
	dirs := PatternDirections(cp.Vector{X: 1, Y: 1}, component.Pattern{Kind: component.PatternCircle, Count: 12})
	if len(dirs) != 12 {
		t.Fatalf("got %d spears", len(dirs))
	}
	for i := 1; i < len(dirs); i++ {
		if d := angleDiff(angleDeg(dirs[i-1]), angleDeg(dirs[i])); math.Abs(d-30) > 1e-6 {
			t.Fatalf("spears %d and %d are %v degrees apart", i-1, i, d)
		}
	}
}
