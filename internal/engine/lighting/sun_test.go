package lighting

import (
	"math"
	"testing"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name               string
		azimuth, elevation float32
		want               [3]float32
	}{
		{"zenith", 0, 90, [3]float32{0, 1, 0}},
		{"horizon +Z", 0, 0, [3]float32{0, 0, 1}},
		{"horizon +X", 90, 0, [3]float32{1, 0, 0}},
		{"below horizon clamps", 0, -30, [3]float32{0, 0, 1}},
		{"past zenith clamps", 0, 120, [3]float32{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunDirection(tt.azimuth, tt.elevation)
			for i := range 3 {
				if math.Abs(float64(got[i]-tt.want[i])) > 1e-5 {
					t.Fatalf("SunDirection(%v, %v) = %v, want %v", tt.azimuth, tt.elevation, got, tt.want)
				}
			}
		})
	}
}

func TestDefaultSunIsUnitAndAbove(t *testing.T) {
	d := DefaultSun().Direction()
	length := math.Sqrt(float64(d[0]*d[0] + d[1]*d[1] + d[2]*d[2]))
	if math.Abs(length-1) > 1e-5 {
		t.Errorf("length = %v, want 1", length)
	}
	if d[1] <= 0 {
		t.Errorf("default sun below horizon: %v", d)
	}
}
