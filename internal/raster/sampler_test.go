package raster

import (
	"testing"

	"graphite-raster/internal/fixed"
)

func TestSampleTextureAbsent(t *testing.T) {
	coords := []fixed.Fixed{0, fixed.Half, fixed.One, fixed.FromInt(-3), fixed.FromInt(7)}
	for _, u := range coords {
		for _, v := range coords {
			if got := sampleTexture(nil, u, v, DrawOptions{ClampS: true}); got != White {
				t.Errorf("sampleTexture(nil, %d, %d) = %+v, want white", u, v, got)
			}
		}
	}
}

func TestQuadrantTexture(t *testing.T) {
	tests := []struct {
		name string
		u, v fixed.Fixed
		want Sample
	}{
		{"origin", 0, 0, White},
		{"just below half", fixed.Half - 1, fixed.Half - 1, White},
		{"u at half", fixed.Half, 0, quadRed},
		{"v at half", 0, fixed.Half, quadGreen},
		{"both at half", fixed.Half, fixed.Half, quadBlue},
		{"far corner", fixed.One, fixed.One, quadBlue},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := QuadrantTexture{}.Sample(tc.u, tc.v, false, false)
			if got != tc.want {
				t.Errorf("Sample(%d, %d) = %+v, want %+v", tc.u, tc.v, got, tc.want)
			}
			if got.A != fixed.One {
				t.Errorf("Sample(%d, %d) alpha = %d, want opaque", tc.u, tc.v, got.A)
			}
		})
	}
}
