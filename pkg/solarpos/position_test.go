package solarpos

import (
	"math"
	"testing"
	"time"
)

func TestPosition(t *testing.T) {
	tests := []struct {
		name         string
		time         time.Time
		latitude     float64
		longitude    float64
		zenithApprox float64 // ±0.5°
		azimuth      float64 // ±1.5°, negative to skip
		up           bool
	}{
		{
			// Near local solar noon on the June solstice
			name:         "Greenwich summer solstice noon",
			time:         time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC),
			latitude:     51.48,
			longitude:    0.0,
			zenithApprox: 28.04,
			azimuth:      180,
			up:           true,
		},
		{
			name:         "Equator equinox noon",
			time:         time.Date(2024, 3, 20, 12, 7, 0, 0, time.UTC),
			latitude:     0.0,
			longitude:    0.0,
			zenithApprox: 0.0,
			azimuth:      -1,
			up:           true,
		},
		{
			name:         "Seattle winter solstice noon",
			time:         time.Date(2023, 12, 21, 20, 10, 0, 0, time.UTC),
			latitude:     47.6,
			longitude:    -122.3,
			zenithApprox: 71.04,
			azimuth:      180,
			up:           true,
		},
		{
			name:         "Equator midnight",
			time:         time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
			latitude:     0.0,
			longitude:    0.0,
			zenithApprox: 178.1,
			azimuth:      -1,
			up:           false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Position(tt.time, tt.latitude, tt.longitude)

			if p.Up() != tt.up {
				t.Errorf("Up() = %v, expected %v (elevation %.2f)", p.Up(), tt.up, p.ElevationDeg)
			}
			if math.Abs(p.ZenithDeg-tt.zenithApprox) > 0.5 {
				t.Errorf("zenith = %.2f, expected ~%.2f", p.ZenithDeg, tt.zenithApprox)
			}
			if tt.azimuth >= 0 && math.Abs(p.AzimuthDeg-tt.azimuth) > 1.5 {
				t.Errorf("azimuth = %.2f, expected ~%.2f", p.AzimuthDeg, tt.azimuth)
			}
			if p.AzimuthDeg < 0 || p.AzimuthDeg >= 360 {
				t.Errorf("azimuth %.2f outside [0, 360)", p.AzimuthDeg)
			}
			if math.Abs(p.ZenithDeg+p.ElevationDeg-90) > 1e-9 {
				t.Errorf("zenith %.4f and elevation %.4f are not complementary", p.ZenithDeg, p.ElevationDeg)
			}
		})
	}
}

func TestPositionMorningAfternoon(t *testing.T) {
	morning := Position(time.Date(2024, 6, 21, 8, 0, 0, 0, time.UTC), 40, 0)
	afternoon := Position(time.Date(2024, 6, 21, 16, 0, 0, 0, time.UTC), 40, 0)

	if morning.AzimuthDeg > 180 {
		t.Errorf("morning sun should be in the east, azimuth %.2f", morning.AzimuthDeg)
	}
	if afternoon.AzimuthDeg < 180 {
		t.Errorf("afternoon sun should be in the west, azimuth %.2f", afternoon.AzimuthDeg)
	}
}

func TestAngleOfIncidence(t *testing.T) {
	tests := []struct {
		name     string
		tilt     float64
		surfAz   float64
		zenith   float64
		azimuth  float64
		expected float64
	}{
		{"horizontal equals zenith", 0, 180, 37.5, 120, 37.5},
		{"south facade, sun due south", 90, 180, 60, 180, 30},
		{"south facade, sun due north", 90, 180, 60, 0, 150},
		{"south facade, sun due east", 90, 180, 90, 90, 90},
		{"tilted toward the sun", 30, 180, 30, 180, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngleOfIncidence(tt.tilt, tt.surfAz, tt.zenith, tt.azimuth)
			if math.Abs(got-tt.expected) > 1e-6 {
				t.Errorf("AngleOfIncidence = %.8f, expected %.8f", got, tt.expected)
			}
		})
	}
}
