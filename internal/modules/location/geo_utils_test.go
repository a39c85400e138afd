package location

import (
	"math"
	"testing"

	"deliveryeta/internal/types"
)

var hub = types.Point{Lat: 14.0703, Lng: 121.3253}

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lng1      float64
		lat2      float64
		lng2      float64
		wantKm    float64
		tolerance float64
	}{
		{
			name: "same point",
			lat1: 14.0703, lng1: 121.3253,
			lat2: 14.0703, lng2: 121.3253,
			wantKm:    0,
			tolerance: 0,
		},
		{
			name: "San Pablo hub to Calauan",
			lat1: 14.0703, lng1: 121.3253,
			lat2: 14.1494, lng2: 121.3156,
			wantKm:    8.858,
			tolerance: 0.0005,
		},
		{
			name: "San Pablo hub to Biñan",
			lat1: 14.0703, lng1: 121.3253,
			lat2: 14.3333, lng2: 121.0833,
			wantKm:    39.189,
			tolerance: 0.0005,
		},
		{
			name: "New York to Los Angeles (~3944km)",
			lat1: 40.7128, lng1: -74.0060,
			lat2: 34.0522, lng2: -118.2437,
			wantKm:    3944,
			tolerance: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("HaversineKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestHaversineKm_Symmetry(t *testing.T) {
	d1 := HaversineKm(14.0, 121.0, 14.4, 121.5)
	d2 := HaversineKm(14.4, 121.5, 14.0, 121.0)
	if d1 != d2 {
		t.Errorf("haversine is not symmetric: %f vs %f", d1, d2)
	}
}

func TestDistance_HubToHub(t *testing.T) {
	if d := Distance(hub, hub); d != 0 {
		t.Errorf("Distance(hub, hub) = %f, want 0", d)
	}
}
