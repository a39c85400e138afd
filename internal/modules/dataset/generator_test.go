package dataset

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deliveryeta/internal/config"
	"deliveryeta/internal/modules/location"
	"deliveryeta/internal/types"
)

func newTestGenerator(t *testing.T, seed int64) *Generator {
	t.Helper()
	cat, err := location.DefaultCatalog()
	require.NoError(t, err)
	return NewGenerator(cat, config.DefaultTariff(), seed)
}

func encode(t *testing.T, rows []Observation) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))
	return buf.Bytes()
}

func TestGenerate_Deterministic(t *testing.T) {
	a := encode(t, newTestGenerator(t, DefaultSeed).Generate(500))
	b := encode(t, newTestGenerator(t, DefaultSeed).Generate(500))
	assert.True(t, bytes.Equal(a, b), "same seed must produce byte-identical corpora")

	c := encode(t, newTestGenerator(t, 7).Generate(500))
	assert.False(t, bytes.Equal(a, c), "different seeds should diverge")
}

func TestGenerate_Count(t *testing.T) {
	g := newTestGenerator(t, DefaultSeed)
	assert.Len(t, g.Generate(123), 123)
	assert.Empty(t, g.Generate(0))
	assert.Empty(t, g.Generate(-1))
}

func TestGenerate_Bounds(t *testing.T) {
	cat, err := location.DefaultCatalog()
	require.NoError(t, err)
	tariff := config.DefaultTariff()
	rows := NewGenerator(cat, tariff, DefaultSeed).Generate(2000)

	for i, o := range rows {
		require.GreaterOrEqual(t, o.DeliveryTimeMinutes, 20.0, "row %d", i)
		require.GreaterOrEqual(t, o.OrderSize, 1, "row %d", i)
		require.LessOrEqual(t, o.OrderSize, 50, "row %d", i)
		require.GreaterOrEqual(t, o.TimeOfOrder, 0, "row %d", i)
		require.LessOrEqual(t, o.TimeOfOrder, 23, "row %d", i)
		require.GreaterOrEqual(t, o.DayOfWeek, 0, "row %d", i)
		require.LessOrEqual(t, o.DayOfWeek, 6, "row %d", i)

		muni, ok := cat.Lookup(o.Municipality)
		require.True(t, ok, "row %d: unknown municipality %q", i, o.Municipality)
		assert.Equal(t, muni.PostalCode, o.PostalCode)
		assert.Contains(t, muni.Barangays, o.Barangay)
		assert.LessOrEqual(t, math.Abs(o.Latitude-muni.Lat), 0.05+1e-6)
		assert.LessOrEqual(t, math.Abs(o.Longitude-muni.Lng), 0.05+1e-6)

		want := location.Distance(tariff.Hub, types.Point{Lat: o.Latitude, Lng: o.Longitude})
		assert.InDelta(t, want, o.DistanceKm, 0.01, "row %d", i)
	}
}

func TestGenerate_CoversCatalog(t *testing.T) {
	rows := newTestGenerator(t, DefaultSeed).Generate(DefaultSamples)
	seen := map[string]bool{}
	hours := map[int]bool{}
	for _, o := range rows {
		seen[o.Municipality] = true
		hours[o.TimeOfOrder] = true
	}
	assert.Len(t, seen, 20)
	assert.Len(t, hours, 24)
}

func TestDeliveryTime_Envelope(t *testing.T) {
	g := newTestGenerator(t, DefaultSeed)
	tariff := config.DefaultTariff()

	cases := []struct {
		name    string
		hour    int
		day     int
		lo, hi  float64
		weekend bool
	}{
		{"weekday rush", 8, 1, 10, 20, false},
		{"weekday normal", 12, 2, 5, 10, false},
		{"weekday night", 2, 3, 0, 5, false},
		{"weekend rush", 18, 6, 10, 20, true},
	}
	const distance, size = 20.0, 10
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lo, hi := tc.lo, tc.hi
			if tc.weekend {
				lo, hi = lo*0.7, hi*0.7
			}
			base := tariff.BaseMinutes + distance*tariff.MinutesPerKm + size*tariff.MinutesPerItem
			for i := 0; i < 200; i++ {
				got := g.deliveryTime(distance, size, tc.hour, tc.day)
				assert.GreaterOrEqual(t, got, types.Round((base+lo)*0.9, 2)-0.01)
				assert.LessOrEqual(t, got, types.Round((base+hi)*1.1, 2)+0.01)
			}
		})
	}
}

func TestDeliveryTime_Floor(t *testing.T) {
	cat, err := location.DefaultCatalog()
	require.NoError(t, err)
	tariff := config.DefaultTariff()
	tariff.BaseMinutes = 5
	g := NewGenerator(cat, tariff, DefaultSeed)

	// (5 + 0 + 5*0.7 + 0.5) * 1.1 stays below the 20 minute floor.
	for i := 0; i < 100; i++ {
		assert.Equal(t, 20.0, g.deliveryTime(0, 1, 3, 6))
	}
}

func TestTrafficRange(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		lo, hi := trafficRange(hour)
		switch {
		case hour >= 7 && hour <= 9, hour >= 17 && hour <= 19:
			assert.Equal(t, [2]float64{10, 20}, [2]float64{lo, hi}, "hour %d", hour)
		case hour >= 10 && hour <= 16:
			assert.Equal(t, [2]float64{5, 10}, [2]float64{lo, hi}, "hour %d", hour)
		default:
			assert.Equal(t, [2]float64{0, 5}, [2]float64{lo, hi}, "hour %d", hour)
		}
	}
}
