// README: Synthetic observation generator; fabricates delivery times from distance, order size, hour and weekday.
package dataset

import (
	"math/rand"

	"deliveryeta/internal/config"
	"deliveryeta/internal/modules/location"
	"deliveryeta/internal/types"
)

const (
	DefaultSamples = 5000
	DefaultSeed    = 42

	coordJitterDeg = 0.05
	maxOrderSize   = 50
	weekendFactor  = 0.7
	timeJitter     = 0.1
)

// Generator is not safe for concurrent use; it owns a single PRNG so that a
// seed fully determines the corpus.
type Generator struct {
	catalog *location.Catalog
	tariff  config.Tariff
	rng     *rand.Rand
}

func NewGenerator(catalog *location.Catalog, tariff config.Tariff, seed int64) *Generator {
	return &Generator{
		catalog: catalog,
		tariff:  tariff,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func (g *Generator) Generate(n int) []Observation {
	if n <= 0 {
		return nil
	}
	rows := make([]Observation, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, g.next())
	}
	return rows
}

func (g *Generator) next() Observation {
	muni := g.catalog.Municipalities[g.rng.Intn(len(g.catalog.Municipalities))]

	pos := types.Point{
		Lat: muni.Lat + g.uniform(-coordJitterDeg, coordJitterDeg),
		Lng: muni.Lng + g.uniform(-coordJitterDeg, coordJitterDeg),
	}
	barangay := muni.Barangays[g.rng.Intn(len(muni.Barangays))]

	distanceKm := location.Distance(g.tariff.Hub, pos)
	orderSize := g.intRange(1, maxOrderSize)
	hour := g.intRange(0, 23)
	day := g.intRange(0, 6)

	return Observation{
		DistanceKm:          types.Round(distanceKm, 2),
		Latitude:            types.Round(pos.Lat, 6),
		Longitude:           types.Round(pos.Lng, 6),
		Municipality:        muni.Name,
		Barangay:            barangay,
		PostalCode:          muni.PostalCode,
		TimeOfOrder:         hour,
		DayOfWeek:           day,
		OrderSize:           orderSize,
		DeliveryTimeMinutes: g.deliveryTime(distanceKm, orderSize, hour, day),
	}
}

// deliveryTime applies the generative formula: base + distance + traffic + size,
// weekend-dampened traffic, ±10% jitter on the sum, floored at the tariff minimum.
func (g *Generator) deliveryTime(distanceKm float64, orderSize, hour, day int) float64 {
	lo, hi := trafficRange(hour)
	traffic := g.uniform(lo, hi)
	if day >= 5 {
		traffic *= weekendFactor
	}

	minutes := g.tariff.BaseMinutes +
		distanceKm*g.tariff.MinutesPerKm +
		traffic +
		float64(orderSize)*g.tariff.MinutesPerItem
	minutes *= 1 + g.uniform(-timeJitter, timeJitter)

	return max(g.tariff.MinMinutes, types.Round(minutes, 2))
}

// trafficRange returns the traffic delay bounds in minutes for an hour of day.
func trafficRange(hour int) (float64, float64) {
	switch {
	case (hour >= 7 && hour <= 9) || (hour >= 17 && hour <= 19):
		return 10, 20
	case hour >= 10 && hour <= 16:
		return 5, 10
	default:
		return 0, 5
	}
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*g.rng.Float64()
}

// intRange draws uniformly from [lo, hi].
func (g *Generator) intRange(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}
