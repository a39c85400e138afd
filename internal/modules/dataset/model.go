// README: Training observation row and dataset store contract.
package dataset

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("dataset not found")
	ErrEmptyCorpus = errors.New("dataset has no observations")
)

// Observation is one training row. Rows are immutable once written and carry
// no relationship to each other.
type Observation struct {
	DistanceKm          float64
	Latitude            float64
	Longitude           float64
	Municipality        string
	Barangay            string
	PostalCode          string
	TimeOfOrder         int
	DayOfWeek           int
	OrderSize           int
	DeliveryTimeMinutes float64
}

// Columns is the persisted column order of a corpus.
var Columns = []string{
	"distance_km",
	"latitude",
	"longitude",
	"municipality",
	"barangay",
	"postal_code",
	"time_of_order",
	"day_of_week",
	"order_size",
	"delivery_time_minutes",
}

// Store persists an ordered corpus. Write replaces any previous corpus.
type Store interface {
	Write(ctx context.Context, rows []Observation) error
	Read(ctx context.Context) ([]Observation, error)
}
