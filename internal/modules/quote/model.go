// README: Quote aggregate; one persisted estimate.
package quote

import (
	"errors"
	"time"

	"deliveryeta/internal/types"
)

var (
	ErrNotFound   = errors.New("quote not found")
	ErrBadRequest = errors.New("bad request")
)

type Quote struct {
	ID           types.ID
	Destination  types.Point
	Municipality string
	Barangay     string
	PostalCode   string
	TimeOfOrder  int
	DayOfWeek    int
	OrderSize    int
	DistanceKm   float64
	Minutes      float64
	Hours        float64
	Fee          types.Money
	Source       string
	ModelType    string
	CreatedAt    time.Time
}
