package estimator

import (
	"fmt"

	"deliveryeta/internal/types"
)

// Normalize validates r and applies defaults.
func (r Request) Normalize() (Query, error) {
	if r.Latitude == nil || r.Longitude == nil {
		return Query{}, fmt.Errorf("%w: latitude and longitude are required", ErrInvalidRequest)
	}
	p := types.Point{Lat: *r.Latitude, Lng: *r.Longitude}
	if !p.Valid() {
		return Query{}, fmt.Errorf("%w: coordinates out of range (%v, %v)", ErrInvalidRequest, p.Lat, p.Lng)
	}

	q := Query{
		Point:        p,
		Municipality: r.Municipality,
		Barangay:     r.Barangay,
		PostalCode:   r.PostalCode,
		TimeOfOrder:  intOr(r.TimeOfOrder, DefaultTimeOfOrder),
		DayOfWeek:    intOr(r.DayOfWeek, DefaultDayOfWeek),
		OrderSize:    intOr(r.OrderSize, DefaultOrderSize),
	}
	switch {
	case q.TimeOfOrder < 0 || q.TimeOfOrder > 23:
		return Query{}, fmt.Errorf("%w: time_of_order %d outside [0,23]", ErrInvalidRequest, q.TimeOfOrder)
	case q.DayOfWeek < 0 || q.DayOfWeek > 6:
		return Query{}, fmt.Errorf("%w: day_of_week %d outside [0,6]", ErrInvalidRequest, q.DayOfWeek)
	case q.OrderSize < 1:
		return Query{}, fmt.Errorf("%w: order_size %d must be at least 1", ErrInvalidRequest, q.OrderSize)
	}
	return q, nil
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
