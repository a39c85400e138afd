// README: Estimate request/result types and the collaborators the engine depends on.
package estimator

import (
	"context"
	"errors"

	"deliveryeta/internal/types"
)

var (
	ErrInvalidRequest   = errors.New("invalid estimate request")
	ErrModelUnavailable = errors.New("model unavailable")
)

const (
	SourceModel    = "model"
	SourceFallback = "fallback"
)

const (
	DefaultTimeOfOrder = 12
	DefaultDayOfWeek   = 0
	DefaultOrderSize   = 1
)

// Request is the public estimate input. Pointer fields distinguish "absent"
// from zero: coordinates are required, the integers fall back to defaults.
type Request struct {
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Municipality string   `json:"municipality"`
	Barangay     string   `json:"barangay"`
	PostalCode   string   `json:"postal_code"`
	TimeOfOrder  *int     `json:"time_of_order"`
	DayOfWeek    *int     `json:"day_of_week"`
	OrderSize    *int     `json:"order_size"`
}

// Query is a validated Request with defaults applied.
type Query struct {
	Point        types.Point `json:"point"`
	Municipality string      `json:"municipality"`
	Barangay     string      `json:"barangay"`
	PostalCode   string      `json:"postal_code"`
	TimeOfOrder  int         `json:"time_of_order"`
	DayOfWeek    int         `json:"day_of_week"`
	OrderSize    int         `json:"order_size"`
}

type Estimate struct {
	DistanceKm float64     `json:"distance_km"`
	Minutes    float64     `json:"delivery_time_minutes"`
	Hours      float64     `json:"delivery_time_hours"`
	Fee        types.Money `json:"shipping_fee"`
	Source     string      `json:"source"`
	ModelType  string      `json:"model_type,omitempty"`
	// Unseen lists categorical columns whose value fell back to code 0.
	Unseen []string `json:"unseen,omitempty"`
}

type Pricer interface {
	Fee(minutes float64) types.Money
}

// Recorder receives every computed estimate. Errors are logged, never returned to callers.
type Recorder interface {
	Record(ctx context.Context, q Query, e Estimate) error
}

// Cache stores model-path estimates keyed by model version and query.
type Cache interface {
	Get(ctx context.Context, key string) (Estimate, bool, error)
	Set(ctx context.Context, key string, e Estimate) error
}
