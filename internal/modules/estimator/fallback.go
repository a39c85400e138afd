package estimator

import (
	"math"

	"deliveryeta/internal/config"
	"deliveryeta/internal/types"
)

// Fallback is the deterministic formula used whenever the model path fails.
// It leaves out the traffic and jitter terms the training data carries.
func Fallback(t config.Tariff, distanceKm float64, orderSize int) float64 {
	minutes := t.BaseMinutes + distanceKm*t.MinutesPerKm + float64(orderSize)*t.MinutesPerItem
	return types.Round(math.Max(t.MinMinutes, minutes), 2)
}
