// README: Shipping fee result with its per-component breakdown.
package pricing

import "deliveryeta/internal/types"

const (
	ComponentBase = "base"
	ComponentTime = "time"
)

type Result struct {
	Total     types.Money
	Breakdown map[string]float64
}
