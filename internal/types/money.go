// README: Common money value object used across modules.
package types

type Money struct {
	Amount   float64
	Currency string
}
