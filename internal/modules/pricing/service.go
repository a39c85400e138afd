// README: Pricing service turns an estimated delivery time into a shipping fee.
package pricing

import (
	"deliveryeta/internal/config"
	"deliveryeta/internal/types"
)

type Service struct {
	tariff config.Tariff
}

func NewService(tariff config.Tariff) *Service {
	return &Service{tariff: tariff}
}

// Fee is BaseFee + minutes*FeePerMinute, rounded to cents.
func (s *Service) Fee(minutes float64) types.Money {
	return s.Quote(minutes).Total
}

func (s *Service) Quote(minutes float64) Result {
	timeCharge := minutes * s.tariff.FeePerMinute
	return Result{
		Total: types.Money{
			Amount:   types.Round(s.tariff.BaseFee+timeCharge, 2),
			Currency: s.tariff.Currency,
		},
		Breakdown: map[string]float64{
			ComponentBase: s.tariff.BaseFee,
			ComponentTime: types.Round(timeCharge, 2),
		},
	}
}
