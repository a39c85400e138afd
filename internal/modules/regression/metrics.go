package regression

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

type Metrics struct {
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`
	R2   float64 `json:"r2"`
}

// Score computes MAE, RMSE and the coefficient of determination.
func Score(actual, predicted []float64) Metrics {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return Metrics{MAE: math.NaN(), RMSE: math.NaN(), R2: math.NaN()}
	}
	var absSum, sqSum float64
	for i := range actual {
		d := actual[i] - predicted[i]
		absSum += math.Abs(d)
		sqSum += d * d
	}
	n := float64(len(actual))
	return Metrics{
		MAE:  absSum / n,
		RMSE: math.Sqrt(sqSum / n),
		R2:   stat.RSquaredFrom(predicted, actual, nil),
	}
}

// Evaluate predicts every row of X and scores the result against y.
func Evaluate(m Regressor, X [][]float64, y []float64) (Metrics, error) {
	if _, err := checkShape(X, y); err != nil {
		return Metrics{}, err
	}
	pred := make([]float64, len(X))
	for i, row := range X {
		v, err := m.Predict(row)
		if err != nil {
			return Metrics{}, err
		}
		pred[i] = v
	}
	return Score(y, pred), nil
}
