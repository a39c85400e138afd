// README: Regressor contract and candidate model kinds.
package regression

import "errors"

const (
	KindLinear = "linear_regression"
	KindForest = "random_forest"
)

var (
	ErrFeatureCount = errors.New("feature vector length does not match model")
	ErrNoSamples    = errors.New("no training samples")
	ErrShape        = errors.New("feature rows and targets have inconsistent shape")
)

// Regressor is a fitted model. Implementations are read-only after fitting
// and safe for concurrent Predict calls.
type Regressor interface {
	Kind() string
	Predict(x []float64) (float64, error)
}

func checkShape(X [][]float64, y []float64) (int, error) {
	if len(X) == 0 {
		return 0, ErrNoSamples
	}
	if len(X) != len(y) {
		return 0, ErrShape
	}
	p := len(X[0])
	for _, row := range X {
		if len(row) != p {
			return 0, ErrShape
		}
	}
	return p, nil
}
