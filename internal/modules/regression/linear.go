package regression

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Linear is an ordinary least squares model with intercept.
type Linear struct {
	Coef      []float64
	Intercept float64
}

func FitLinear(X [][]float64, y []float64) (*Linear, error) {
	p, err := checkShape(X, y)
	if err != nil {
		return nil, err
	}
	n := len(X)
	if n <= p {
		return nil, fmt.Errorf("fit linear: need more than %d samples, got %d", p, n)
	}

	data := make([]float64, 0, n*(p+1))
	for _, row := range X {
		data = append(data, 1)
		data = append(data, row...)
	}
	a := mat.NewDense(n, p+1, data)
	b := mat.NewVecDense(n, slices.Clone(y))

	var beta mat.VecDense
	if err := beta.SolveVec(a, b); err != nil {
		// An ill-conditioned design still yields a least squares solution.
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, fmt.Errorf("fit linear: %w", err)
		}
	}

	m := &Linear{Coef: make([]float64, p), Intercept: beta.AtVec(0)}
	for j := range m.Coef {
		m.Coef[j] = beta.AtVec(j + 1)
	}
	if !finite(m.Intercept) || !allFinite(m.Coef) {
		return nil, errors.New("fit linear: non-finite coefficients")
	}
	return m, nil
}

func (m *Linear) Kind() string { return KindLinear }

func (m *Linear) Predict(x []float64) (float64, error) {
	if len(x) != len(m.Coef) {
		return 0, ErrFeatureCount
	}
	v := m.Intercept
	for j, c := range m.Coef {
		v += c * x[j]
	}
	return v, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func allFinite(vs []float64) bool {
	for _, v := range vs {
		if !finite(v) {
			return false
		}
	}
	return true
}
