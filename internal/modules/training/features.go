package training

import (
	"fmt"
	"math"
	"math/rand"

	"deliveryeta/internal/modules/artifact"
	"deliveryeta/internal/modules/category"
	"deliveryeta/internal/modules/dataset"
)

// FitEncoding fits one column per categorical field of the corpus.
func FitEncoding(rows []dataset.Observation) category.Encoding {
	values := map[string][]string{}
	for _, o := range rows {
		values[category.ColumnMunicipality] = append(values[category.ColumnMunicipality], o.Municipality)
		values[category.ColumnBarangay] = append(values[category.ColumnBarangay], o.Barangay)
		values[category.ColumnPostalCode] = append(values[category.ColumnPostalCode], o.PostalCode)
	}
	return category.FitColumns(values)
}

// Prepare builds the design matrix in the given column order and the target vector.
func Prepare(rows []dataset.Observation, enc category.Encoding, columns []string) ([][]float64, []float64, error) {
	X := make([][]float64, len(rows))
	y := make([]float64, len(rows))
	for i, o := range rows {
		f := artifact.Features{
			DistanceKm:  o.DistanceKm,
			Latitude:    o.Latitude,
			Longitude:   o.Longitude,
			TimeOfOrder: o.TimeOfOrder,
			DayOfWeek:   o.DayOfWeek,
			OrderSize:   o.OrderSize,
		}
		artifact.EncodeCategories(enc, &f, artifact.Categories{
			Municipality: o.Municipality,
			Barangay:     o.Barangay,
			PostalCode:   o.PostalCode,
		})
		v, err := f.Vector(columns)
		if err != nil {
			return nil, nil, fmt.Errorf("prepare row %d: %w", i, err)
		}
		X[i] = v
		y[i] = o.DeliveryTimeMinutes
	}
	return X, y, nil
}

// Split shuffles row indices with seed and holds out ceil(n*testFraction) of
// them, keeping at least one row on each side when n >= 2.
func Split(n int, testFraction float64, seed int64) (train, test []int) {
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	nTest := int(math.Ceil(float64(n) * testFraction))
	if n >= 2 {
		nTest = min(max(nTest, 1), n-1)
	} else {
		nTest = 0
	}
	return perm[nTest:], perm[:nTest]
}

func subset(X [][]float64, y []float64, idx []int) ([][]float64, []float64) {
	xs := make([][]float64, len(idx))
	ys := make([]float64, len(idx))
	for i, j := range idx {
		xs[i] = X[j]
		ys[i] = y[j]
	}
	return xs, ys
}
