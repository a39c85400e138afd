// README: Trained model artifact (regressor, category encoding, metadata) and the feature column contract.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"deliveryeta/internal/modules/category"
	"deliveryeta/internal/modules/regression"
)

var (
	ErrNotFound       = errors.New("model artifact not found")
	ErrUnknownFeature = errors.New("unknown feature column")
	ErrInvalid        = errors.New("model artifact is inconsistent")
)

const (
	FeatureDistanceKm   = "distance_km"
	FeatureLatitude     = "latitude"
	FeatureLongitude    = "longitude"
	FeatureMunicipality = "municipality_encoded"
	FeatureBarangay     = "barangay_encoded"
	FeaturePostalCode   = "postal_code_encoded"
	FeatureTimeOfOrder  = "time_of_order"
	FeatureDayOfWeek    = "day_of_week"
	FeatureOrderSize    = "order_size"
)

// FeatureColumns is the column order fed to fit. It is persisted with every
// model and inference assembles vectors from the persisted copy, not this one.
var FeatureColumns = []string{
	FeatureDistanceKm,
	FeatureLatitude,
	FeatureLongitude,
	FeatureMunicipality,
	FeatureBarangay,
	FeaturePostalCode,
	FeatureTimeOfOrder,
	FeatureDayOfWeek,
	FeatureOrderSize,
}

type Metadata struct {
	ModelType          string             `json:"model_type"`
	FeatureColumns     []string           `json:"feature_columns"`
	Metrics            regression.Metrics `json:"metrics"`
	CategoricalColumns []string           `json:"categorical_columns"`
	TrainedAt          time.Time          `json:"trained_at"`
	Samples            int                `json:"samples"`
}

type Artifact struct {
	Model    regression.Regressor
	Encoding category.Encoding
	Metadata Metadata
}

// Version identifies one training run.
func (a *Artifact) Version() string {
	return fmt.Sprintf("%s-%d", a.Metadata.ModelType, a.Metadata.TrainedAt.UnixNano())
}

func (a *Artifact) Validate() error {
	if a.Model == nil {
		return fmt.Errorf("%w: no model", ErrInvalid)
	}
	if a.Model.Kind() != a.Metadata.ModelType {
		return fmt.Errorf("%w: model is %q, metadata says %q", ErrInvalid, a.Model.Kind(), a.Metadata.ModelType)
	}
	if len(a.Metadata.FeatureColumns) == 0 {
		return fmt.Errorf("%w: no feature columns", ErrInvalid)
	}
	for _, c := range a.Metadata.CategoricalColumns {
		if _, ok := a.Encoding[c]; !ok {
			return fmt.Errorf("%w: no encoding for column %q", ErrInvalid, c)
		}
	}
	return nil
}

// Features is one request or observation in model space.
type Features struct {
	DistanceKm       float64
	Latitude         float64
	Longitude        float64
	MunicipalityCode int
	BarangayCode     int
	PostalCodeCode   int
	TimeOfOrder      int
	DayOfWeek        int
	OrderSize        int
}

// Categories carries the raw categorical values to encode.
type Categories struct {
	Municipality string
	Barangay     string
	PostalCode   string
}

// EncodeCategories fills the code fields of f and returns the columns whose
// value was not in the fitted vocabulary.
func EncodeCategories(enc category.Encoding, f *Features, c Categories) []string {
	var unseen []string
	encode := func(column, value string, dst *int) {
		code, ok := enc.Transform(column, value)
		*dst = code
		if !ok {
			unseen = append(unseen, column)
		}
	}
	encode(category.ColumnMunicipality, c.Municipality, &f.MunicipalityCode)
	encode(category.ColumnBarangay, c.Barangay, &f.BarangayCode)
	encode(category.ColumnPostalCode, c.PostalCode, &f.PostalCodeCode)
	return unseen
}

// Vector lays f out in the given column order.
func (f Features) Vector(columns []string) ([]float64, error) {
	out := make([]float64, len(columns))
	for i, c := range columns {
		switch c {
		case FeatureDistanceKm:
			out[i] = f.DistanceKm
		case FeatureLatitude:
			out[i] = f.Latitude
		case FeatureLongitude:
			out[i] = f.Longitude
		case FeatureMunicipality:
			out[i] = float64(f.MunicipalityCode)
		case FeatureBarangay:
			out[i] = float64(f.BarangayCode)
		case FeaturePostalCode:
			out[i] = float64(f.PostalCodeCode)
		case FeatureTimeOfOrder:
			out[i] = float64(f.TimeOfOrder)
		case FeatureDayOfWeek:
			out[i] = float64(f.DayOfWeek)
		case FeatureOrderSize:
			out[i] = float64(f.OrderSize)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, c)
		}
	}
	return out, nil
}

// Store persists the current artifact. Save replaces the previous one wholesale.
type Store interface {
	Save(ctx context.Context, a *Artifact) error
	Load(ctx context.Context) (*Artifact, error)
}
