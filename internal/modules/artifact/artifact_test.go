package artifact

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deliveryeta/internal/modules/category"
	"deliveryeta/internal/modules/regression"
)

func testArtifact() *Artifact {
	enc := category.FitColumns(map[string][]string{
		category.ColumnMunicipality: {"Calauan", "Bay", "Alaminos"},
		category.ColumnBarangay:     {"Balayhangin", "Dayap", "Masaya"},
		category.ColumnPostalCode:   {"4012", "4033", "4001"},
	})
	return &Artifact{
		Model: &regression.Linear{
			Coef:      []float64{2.5, 0, 0, 0, 0, 0, 0.1, -0.2, 0.5},
			Intercept: 15,
		},
		Encoding: enc,
		Metadata: Metadata{
			ModelType:          regression.KindLinear,
			FeatureColumns:     FeatureColumns,
			Metrics:            regression.Metrics{MAE: 3.1, RMSE: 4.2, R2: 0.71},
			CategoricalColumns: category.Columns,
			TrainedAt:          time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			Samples:            5000,
		},
	}
}

func assertSameArtifact(t *testing.T, want, got *Artifact) {
	t.Helper()
	assert.Equal(t, want.Model, got.Model)
	assert.Equal(t, want.Metadata.ModelType, got.Metadata.ModelType)
	assert.Equal(t, want.Metadata.FeatureColumns, got.Metadata.FeatureColumns)
	assert.Equal(t, want.Metadata.CategoricalColumns, got.Metadata.CategoricalColumns)
	assert.Equal(t, want.Metadata.Metrics, got.Metadata.Metrics)
	assert.Equal(t, want.Metadata.Samples, got.Metadata.Samples)
	assert.True(t, want.Metadata.TrainedAt.Equal(got.Metadata.TrainedAt))
	for _, c := range category.Columns {
		assert.Equal(t, want.Encoding[c].Classes(), got.Encoding[c].Classes(), c)
	}
}

func TestFeatures_Vector(t *testing.T) {
	f := Features{
		DistanceKm: 8.86, Latitude: 14.1486, Longitude: 121.3152,
		MunicipalityCode: 3, BarangayCode: 1, PostalCodeCode: 2,
		TimeOfOrder: 12, DayOfWeek: 0, OrderSize: 1,
	}
	v, err := f.Vector(FeatureColumns)
	require.NoError(t, err)
	assert.Equal(t, []float64{8.86, 14.1486, 121.3152, 3, 1, 2, 12, 0, 1}, v)

	// Order follows the column list, not the struct.
	v, err = f.Vector([]string{FeatureOrderSize, FeatureDistanceKm})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 8.86}, v)

	_, err = f.Vector([]string{FeatureDistanceKm, "weather"})
	assert.ErrorIs(t, err, ErrUnknownFeature)
}

func TestEncodeCategories(t *testing.T) {
	enc := testArtifact().Encoding

	var f Features
	unseen := EncodeCategories(enc, &f, Categories{Municipality: "Calauan", Barangay: "Masaya", PostalCode: "4012"})
	assert.Empty(t, unseen)
	assert.Equal(t, 2, f.MunicipalityCode)
	assert.Equal(t, 2, f.BarangayCode)
	assert.Equal(t, 1, f.PostalCodeCode)

	f = Features{}
	unseen = EncodeCategories(enc, &f, Categories{Municipality: "Manila", Barangay: "Dayap", PostalCode: "9999"})
	assert.Equal(t, []string{category.ColumnMunicipality, category.ColumnPostalCode}, unseen)
	assert.Equal(t, category.FallbackCode, f.MunicipalityCode)
	assert.Equal(t, 1, f.BarangayCode)
	assert.Equal(t, category.FallbackCode, f.PostalCodeCode)
}

func TestArtifact_Validate(t *testing.T) {
	require.NoError(t, testArtifact().Validate())

	a := testArtifact()
	a.Model = nil
	assert.ErrorIs(t, a.Validate(), ErrInvalid)

	a = testArtifact()
	a.Metadata.ModelType = regression.KindForest
	assert.ErrorIs(t, a.Validate(), ErrInvalid)

	a = testArtifact()
	a.Metadata.FeatureColumns = nil
	assert.ErrorIs(t, a.Validate(), ErrInvalid)

	a = testArtifact()
	delete(a.Encoding, category.ColumnBarangay)
	assert.ErrorIs(t, a.Validate(), ErrInvalid)
}

func TestFileStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "models")
	store := NewFileStore(dir)

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	want := testArtifact()
	require.NoError(t, store.Save(ctx, want))
	for _, name := range []string{ModelFile, EncodingFile, MetadataFile} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assertSameArtifact(t, want, got)
}

func TestFileStore_MetadataJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewFileStore(dir).Save(context.Background(), testArtifact()))

	data, err := os.ReadFile(filepath.Join(dir, MetadataFile))
	require.NoError(t, err)
	for _, key := range []string{`"model_type"`, `"feature_columns"`, `"metrics"`, `"r2"`, `"categorical_columns"`} {
		assert.Contains(t, string(data), key)
	}
}

func TestFileStore_MissingPieceIsNotFound(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewFileStore(dir)
	require.NoError(t, store.Save(ctx, testArtifact()))
	require.NoError(t, os.Remove(filepath.Join(dir, EncodingFile)))

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_CorruptModel(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewFileStore(dir)
	require.NoError(t, store.Save(ctx, testArtifact()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ModelFile), []byte("not gob"), 0o644))

	_, err := store.Load(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestPGStore_SaveLoad(t *testing.T) {
	dsn := os.Getenv("ETA_TEST_DSN")
	if dsn == "" {
		t.Skip("ETA_TEST_DSN not set; skipping integration test")
	}
	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	store := NewPGStore(db)
	require.NoError(t, store.EnsureSchema(ctx))

	want := testArtifact()
	require.NoError(t, store.Save(ctx, want))
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assertSameArtifact(t, want, got)
}
