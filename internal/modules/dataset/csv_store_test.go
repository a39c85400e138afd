package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCSVStore_WriteRead(t *testing.T) {
	ctx := context.Background()
	store := NewCSVStore(filepath.Join(t.TempDir(), "data", "corpus.csv"))
	rows := newTestGenerator(t, DefaultSeed).Generate(50)

	require.NoError(t, store.Write(ctx, rows))
	got, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	raw, err := os.ReadFile(store.Path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), strings.Join(Columns, ",")+"\n"))
}

func TestCSVStore_Missing(t *testing.T) {
	_, err := NewCSVStore(filepath.Join(t.TempDir(), "nope.csv")).Read(context.Background())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestReadCSV_Errors(t *testing.T) {
	header := strings.Join(Columns, ",") + "\n"
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"empty file", "", ErrEmptyCorpus},
		{"header only", header, ErrEmptyCorpus},
		{"missing column", "distance_km,latitude\n1,2\n", nil},
		{"bad number", header + "x,14,121,Bay,B1,4033,1,1,1,30\n", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tc.doc))
			require.Error(t, err)
			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestReadCSV_ReorderedColumns(t *testing.T) {
	doc := "municipality,barangay,postal_code,distance_km,latitude,longitude,time_of_order,day_of_week,order_size,delivery_time_minutes,extra\n" +
		"Bay,Barangay 1,4033,15.2,14.18,121.28,8,5,12,61.5,ignored\n"
	rows, err := ReadCSV(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Observation{
		DistanceKm:          15.2,
		Latitude:            14.18,
		Longitude:           121.28,
		Municipality:        "Bay",
		Barangay:            "Barangay 1",
		PostalCode:          "4033",
		TimeOfOrder:         8,
		DayOfWeek:           5,
		OrderSize:           12,
		DeliveryTimeMinutes: 61.5,
	}, rows[0])
}

func TestService_Generate(t *testing.T) {
	ctx := context.Background()
	store := NewCSVStore(filepath.Join(t.TempDir(), "corpus.csv"))
	svc := NewService(newTestGenerator(t, DefaultSeed), store, zap.NewNop())

	sum, err := svc.Generate(ctx, 200)
	require.NoError(t, err)
	assert.Equal(t, 200, sum.Samples)
	assert.GreaterOrEqual(t, sum.MinMinutes, 20.0)
	assert.GreaterOrEqual(t, sum.MaxMinutes, sum.MeanMinutes)

	rows, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 200)

	_, err = svc.Generate(ctx, 0)
	assert.Error(t, err)
}
