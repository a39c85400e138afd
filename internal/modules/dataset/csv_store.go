// README: CSV dataset store; one header row with the persisted column names.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

type CSVStore struct {
	Path string
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{Path: path}
}

func (s *CSVStore) Write(_ context.Context, rows []Observation) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("write dataset: create dir: %w", err)
		}
	}
	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	if err := WriteCSV(f, rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("write dataset %q: %w", s.Path, err)
	}
	return f.Close()
}

func (s *CSVStore) Read(_ context.Context) ([]Observation, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read dataset %q: %w", s.Path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	defer f.Close()

	rows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read dataset %q: %w", s.Path, err)
	}
	return rows, nil
}

// WriteCSV encodes rows with a header. Output is byte-stable for equal input.
func WriteCSV(w io.Writer, rows []Observation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	rec := make([]string, len(Columns))
	for _, o := range rows {
		rec[0] = formatFloat(o.DistanceKm)
		rec[1] = formatFloat(o.Latitude)
		rec[2] = formatFloat(o.Longitude)
		rec[3] = o.Municipality
		rec[4] = o.Barangay
		rec[5] = o.PostalCode
		rec[6] = strconv.Itoa(o.TimeOfOrder)
		rec[7] = strconv.Itoa(o.DayOfWeek)
		rec[8] = strconv.Itoa(o.OrderSize)
		rec[9] = formatFloat(o.DeliveryTimeMinutes)
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV decodes a corpus. Columns are located by header name so extra or
// reordered columns are tolerated.
func ReadCSV(r io.Reader) ([]Observation, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyCorpus
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, name := range Columns {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var rows []Observation
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		o, err := parseRecord(rec, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, o)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyCorpus
	}
	return rows, nil
}

func parseRecord(rec []string, idx map[string]int) (Observation, error) {
	var (
		o   Observation
		err error
	)
	floats := []struct {
		col string
		dst *float64
	}{
		{"distance_km", &o.DistanceKm},
		{"latitude", &o.Latitude},
		{"longitude", &o.Longitude},
		{"delivery_time_minutes", &o.DeliveryTimeMinutes},
	}
	for _, f := range floats {
		if *f.dst, err = strconv.ParseFloat(rec[idx[f.col]], 64); err != nil {
			return o, fmt.Errorf("%s: %w", f.col, err)
		}
	}
	ints := []struct {
		col string
		dst *int
	}{
		{"time_of_order", &o.TimeOfOrder},
		{"day_of_week", &o.DayOfWeek},
		{"order_size", &o.OrderSize},
	}
	for _, f := range ints {
		if *f.dst, err = strconv.Atoi(rec[idx[f.col]]); err != nil {
			return o, fmt.Errorf("%s: %w", f.col, err)
		}
	}
	o.Municipality = rec[idx["municipality"]]
	o.Barangay = rec[idx["barangay"]]
	o.PostalCode = rec[idx["postal_code"]]
	return o, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
