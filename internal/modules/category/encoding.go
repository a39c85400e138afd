// README: Per-column category encoding shared by training and inference; persisted as JSON class lists.
package category

import (
	"encoding/json"
	"fmt"
	"sort"
)

const (
	ColumnMunicipality = "municipality"
	ColumnBarangay     = "barangay"
	ColumnPostalCode   = "postal_code"
)

// Columns lists the categorical columns in persisted order.
var Columns = []string{ColumnMunicipality, ColumnBarangay, ColumnPostalCode}

// Encoding maps a column name to its fitted Column.
type Encoding map[string]*Column

// FitColumns fits one Column per key of values.
func FitColumns(values map[string][]string) Encoding {
	enc := make(Encoding, len(values))
	for name, vs := range values {
		enc[name] = Fit(vs)
	}
	return enc
}

// Transform encodes v for column. An unknown column or unseen value yields
// FallbackCode with ok=false.
func (e Encoding) Transform(column, v string) (int, bool) {
	return e[column].Encode(v)
}

func (e Encoding) Names() []string {
	names := make([]string, 0, len(e))
	for n := range e {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (e Encoding) MarshalJSON() ([]byte, error) {
	out := make(map[string][]string, len(e))
	for name, col := range e {
		out[name] = col.Classes()
	}
	return json.Marshal(out)
}

func (e *Encoding) UnmarshalJSON(data []byte) error {
	var in map[string][]string
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	enc := make(Encoding, len(in))
	for name, classes := range in {
		col, err := FromClasses(classes)
		if err != nil {
			return fmt.Errorf("column %q: %w", name, err)
		}
		enc[name] = col
	}
	*e = enc
	return nil
}
