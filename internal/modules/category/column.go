// README: Label encoding for one categorical column (sorted classes, code = index).
package category

import (
	"fmt"
	"slices"
	"sort"
)

// FallbackCode is the code substituted for values absent at fit time. It is
// the code of the first (smallest) class.
const FallbackCode = 0

// Column is immutable after Fit. Classes are sorted byte-wise and a value's
// code is its index, so the mapping is reproducible from the class list alone.
type Column struct {
	classes []string
	codes   map[string]int
}

// Fit builds a column from observed values. Duplicates and order are ignored.
func Fit(values []string) *Column {
	seen := make(map[string]struct{}, len(values))
	classes := make([]string, 0)
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		classes = append(classes, v)
	}
	sort.Strings(classes)
	return newColumn(classes)
}

// FromClasses restores a persisted column. Classes must be sorted and unique.
func FromClasses(classes []string) (*Column, error) {
	if !slices.IsSorted(classes) {
		return nil, fmt.Errorf("classes are not sorted")
	}
	for i := 1; i < len(classes); i++ {
		if classes[i] == classes[i-1] {
			return nil, fmt.Errorf("duplicate class %q", classes[i])
		}
	}
	return newColumn(slices.Clone(classes)), nil
}

func newColumn(classes []string) *Column {
	codes := make(map[string]int, len(classes))
	for i, c := range classes {
		codes[c] = i
	}
	return &Column{classes: classes, codes: codes}
}

// Encode returns the code for v. Values not seen at fit time get FallbackCode
// and ok=false; this never fails.
func (c *Column) Encode(v string) (code int, ok bool) {
	if c == nil {
		return FallbackCode, false
	}
	code, ok = c.codes[v]
	if !ok {
		return FallbackCode, false
	}
	return code, true
}

func (c *Column) Decode(code int) (string, error) {
	if c == nil || code < 0 || code >= len(c.classes) {
		return "", fmt.Errorf("code %d out of range", code)
	}
	return c.classes[code], nil
}

// FallbackValue is the class that unseen values are treated as.
func (c *Column) FallbackValue() string {
	if c == nil || len(c.classes) == 0 {
		return ""
	}
	return c.classes[FallbackCode]
}

func (c *Column) Classes() []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.classes)
}

func (c *Column) Len() int {
	if c == nil {
		return 0
	}
	return len(c.classes)
}
