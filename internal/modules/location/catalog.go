// README: Static catalog of served municipalities and barangays (embedded YAML, optionally overridden from disk).
package location

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

var ErrEmptyCatalog = errors.New("catalog has no municipalities")

// Catalog is read-only after load. Municipality order is the file order and
// drives generator sampling, so it must not be re-sorted.
type Catalog struct {
	Municipalities []Municipality `yaml:"municipalities"`
}

// DefaultCatalog returns the embedded Laguna catalog.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}

// LoadCatalog reads a catalog file; an empty path yields the default catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %q: %w", path, err)
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c.Municipalities) == 0 {
		return nil, ErrEmptyCatalog
	}
	for i, m := range c.Municipalities {
		if m.Name == "" || m.PostalCode == "" {
			return nil, fmt.Errorf("parse catalog: municipality #%d missing name or postal code", i+1)
		}
		if len(m.Barangays) == 0 {
			return nil, fmt.Errorf("parse catalog: municipality %q has no barangays", m.Name)
		}
	}
	return &c, nil
}

// Lookup finds a municipality by exact name.
func (c *Catalog) Lookup(name string) (Municipality, bool) {
	for _, m := range c.Municipalities {
		if m.Name == name {
			return m, true
		}
	}
	return Municipality{}, false
}
