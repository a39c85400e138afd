// README: Delivery location (point plus administrative categories) and catalog entries.
package location

import "deliveryeta/internal/types"

// Location is a delivery point. Municipality, Barangay and PostalCode come from
// the catalog when generated but are free-form on live requests.
type Location struct {
	Position     types.Point
	Municipality string
	Barangay     string
	PostalCode   string
}

type Municipality struct {
	Name       string   `yaml:"name"`
	Lat        float64  `yaml:"lat"`
	Lng        float64  `yaml:"lng"`
	PostalCode string   `yaml:"postal_code"`
	Barangays  []string `yaml:"barangays"`
}

func (m Municipality) Position() types.Point {
	return types.Point{Lat: m.Lat, Lng: m.Lng}
}
