// README: String identifier used for persisted records.
package types

import "github.com/google/uuid"

type ID string

func NewID() ID {
	return ID(uuid.NewString())
}

// ValidID reports whether v parses as a UUID.
func ValidID(v string) bool {
	_, err := uuid.Parse(v)
	return err == nil
}
