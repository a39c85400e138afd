package regression

import (
	"encoding/gob"
	"fmt"
	"io"
)

// envelope carries exactly one model kind through gob.
type envelope struct {
	Kind   string
	Linear *Linear
	Forest *Forest
}

func Encode(w io.Writer, m Regressor) error {
	env := envelope{Kind: m.Kind()}
	switch v := m.(type) {
	case *Linear:
		env.Linear = v
	case *Forest:
		env.Forest = v
	default:
		return fmt.Errorf("encode model: unsupported type %T", m)
	}
	return gob.NewEncoder(w).Encode(&env)
}

func Decode(r io.Reader) (Regressor, error) {
	var env envelope
	if err := gob.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	switch {
	case env.Kind == KindLinear && env.Linear != nil:
		return env.Linear, nil
	case env.Kind == KindForest && env.Forest != nil:
		return env.Forest, nil
	default:
		return nil, fmt.Errorf("decode model: unknown or empty kind %q", env.Kind)
	}
}
