// README: Process-wide artifact cache; a failed load is retried on the next call.
package estimator

import (
	"context"
	"fmt"
	"sync"

	"deliveryeta/internal/modules/artifact"
)

type Loader struct {
	store artifact.Store

	mu      sync.Mutex
	current *artifact.Artifact
}

func NewLoader(store artifact.Store) *Loader {
	return &Loader{store: store}
}

// Load returns the cached artifact or reads it from the store.
func (l *Loader) Load(ctx context.Context) (*artifact.Artifact, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current != nil {
		return l.current, nil
	}
	if l.store == nil {
		return nil, ErrModelUnavailable
	}
	a, err := l.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}
	l.current = a
	return a, nil
}

// Reload replaces the cached artifact with the store's current one.
// On failure the previous artifact stays in place.
func (l *Loader) Reload(ctx context.Context) (*artifact.Artifact, error) {
	l.mu.Lock()
	prev := l.current
	l.current = nil
	l.mu.Unlock()

	a, err := l.Load(ctx)
	if err != nil {
		l.mu.Lock()
		if l.current == nil {
			l.current = prev
		}
		l.mu.Unlock()
		return nil, err
	}
	return a, nil
}

// Current returns the cached artifact without touching the store.
func (l *Loader) Current() *artifact.Artifact {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}
