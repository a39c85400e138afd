// README: Quote service; records computed estimates and reads them back.
package quote

import (
	"context"
	"fmt"
	"time"

	"deliveryeta/internal/modules/estimator"
	"deliveryeta/internal/types"
)

// Repository is the persistence the service needs; *Store implements it.
type Repository interface {
	Create(ctx context.Context, q *Quote) error
	Get(ctx context.Context, id types.ID) (*Quote, error)
	ListRecent(ctx context.Context, limit int) ([]*Quote, error)
}

const maxListLimit = 100

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Record implements estimator.Recorder.
func (s *Service) Record(ctx context.Context, q estimator.Query, e estimator.Estimate) error {
	quote := &Quote{
		ID:           types.NewID(),
		Destination:  q.Point,
		Municipality: q.Municipality,
		Barangay:     q.Barangay,
		PostalCode:   q.PostalCode,
		TimeOfOrder:  q.TimeOfOrder,
		DayOfWeek:    q.DayOfWeek,
		OrderSize:    q.OrderSize,
		DistanceKm:   e.DistanceKm,
		Minutes:      e.Minutes,
		Hours:        e.Hours,
		Fee:          e.Fee,
		Source:       e.Source,
		ModelType:    e.ModelType,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, quote); err != nil {
		return fmt.Errorf("record quote: %w", err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Quote, error) {
	if !types.ValidID(string(id)) {
		return nil, ErrBadRequest
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListRecent(ctx context.Context, limit int) ([]*Quote, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.ListRecent(ctx, limit)
}
