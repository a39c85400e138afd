package quote

import (
	"context"
	"errors"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deliveryeta/internal/modules/estimator"
	"deliveryeta/internal/types"
)

type memRepo struct {
	mu     sync.Mutex
	quotes map[types.ID]*Quote
	err    error
}

func newMemRepo() *memRepo {
	return &memRepo{quotes: map[types.ID]*Quote{}}
}

func (r *memRepo) Create(_ context.Context, q *Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.quotes[q.ID] = q
	return nil
}

func (r *memRepo) Get(_ context.Context, id types.ID) (*Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quotes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return q, nil
}

func (r *memRepo) ListRecent(_ context.Context, limit int) ([]*Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Quote
	for _, q := range r.quotes {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func sampleQuery() estimator.Query {
	return estimator.Query{
		Point:        types.Point{Lat: 14.1494, Lng: 121.3156},
		Municipality: "Calauan",
		Barangay:     "San Isidro",
		PostalCode:   "4012",
		TimeOfOrder:  14,
		DayOfWeek:    2,
		OrderSize:    10,
	}
}

func sampleEstimate() estimator.Estimate {
	return estimator.Estimate{
		DistanceKm: 8.86,
		Minutes:    42.14,
		Hours:      0.70,
		Fee:        types.Money{Amount: 71.07, Currency: "PHP"},
		Source:     estimator.SourceFallback,
	}
}

func TestService_RecordAndGet(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewService(repo)
	created := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return created }

	require.NoError(t, svc.Record(ctx, sampleQuery(), sampleEstimate()))
	require.Len(t, repo.quotes, 1)

	var id types.ID
	for k := range repo.quotes {
		id = k
	}
	assert.True(t, types.ValidID(string(id)))

	q, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Calauan", q.Municipality)
	assert.Equal(t, 10, q.OrderSize)
	assert.Equal(t, 42.14, q.Minutes)
	assert.Equal(t, 71.07, q.Fee.Amount)
	assert.Equal(t, estimator.SourceFallback, q.Source)
	assert.Equal(t, created, q.CreatedAt)
}

func TestService_RecordError(t *testing.T) {
	repo := newMemRepo()
	repo.err = errors.New("connection refused")
	err := NewService(repo).Record(context.Background(), sampleQuery(), sampleEstimate())
	assert.ErrorIs(t, err, repo.err)
}

func TestService_Get(t *testing.T) {
	svc := NewService(newMemRepo())
	_, err := svc.Get(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.Get(context.Background(), types.NewID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ListRecent(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo())
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		svc.now = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
		require.NoError(t, svc.Record(ctx, sampleQuery(), sampleEstimate()))
	}

	got, err := svc.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].CreatedAt.After(got[1].CreatedAt))

	got, err = svc.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestStore_CreateGet(t *testing.T) {
	dsn := os.Getenv("ETA_TEST_DSN")
	if dsn == "" {
		t.Skip("ETA_TEST_DSN not set; skipping integration test")
	}
	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db)
	require.NoError(t, store.EnsureSchema(ctx))

	svc := NewService(store)
	require.NoError(t, svc.Record(ctx, sampleQuery(), sampleEstimate()))

	recent, err := svc.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)

	got, err := svc.Get(ctx, recent[0].ID)
	require.NoError(t, err)
	assert.Equal(t, recent[0].ID, got.ID)
	assert.Equal(t, 71.07, got.Fee.Amount)

	_, err = store.Get(ctx, types.NewID())
	assert.ErrorIs(t, err, ErrNotFound)
}
