// README: Quote store backed by PostgreSQL.
package quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"deliveryeta/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS quotes (
			id                    UUID PRIMARY KEY,
			latitude              DOUBLE PRECISION NOT NULL,
			longitude             DOUBLE PRECISION NOT NULL,
			municipality          TEXT NOT NULL,
			barangay              TEXT NOT NULL,
			postal_code           TEXT NOT NULL,
			time_of_order         SMALLINT NOT NULL,
			day_of_week           SMALLINT NOT NULL,
			order_size            INTEGER NOT NULL,
			distance_km           DOUBLE PRECISION NOT NULL,
			delivery_time_minutes DOUBLE PRECISION NOT NULL,
			delivery_time_hours   DOUBLE PRECISION NOT NULL,
			shipping_fee          DOUBLE PRECISION NOT NULL,
			currency              TEXT NOT NULL,
			source                TEXT NOT NULL,
			model_type            TEXT NOT NULL,
			created_at            TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure quotes schema: %w", err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, q *Quote) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO quotes (
			id, latitude, longitude, municipality, barangay, postal_code,
			time_of_order, day_of_week, order_size,
			distance_km, delivery_time_minutes, delivery_time_hours,
			shipping_fee, currency, source, model_type, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9,
			$10, $11, $12,
			$13, $14, $15, $16, $17
		)`,
		string(q.ID), q.Destination.Lat, q.Destination.Lng, q.Municipality, q.Barangay, q.PostalCode,
		q.TimeOfOrder, q.DayOfWeek, q.OrderSize,
		q.DistanceKm, q.Minutes, q.Hours,
		q.Fee.Amount, q.Fee.Currency, q.Source, q.ModelType, q.CreatedAt,
	)
	return err
}

const selectQuote = `
	SELECT id::text, latitude, longitude, municipality, barangay, postal_code,
	       time_of_order, day_of_week, order_size,
	       distance_km, delivery_time_minutes, delivery_time_hours,
	       shipping_fee, currency, source, model_type, created_at
	FROM quotes`

func (s *Store) Get(ctx context.Context, id types.ID) (*Quote, error) {
	q, err := scanQuote(s.db.QueryRow(ctx, selectQuote+` WHERE id = $1`, string(id)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

// ListRecent returns at most limit quotes, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]*Quote, error) {
	rows, err := s.db.Query(ctx, selectQuote+` ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func scanQuote(row pgx.Row) (*Quote, error) {
	var q Quote
	var id string
	err := row.Scan(
		&id, &q.Destination.Lat, &q.Destination.Lng, &q.Municipality, &q.Barangay, &q.PostalCode,
		&q.TimeOfOrder, &q.DayOfWeek, &q.OrderSize,
		&q.DistanceKm, &q.Minutes, &q.Hours,
		&q.Fee.Amount, &q.Fee.Currency, &q.Source, &q.ModelType, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	q.ID = types.ID(id)
	return &q, nil
}
