// README: Dataset store backed by PostgreSQL (bulk COPY on write, ordered read).
package dataset

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS observations (
			seq                   INTEGER PRIMARY KEY,
			distance_km           DOUBLE PRECISION NOT NULL,
			latitude              DOUBLE PRECISION NOT NULL,
			longitude             DOUBLE PRECISION NOT NULL,
			municipality          TEXT NOT NULL,
			barangay              TEXT NOT NULL,
			postal_code           TEXT NOT NULL,
			time_of_order         SMALLINT NOT NULL,
			day_of_week           SMALLINT NOT NULL,
			order_size            INTEGER NOT NULL,
			delivery_time_minutes DOUBLE PRECISION NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure observations schema: %w", err)
	}
	return nil
}

// Write replaces the stored corpus in one transaction.
func (s *PGStore) Write(ctx context.Context, rows []Observation) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("write observations: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `TRUNCATE observations`); err != nil {
		return fmt.Errorf("write observations: truncate: %w", err)
	}

	cols := append([]string{"seq"}, Columns...)
	_, err = tx.CopyFrom(ctx, pgx.Identifier{"observations"}, cols,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			o := rows[i]
			return []any{
				i,
				o.DistanceKm, o.Latitude, o.Longitude,
				o.Municipality, o.Barangay, o.PostalCode,
				o.TimeOfOrder, o.DayOfWeek, o.OrderSize,
				o.DeliveryTimeMinutes,
			}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("write observations: copy: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("write observations: commit: %w", err)
	}
	return nil
}

func (s *PGStore) Read(ctx context.Context) ([]Observation, error) {
	rows, err := s.db.Query(ctx, `
		SELECT distance_km, latitude, longitude,
		       municipality, barangay, postal_code,
		       time_of_order, day_of_week, order_size,
		       delivery_time_minutes
		FROM observations
		ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("read observations: %w", err)
	}
	defer rows.Close()

	var out []Observation
	for rows.Next() {
		var o Observation
		if err := rows.Scan(
			&o.DistanceKm, &o.Latitude, &o.Longitude,
			&o.Municipality, &o.Barangay, &o.PostalCode,
			&o.TimeOfOrder, &o.DayOfWeek, &o.OrderSize,
			&o.DeliveryTimeMinutes,
		); err != nil {
			return nil, fmt.Errorf("read observations: scan: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read observations: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrEmptyCorpus
	}
	return out, nil
}
