// README: Model store backed by PostgreSQL; every Save appends a row and Load returns the newest.
package artifact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"deliveryeta/internal/modules/category"
	"deliveryeta/internal/modules/regression"
)

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS model_artifacts (
			id         BIGSERIAL PRIMARY KEY,
			model_type TEXT NOT NULL,
			model      BYTEA NOT NULL,
			encoders   JSONB NOT NULL,
			metadata   JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensure model_artifacts schema: %w", err)
	}
	return nil
}

func (s *PGStore) Save(ctx context.Context, a *Artifact) error {
	if err := a.Validate(); err != nil {
		return err
	}
	var model bytes.Buffer
	if err := regression.Encode(&model, a.Model); err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}
	enc, err := json.Marshal(a.Encoding)
	if err != nil {
		return fmt.Errorf("save artifact: encode encoders: %w", err)
	}
	meta, err := json.Marshal(a.Metadata)
	if err != nil {
		return fmt.Errorf("save artifact: encode metadata: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO model_artifacts (model_type, model, encoders, metadata)
		VALUES ($1, $2, $3, $4)`,
		a.Metadata.ModelType, model.Bytes(), enc, meta)
	if err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}
	return nil
}

func (s *PGStore) Load(ctx context.Context) (*Artifact, error) {
	var model, encData, metaData []byte
	err := s.db.QueryRow(ctx, `
		SELECT model, encoders, metadata
		FROM model_artifacts
		ORDER BY id DESC
		LIMIT 1`).Scan(&model, &encData, &metaData)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load artifact: %w", err)
	}

	m, err := regression.Decode(bytes.NewReader(model))
	if err != nil {
		return nil, fmt.Errorf("load artifact: %w", err)
	}
	var enc category.Encoding
	if err := json.Unmarshal(encData, &enc); err != nil {
		return nil, fmt.Errorf("load artifact: encoders: %w", err)
	}
	var meta Metadata
	if err := json.Unmarshal(metaData, &meta); err != nil {
		return nil, fmt.Errorf("load artifact: metadata: %w", err)
	}
	a := &Artifact{Model: m, Encoding: enc, Metadata: meta}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}
