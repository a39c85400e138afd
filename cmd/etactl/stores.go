package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"deliveryeta/internal/config"
	"deliveryeta/internal/infra"
	"deliveryeta/internal/modules/artifact"
	"deliveryeta/internal/modules/dataset"
	"deliveryeta/internal/modules/location"
)

// stores opens the configured dataset and model backends. close releases the
// Postgres pool when one was opened.
type stores struct {
	data   dataset.Store
	models artifact.Store
	close  func()
}

func openStores(ctx context.Context, c config.Config) (*stores, error) {
	s := &stores{
		data:   dataset.NewCSVStore(c.Dataset.Path),
		models: artifact.NewFileStore(c.Model.Dir),
		close:  func() {},
	}
	if c.Dataset.Backend != config.BackendPostgres && c.Model.Backend != config.BackendPostgres {
		return s, nil
	}

	db, err := infra.NewDB(ctx, c.DB.DSN)
	if err != nil {
		return nil, err
	}
	s.close = db.Close
	if err := usePostgres(ctx, c, db, s); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func usePostgres(ctx context.Context, c config.Config, db *pgxpool.Pool, s *stores) error {
	if c.Dataset.Backend == config.BackendPostgres {
		pg := dataset.NewPGStore(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			return err
		}
		s.data = pg
	}
	if c.Model.Backend == config.BackendPostgres {
		pg := artifact.NewPGStore(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			return err
		}
		s.models = pg
	}
	return nil
}

func loadCatalog(c config.Config) (*location.Catalog, error) {
	if c.Catalog.Path == "" {
		return location.DefaultCatalog()
	}
	return location.LoadCatalog(c.Catalog.Path)
}
