package dataset

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPGStore_WriteRead(t *testing.T) {
	dsn := os.Getenv("ETA_TEST_DSN")
	if dsn == "" {
		t.Skip("ETA_TEST_DSN not set; skipping integration test")
	}
	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	store := NewPGStore(db)
	require.NoError(t, store.EnsureSchema(ctx))

	rows := newTestGenerator(t, DefaultSeed).Generate(100)
	require.NoError(t, store.Write(ctx, rows))

	got, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	// A second write replaces the corpus rather than appending.
	require.NoError(t, store.Write(ctx, rows[:10]))
	got, err = store.Read(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 10)
}
