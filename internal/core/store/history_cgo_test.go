//go:build cgo

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/searchlens/searchlens/internal/config"
	"github.com/searchlens/searchlens/internal/core"
)

func openMemoryStore(t *testing.T) *Store {
	t.Helper()

	ctx := context.Background()
	store, err := Open(ctx, config.StoreConfig{Driver: "libsql", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleInvestigation(id string, at time.Time) *core.Investigation {
	return &core.Investigation{
		ID:         id,
		Subject:    "Jane Doe",
		Categories: []string{"Social Media"},
		Records: []core.SearchRecord{
			{Category: "Social Media", Platform: "LinkedIn", URL: "https://www.linkedin.com/search/results/people/?keywords=Jane+Doe", GeneratedAt: at},
			{Category: "Social Media", Platform: "Reddit", Err: "expand template: pattern has no substitution slot", GeneratedAt: at},
		},
		Errors:      1,
		CompletedAt: at,
	}
}

func TestSaveAndGetInvestigation(t *testing.T) {
	ctx := context.Background()
	store := openMemoryStore(t)

	at := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	inv := sampleInvestigation("inv-1", at)
	require.NoError(t, store.SaveInvestigation(ctx, inv))

	loaded, err := store.GetInvestigation(ctx, "inv-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, inv.Subject, loaded.Subject)
	require.Equal(t, inv.Categories, loaded.Categories)
	require.Len(t, loaded.Records, 2)
	require.Equal(t, "LinkedIn", loaded.Records[0].Platform)
	require.Equal(t, 1, loaded.Errors)
	require.True(t, loaded.CompletedAt.Equal(at))
}

func TestGetInvestigationMissing(t *testing.T) {
	ctx := context.Background()
	store := openMemoryStore(t)

	loaded, err := store.GetInvestigation(ctx, "does-not-exist")
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestSaveInvestigationUpsert(t *testing.T) {
	ctx := context.Background()
	store := openMemoryStore(t)

	at := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	inv := sampleInvestigation("inv-1", at)
	require.NoError(t, store.SaveInvestigation(ctx, inv))

	inv.Subject = "Jane Q Doe"
	require.NoError(t, store.SaveInvestigation(ctx, inv))

	entries, err := store.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Jane Q Doe", entries[0].Subject)
}

func TestListRecentOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	store := openMemoryStore(t)

	base := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"inv-a", "inv-b", "inv-c"} {
		inv := sampleInvestigation(id, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.SaveInvestigation(ctx, inv))
	}

	entries, err := store.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "inv-c", entries[0].ID)
	require.Equal(t, "inv-b", entries[1].ID)
	require.Equal(t, 2, entries[0].RecordCount)
	require.Equal(t, 1, entries[0].ErrorCount)
}

func TestSaveInvestigationRequiresID(t *testing.T) {
	ctx := context.Background()
	store := openMemoryStore(t)

	require.Error(t, store.SaveInvestigation(ctx, &core.Investigation{}))
	require.Error(t, store.SaveInvestigation(ctx, nil))
}
