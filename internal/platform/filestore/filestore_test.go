package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagelog/garagelog-api/internal/domain"
	"github.com/garagelog/garagelog-api/internal/store"
)

func TestNewFilePersisterRequiresPath(t *testing.T) {
	t.Parallel()
	_, err := NewFilePersister("", nil)
	assert.Error(t, err)
}

func TestFilePersisterSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "garagelog.json")

	persister, err := NewFilePersister(path, nil)
	require.NoError(t, err)

	carID := uuid.New()
	threshold := int64(53000)
	snapshot := domain.Snapshot{
		Cars: []domain.Car{
			{ID: carID, Name: "Daily Driver", Make: "Toyota", Model: "Corolla", Year: 2019, CurrentMileage: 48000},
		},
		Services: []domain.ServiceRecord{
			{ID: uuid.New(), CarID: carID, Title: "Oil Change", Date: "2025-06-14", Cost: 89.50, MileageAtService: 48000, NextServiceMileage: &threshold},
		},
		Expenses: []domain.Expense{
			{ID: uuid.New(), CarID: carID, Title: "Fill-up", Amount: 62.40, Date: "2025-07-02", Category: domain.ExpenseCategoryFuel},
		},
	}

	require.NoError(t, persister.Save(ctx, snapshot))

	loaded, err := persister.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot.Cars, loaded.Cars)
	assert.Equal(t, snapshot.Services, loaded.Services)
	assert.Equal(t, snapshot.Expenses, loaded.Expenses)

	// No stray temp files remain after the atomic rename
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFilePersisterLoadMissingFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "missing.json")

	persister, err := NewFilePersister(path, nil)
	require.NoError(t, err)

	_, err = persister.Load(context.Background())
	assert.ErrorIs(t, err, store.ErrNoSnapshot)
}

func TestFilePersisterPreservesLanguage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "garagelog.json")

	// Seed a document carrying a non-default language tag
	seed := `{"language": "de", "cars": [], "services": [], "expenses": []}`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))

	persister, err := NewFilePersister(path, nil)
	require.NoError(t, err)

	_, err = persister.Load(ctx)
	require.NoError(t, err)

	// A later save writes the remembered language back out
	require.NoError(t, persister.Save(ctx, domain.Snapshot{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"language":"de"`)
}
