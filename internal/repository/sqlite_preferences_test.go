package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/parish/internal/domain"
	"github.com/alexanderramin/parish/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferencesRepo_GetMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePreferencesRepo(database)

	p, err := repo.Get(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, domain.DefaultPreferences(), p)
}

func TestPreferencesRepo_UpsertTwice(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePreferencesRepo(database)
	ctx := context.Background()

	first := domain.Preferences{Theme: domain.ThemeDark, Language: "es", FontScale: 1.25}
	require.NoError(t, repo.Upsert(ctx, first))

	second := first
	second.ReducedMotion = true
	require.NoError(t, repo.Upsert(ctx, second))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, got)

	var rows int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM preferences`).Scan(&rows))
	assert.Equal(t, 1, rows)
}
