package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/parish/internal/appstate"
	"github.com/alexanderramin/parish/internal/db"
	"github.com/alexanderramin/parish/internal/domain"
)

const preferencesKey = "default"

// SQLitePreferencesRepo stores the serialised preferences slice as one row.
type SQLitePreferencesRepo struct {
	db db.DBTX
}

func NewSQLitePreferencesRepo(db db.DBTX) *SQLitePreferencesRepo {
	return &SQLitePreferencesRepo{db: db}
}

func (r *SQLitePreferencesRepo) Get(ctx context.Context) (domain.Preferences, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM preferences WHERE id = ?`, preferencesKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultPreferences(), fmt.Errorf("preferences: %w", ErrNotFound)
	}
	if err != nil {
		return domain.DefaultPreferences(), fmt.Errorf("reading preferences: %w", err)
	}
	return appstate.UnmarshalPreferences([]byte(data))
}

func (r *SQLitePreferencesRepo) Upsert(ctx context.Context, p domain.Preferences) error {
	st := appstate.New()
	st.Preferences = p
	data, err := appstate.MarshalPreferences(st)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO preferences (id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		preferencesKey, string(data), nowUTC())
	if err != nil {
		return fmt.Errorf("upserting preferences: %w", err)
	}
	return nil
}
