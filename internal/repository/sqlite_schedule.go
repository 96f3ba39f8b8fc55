package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/parish/internal/db"
	"github.com/alexanderramin/parish/internal/domain"
	"github.com/alexanderramin/parish/internal/schedule"
)

// SQLiteScheduleRepo implements ScheduleRepo using a SQLite database.
type SQLiteScheduleRepo struct {
	db db.DBTX
}

func NewSQLiteScheduleRepo(db db.DBTX) *SQLiteScheduleRepo {
	return &SQLiteScheduleRepo{db: db}
}

// Replace swaps the stored template for t, keeping t's order.
func (r *SQLiteScheduleRepo) Replace(ctx context.Context, t schedule.Template) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM mass_slots`); err != nil {
		return fmt.Errorf("clearing mass slots: %w", err)
	}
	for i, s := range t {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO mass_slots (day, hour, minute, label, position) VALUES (?, ?, ?, ?, ?)`,
			int(s.Day), s.Hour, s.Minute, s.Label, i)
		if err != nil {
			return fmt.Errorf("inserting mass slot %d: %w", i, err)
		}
	}
	return nil
}

// Load returns the stored template in its saved order. An empty table
// yields ErrNotFound.
func (r *SQLiteScheduleRepo) Load(ctx context.Context) (schedule.Template, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT day, hour, minute, label FROM mass_slots ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("listing mass slots: %w", err)
	}
	defer rows.Close()

	var t schedule.Template
	for rows.Next() {
		var s domain.Slot
		var day int
		if err := rows.Scan(&day, &s.Hour, &s.Minute, &s.Label); err != nil {
			return nil, fmt.Errorf("scanning mass slot: %w", err)
		}
		s.Day = domain.Weekday(day)
		t = append(t, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mass slots: %w", err)
	}
	if len(t) == 0 {
		return nil, fmt.Errorf("mass schedule: %w", ErrNotFound)
	}
	return t, nil
}
