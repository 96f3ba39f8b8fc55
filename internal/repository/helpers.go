package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/parish/internal/domain"
)

// nullableString converts a *string to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil.
func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// attributesToValue encodes attributes as a JSON column, or NULL when absent.
func attributesToValue(a *domain.Attributes) (interface{}, error) {
	if a == nil {
		return nil, nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encoding attributes: %w", err)
	}
	return string(data), nil
}

// parseAttributes decodes a nullable JSON attributes column.
func parseAttributes(s sql.NullString) (*domain.Attributes, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var a domain.Attributes
	if err := json.Unmarshal([]byte(s.String), &a); err != nil {
		return nil, fmt.Errorf("decoding attributes: %w", err)
	}
	return &a, nil
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
