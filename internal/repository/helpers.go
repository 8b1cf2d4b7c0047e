package repository

import (
	"database/sql"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
)

// timestampLayout is fixed-width so that text ordering in SQLite matches
// chronological ordering.
const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

const dateLayout = "2006-01-02"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Parse(time.RFC3339Nano, s)
	}
	return t, nil
}

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted string.
func nullableTimeToString(t *time.Time, layout string) any {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// nullIfEmpty stores optional text fields as NULL rather than "".
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullableMoney converts a *domain.Money to an integer cents value or NULL.
func nullableMoney(m *domain.Money) any {
	if m == nil {
		return nil
	}
	return int64(*m)
}

func moneyFromNull(v sql.NullInt64) *domain.Money {
	if !v.Valid {
		return nil
	}
	m := domain.Money(v.Int64)
	return &m
}

// nowUTC returns the current UTC time in the stored timestamp layout.
func nowUTC() string {
	return formatTimestamp(time.Now())
}
