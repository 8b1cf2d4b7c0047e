package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/clientdesk/internal/db"
	"github.com/alexanderramin/clientdesk/internal/domain"
)

// SQLiteOverviewRepo reads the client_overview view.
type SQLiteOverviewRepo struct {
	db db.DBTX
}

// NewSQLiteOverviewRepo creates a new SQLiteOverviewRepo.
func NewSQLiteOverviewRepo(conn db.DBTX) *SQLiteOverviewRepo {
	return &SQLiteOverviewRepo{db: conn}
}

const overviewColumns = clientColumns + `, project_count, total_budget`

// List returns every client with its aggregates, newest first.
func (r *SQLiteOverviewRepo) List(ctx context.Context) ([]*domain.ClientOverview, error) {
	query := `SELECT ` + overviewColumns + ` FROM client_overview ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeErr("select", "client_overview", err)
	}
	defer rows.Close()

	var out []*domain.ClientOverview
	for rows.Next() {
		o, err := scanOverview(rows)
		if err != nil {
			return nil, storeErr("select", "client_overview", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("select", "client_overview", fmt.Errorf("iterating overview: %w", err))
	}
	return out, nil
}

func (r *SQLiteOverviewRepo) GetByID(ctx context.Context, clientID string) (*domain.ClientOverview, error) {
	query := `SELECT ` + overviewColumns + ` FROM client_overview WHERE id = ?`
	o, err := scanOverview(r.db.QueryRowContext(ctx, query, clientID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("clients", clientID)
	}
	if err != nil {
		return nil, storeErr("select", "client_overview", err)
	}
	return o, nil
}

func scanOverview(row rowScanner) (*domain.ClientOverview, error) {
	var o domain.ClientOverview
	var statusStr, createdAtStr, updatedAtStr string
	var email, phone, website, notes sql.NullString
	var total int64

	err := row.Scan(
		&o.ID, &o.Name, &email, &phone, &website,
		&statusStr, &notes,
		&createdAtStr, &updatedAtStr,
		&o.ProjectCount, &total,
	)
	if err != nil {
		return nil, err
	}

	o.Email = email.String
	o.Phone = phone.String
	o.Website = website.String
	o.Notes = notes.String
	o.Status = domain.ClientStatus(statusStr)
	o.TotalBudget = domain.Money(total)

	if o.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if o.UpdatedAt, err = parseTimestamp(updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &o, nil
}
