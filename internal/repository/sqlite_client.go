package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/clientdesk/internal/db"
	"github.com/alexanderramin/clientdesk/internal/domain"
)

// SQLiteClientRepo implements ClientRepo using a SQLite database.
type SQLiteClientRepo struct {
	db db.DBTX
}

// NewSQLiteClientRepo creates a new SQLiteClientRepo.
func NewSQLiteClientRepo(conn db.DBTX) *SQLiteClientRepo {
	return &SQLiteClientRepo{db: conn}
}

const clientColumns = `id, name, email, phone, website, status, notes, created_at, updated_at`

func (r *SQLiteClientRepo) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO clients (` + clientColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		nullIfEmpty(c.Email),
		nullIfEmpty(c.Phone),
		nullIfEmpty(c.Website),
		string(c.Status),
		nullIfEmpty(c.Notes),
		formatTimestamp(c.CreatedAt),
		formatTimestamp(c.UpdatedAt),
	)
	return storeErr("insert", "clients", err)
}

func (r *SQLiteClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = ?`
	c, err := scanClient(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("clients", id)
	}
	if err != nil {
		return nil, storeErr("select", "clients", err)
	}
	return c, nil
}

func (r *SQLiteClientRepo) List(ctx context.Context) ([]*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeErr("select", "clients", err)
	}
	defer rows.Close()

	var clients []*domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, storeErr("select", "clients", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("select", "clients", fmt.Errorf("iterating clients: %w", err))
	}
	return clients, nil
}

// Update overwrites every editable column. A missing row is reported as
// ErrNotFound.
func (r *SQLiteClientRepo) Update(ctx context.Context, c *domain.Client) error {
	query := `UPDATE clients SET name = ?, email = ?, phone = ?, website = ?, status = ?, notes = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Name,
		nullIfEmpty(c.Email),
		nullIfEmpty(c.Phone),
		nullIfEmpty(c.Website),
		string(c.Status),
		nullIfEmpty(c.Notes),
		formatTimestamp(c.UpdatedAt),
		c.ID,
	)
	if err != nil {
		return storeErr("update", "clients", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &StoreError{Op: "update", Table: "clients", Err: fmt.Errorf("client %q %w", c.ID, ErrNotFound)}
	}
	return nil
}

// Delete removes the client. Projects and their tasks go with it through
// ON DELETE CASCADE. Deleting a missing client is not an error.
func (r *SQLiteClientRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	return storeErr("delete", "clients", err)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (*domain.Client, error) {
	var c domain.Client
	var statusStr, createdAtStr, updatedAtStr string
	var email, phone, website, notes sql.NullString

	err := row.Scan(
		&c.ID, &c.Name, &email, &phone, &website,
		&statusStr, &notes,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	c.Email = email.String
	c.Phone = phone.String
	c.Website = website.String
	c.Notes = notes.String
	c.Status = domain.ClientStatus(statusStr)

	if c.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if c.UpdatedAt, err = parseTimestamp(updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &c, nil
}
