package repository

import (
	"context"

	"github.com/alexanderramin/clientdesk/internal/db"
)

// NewSQLiteRepos builds all SQLite repositories over one connection or
// transaction.
func NewSQLiteRepos(conn db.DBTX) Repos {
	return Repos{
		Clients:  NewSQLiteClientRepo(conn),
		Projects: NewSQLiteProjectRepo(conn),
		Tasks:    NewSQLiteTaskRepo(conn),
		Overview: NewSQLiteOverviewRepo(conn),
	}
}

// SQLiteTxRunner adapts a db.UnitOfWork to TxRunner.
type SQLiteTxRunner struct {
	uow db.UnitOfWork
}

// NewSQLiteTxRunner creates a TxRunner backed by uow.
func NewSQLiteTxRunner(uow db.UnitOfWork) *SQLiteTxRunner {
	return &SQLiteTxRunner{uow: uow}
}

func (t *SQLiteTxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	return t.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, NewSQLiteRepos(tx))
	})
}
