package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteTxRunner_RollsBackClientWhenProjectsFail(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	injected := errors.New("injected")
	runner := NewSQLiteTxRunner(&testutil.FailOnNthExecUoW{DB: db, FailOn: 2, Err: injected})

	client := testutil.NewTestClient("Acme")
	err := runner.WithinTx(ctx, func(ctx context.Context, r Repos) error {
		if err := r.Clients.Create(ctx, client); err != nil {
			return err
		}
		return r.Projects.CreateBatch(ctx, []*domain.Project{testutil.NewTestProject(client.ID, "P")})
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, injected)

	_, err = NewSQLiteRepos(db).Clients.GetByID(ctx, client.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteTxRunner_Commits(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	runner := NewSQLiteTxRunner(testutil.NewTestUoW(db))

	client := testutil.NewTestClient("Acme")
	require.NoError(t, runner.WithinTx(ctx, func(ctx context.Context, r Repos) error {
		return r.Clients.Create(ctx, client)
	}))

	got, err := NewSQLiteRepos(db).Clients.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
}

func TestStoreError_Wrapping(t *testing.T) {
	base := errors.New("boom")
	err := storeErr("insert", "clients", base)
	assert.EqualError(t, err, "insert clients: boom")
	assert.ErrorIs(t, err, base)
	assert.Same(t, err, storeErr("update", "projects", err))
	assert.NoError(t, storeErr("insert", "clients", nil))
}
