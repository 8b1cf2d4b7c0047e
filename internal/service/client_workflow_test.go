package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/repository"
	"github.com/alexanderramin/clientdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_PersistsClientAndValidProjects(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	obs := &recordingObserver{}
	wf := NewClientWorkflow(repository.NewSQLiteRepos(database), nil, WorkflowOptions{}, obs)

	res, err := wf.Create(ctx, createDraft("Acme", [2]string{"Site", "1500.50"}, [2]string{"Logo", "$200"}))
	require.NoError(t, err)
	require.NotNil(t, res.Client)
	require.Len(t, res.Projects, 2)

	r := repository.NewSQLiteRepos(database)
	stored, err := r.Projects.ListByClient(ctx, res.Client.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	for _, p := range stored {
		assert.Equal(t, res.Client.ID, p.ClientID)
		assert.Equal(t, domain.ProjectNotCompleted, p.Status)
	}

	o, err := r.Overview.GetByID(ctx, res.Client.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, o.ProjectCount)
	assert.Equal(t, domain.Money(170050), o.TotalBudget)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "create-client", obs.last().Name)
	assert.True(t, obs.last().Success)
}

func TestCreate_OnlyCompleteRowsPersisted(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	wf := NewClientWorkflow(repository.NewSQLiteRepos(database), nil, WorkflowOptions{})

	res, err := wf.Create(ctx, createDraft("Acme", [2]string{"Site", "1500.50"}, [2]string{"", "200"}))
	require.NoError(t, err)

	stored, err := repository.NewSQLiteRepos(database).Projects.ListByClient(ctx, res.Client.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Site", stored[0].Name)
	require.NotNil(t, stored[0].Budget)
	assert.Equal(t, domain.Money(150050), *stored[0].Budget)
}

func TestCreate_NoValidProjectsLeavesClient(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	obs := &recordingObserver{}
	wf := NewClientWorkflow(repository.NewSQLiteRepos(database), nil, WorkflowOptions{}, obs)

	res, err := wf.Create(ctx, createDraft("Acme", [2]string{"", ""}))
	require.Error(t, err)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "At least one project with name and budget is required", ve.Message)

	require.NotNil(t, res)
	r := repository.NewSQLiteRepos(database)
	clients, err := r.Clients.List(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, res.Client.ID, clients[0].ID)

	projects, err := r.Projects.ListByClient(ctx, res.Client.ID)
	require.NoError(t, err)
	assert.Empty(t, projects)
	assert.False(t, obs.last().Success)
	assert.Equal(t, res.Client.ID, obs.last().Fields["client_id"])
}

func TestCreate_EmptyNameWritesNothing(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	wf := NewClientWorkflow(repository.NewSQLiteRepos(database), nil, WorkflowOptions{})

	res, err := wf.Create(ctx, createDraft("  ", [2]string{"Site", "10"}))
	require.Error(t, err)
	assert.Nil(t, res)

	clients, err := repository.NewSQLiteRepos(database).Clients.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestCreate_ProjectInsertFailureKeepsClient(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	injected := errors.New("injected project insert failure")
	conn := testutil.FailOnNthExec(database, 2, injected)
	wf := NewClientWorkflow(repository.NewSQLiteRepos(conn), nil, WorkflowOptions{})

	res, err := wf.Create(ctx, createDraft("Acme", [2]string{"Site", "10"}))
	require.Error(t, err)
	assert.ErrorIs(t, err, injected)
	assert.True(t, repository.IsStoreError(err))
	require.NotNil(t, res)

	got, err := repository.NewSQLiteRepos(database).Clients.GetByID(ctx, res.Client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
}

func TestCreate_ClientInsertFailureWritesNothing(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	injected := errors.New("injected client insert failure")
	wf := NewClientWorkflow(repository.NewSQLiteRepos(testutil.FailOnNthExec(database, 1, injected)), nil, WorkflowOptions{})

	res, err := wf.Create(ctx, createDraft("Acme", [2]string{"Site", "10"}))
	assert.ErrorIs(t, err, injected)
	assert.Nil(t, res)

	clients, err := repository.NewSQLiteRepos(database).Clients.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestCreateStrict_NoValidProjectsWritesNothing(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	wf := NewClientWorkflow(
		repository.NewSQLiteRepos(database),
		repository.NewSQLiteTxRunner(testutil.NewTestUoW(database)),
		WorkflowOptions{ValidateBeforeWrite: true},
	)

	res, err := wf.Create(ctx, createDraft("Acme", [2]string{"", ""}))
	assert.ErrorIs(t, err, ErrNoValidProjects)
	assert.Nil(t, res)

	clients, err := repository.NewSQLiteRepos(database).Clients.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestCreateStrict_RollsBackClientOnProjectFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	injected := errors.New("injected project insert failure")
	wf := NewClientWorkflow(
		repository.NewSQLiteRepos(database),
		repository.NewSQLiteTxRunner(&testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: injected}),
		WorkflowOptions{ValidateBeforeWrite: true},
	)

	res, err := wf.Create(ctx, createDraft("Acme", [2]string{"Site", "10"}))
	assert.ErrorIs(t, err, injected)
	assert.Nil(t, res)

	clients, err := repository.NewSQLiteRepos(database).Clients.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients, "client must not survive a failed project insert")
}

func TestCreateStrict_CompensatesWithoutTransactions(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	injected := errors.New("injected project insert failure")
	wf := NewClientWorkflow(
		repository.NewSQLiteRepos(testutil.FailOnNthExec(database, 2, injected)),
		nil,
		WorkflowOptions{ValidateBeforeWrite: true},
	)

	res, err := wf.Create(ctx, createDraft("Acme", [2]string{"Site", "10"}))
	assert.ErrorIs(t, err, injected)
	assert.Nil(t, res)

	clients, err := repository.NewSQLiteRepos(database).Clients.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestCreateStrict_Succeeds(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	wf := NewClientWorkflow(
		repository.NewSQLiteRepos(database),
		repository.NewSQLiteTxRunner(testutil.NewTestUoW(database)),
		WorkflowOptions{ValidateBeforeWrite: true},
	)

	res, err := wf.Create(ctx, createDraft("Acme", [2]string{"Site", "10"}, [2]string{"Logo", "5"}))
	require.NoError(t, err)
	assert.Len(t, res.Projects, 2)

	o, err := repository.NewSQLiteRepos(database).Overview.GetByID(ctx, res.Client.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, o.ProjectCount)
	assert.Equal(t, domain.Money(1500), o.TotalBudget)
}
