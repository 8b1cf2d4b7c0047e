package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedClient(t *testing.T, r Repos, name string) *domain.Client {
	t.Helper()
	c := testutil.NewTestClient(name)
	require.NoError(t, r.Clients.Create(context.Background(), c))
	return c
}

func TestProjectRepo_CreateBatchAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	r := NewSQLiteRepos(db)
	client := seedClient(t, r, "Acme")

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	first := testutil.NewTestProject(client.ID, "First", testutil.WithBudget(100), testutil.WithProjectCreatedAt(base))
	second := testutil.NewTestProject(client.ID, "Second", testutil.WithNullBudget(), testutil.WithProjectCreatedAt(base))
	require.NoError(t, r.Projects.CreateBatch(ctx, []*domain.Project{first, second}))

	list, err := r.Projects.ListByClient(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "First", list[0].Name)
	assert.Equal(t, "Second", list[1].Name)
	require.NotNil(t, list[0].Budget)
	assert.Equal(t, domain.Money(100), *list[0].Budget)
	assert.Nil(t, list[1].Budget)
	assert.Equal(t, domain.Money(0), list[1].BudgetOrZero())
}

func TestProjectRepo_CreateBatchAllOrNothing(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	r := NewSQLiteRepos(db)
	client := seedClient(t, r, "Acme")

	good := testutil.NewTestProject(client.ID, "Good")
	bad := testutil.NewTestProject(client.ID, "Bad", testutil.WithBudget(-5))
	require.Error(t, r.Projects.CreateBatch(ctx, []*domain.Project{good, bad}))

	list, err := r.Projects.ListByClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProjectRepo_CreateBatchEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := NewSQLiteRepos(db)
	assert.NoError(t, r.Projects.CreateBatch(context.Background(), nil))
}

func TestProjectRepo_UpdateNameBudget(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	r := NewSQLiteRepos(db)
	client := seedClient(t, r, "Acme")

	p := testutil.NewTestProject(client.ID, "Old", testutil.WithBudget(500))
	require.NoError(t, r.Projects.Create(ctx, p))

	budget := domain.Money(123456)
	require.NoError(t, r.Projects.UpdateNameBudget(ctx, p.ID, "New", &budget))

	got, err := r.Projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	require.NotNil(t, got.Budget)
	assert.Equal(t, budget, *got.Budget)
	assert.Equal(t, domain.ProjectNotCompleted, got.Status)
}

func TestProjectRepo_UpdateNameBudgetMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := NewSQLiteRepos(db)

	err := r.Projects.UpdateNameBudget(context.Background(), "missing", "x", nil)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestTaskRepo_ListByProject(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	r := NewSQLiteRepos(db)
	client := seedClient(t, r, "Acme")
	p := testutil.NewTestProject(client.ID, "Site")
	require.NoError(t, r.Projects.Create(ctx, p))

	require.NoError(t, r.Tasks.Create(ctx, testutil.NewTestTask(p.ID, "Design", testutil.WithPriority(domain.PriorityHigh))))
	require.NoError(t, r.Tasks.Create(ctx, testutil.NewTestTask(p.ID, "Build", testutil.WithTaskStatus(domain.TaskInProgress))))

	tasks, err := r.Tasks.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	names := []string{tasks[0].Name, tasks[1].Name}
	assert.ElementsMatch(t, []string{"Design", "Build"}, names)

	require.NoError(t, r.Tasks.Delete(ctx, tasks[0].ID))
	tasks, err = r.Tasks.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}
