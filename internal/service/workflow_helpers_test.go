package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/draft"
	"github.com/alexanderramin/clientdesk/internal/repository"
	"github.com/alexanderramin/clientdesk/internal/testutil"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	return r.events[len(r.events)-1]
}

// seedClientWithProjects stores a client and one project per budget (nil
// budget stored as NULL).
func seedClientWithProjects(t *testing.T, database *sql.DB, name string, budgets ...*int64) (*domain.Client, []*domain.Project) {
	t.Helper()
	ctx := context.Background()
	r := repository.NewSQLiteRepos(database)
	c := testutil.NewTestClient(name)
	require.NoError(t, r.Clients.Create(ctx, c))

	var ps []*domain.Project
	for i, b := range budgets {
		opt := testutil.WithNullBudget()
		if b != nil {
			opt = testutil.WithBudget(*b)
		}
		p := testutil.NewTestProject(c.ID, string(rune('A'+i)), opt)
		require.NoError(t, r.Projects.Create(ctx, p))
		ps = append(ps, p)
	}
	return c, ps
}

func cents(v int64) *int64 { return &v }

func createDraft(name string, rows ...[2]string) draft.CreateDraft {
	d := draft.NewCreateDraft().WithClient(domain.ClientFields{Name: name, Status: domain.ClientActive})
	for i, r := range rows {
		if i > 0 {
			d = d.AddProject()
		}
		d = d.SetProjectName(i, r[0]).SetProjectBudget(i, r[1])
	}
	return d
}
