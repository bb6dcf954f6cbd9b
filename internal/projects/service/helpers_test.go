package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/repository"
)

// recordingRepo counts write calls and can be told to fail them.
type recordingRepo struct {
	*repository.MemoryStore

	fieldUpdates  int
	statusUpdates int
	personUpdates int
	lastFields    map[domain.ProjectField]any

	failWrites error
	failFetch  error
}

func newRecordingRepo() *recordingRepo {
	return &recordingRepo{MemoryStore: repository.NewMemoryStore()}
}

func (r *recordingRepo) UpdateProjectFields(ctx context.Context, number int64, fields map[domain.ProjectField]any) (bool, error) {
	r.fieldUpdates++
	r.lastFields = fields
	if r.failWrites != nil {
		return false, r.failWrites
	}
	return r.MemoryStore.UpdateProjectFields(ctx, number, fields)
}

func (r *recordingRepo) UpdateProjectStatus(ctx context.Context, number int64, rank int) (bool, error) {
	r.statusUpdates++
	if r.failWrites != nil {
		return false, r.failWrites
	}
	return r.MemoryStore.UpdateProjectStatus(ctx, number, rank)
}

func (r *recordingRepo) UpdatePersonFields(ctx context.Context, id int64, fields map[domain.PersonField]string) (bool, error) {
	r.personUpdates++
	if r.failWrites != nil {
		return false, r.failWrites
	}
	return r.MemoryStore.UpdatePersonFields(ctx, id, fields)
}

func (r *recordingRepo) FetchProjectByID(ctx context.Context, number int64) (*domain.Project, error) {
	if r.failFetch != nil {
		return nil, r.failFetch
	}
	return r.MemoryStore.FetchProjectByID(ctx, number)
}

func addPerson(t *testing.T, r *recordingRepo, first, surname string) int64 {
	t.Helper()
	id, err := r.InsertPerson(context.Background(), first, surname, "", first+"@example.com")
	require.NoError(t, err)
	return id
}

func addProject(t *testing.T, r *recordingRepo, name string, customer int64, fields map[domain.ProjectField]any) *domain.Project {
	t.Helper()
	ctx := context.Background()
	n, err := r.MemoryStore.InsertProject(ctx, name, domain.TypeHouse, customer)
	require.NoError(t, err)
	if len(fields) > 0 {
		_, err = r.MemoryStore.UpdateProjectFields(ctx, n, fields)
		require.NoError(t, err)
	}
	p, err := r.MemoryStore.FetchProjectByID(ctx, n)
	require.NoError(t, err)
	return p
}

func setStatus(t *testing.T, r *recordingRepo, p *domain.Project, s domain.ProjectStatus) {
	t.Helper()
	_, err := r.MemoryStore.UpdateProjectStatus(context.Background(), p.Number, s.Rank())
	require.NoError(t, err)
	p.Status = s
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateLayout, s)
	require.NoError(t, err)
	return d
}
