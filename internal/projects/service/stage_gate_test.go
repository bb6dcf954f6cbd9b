package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/service"
)

func TestStageGate_CapturedNeedsAddressAndERF(t *testing.T) {
	repo := newRecordingRepo()
	cust := addPerson(t, repo, "Jane", "Smith")
	p := addProject(t, repo, "House Smith", cust, map[domain.ProjectField]any{domain.FieldAddress: "12 Main Rd"})
	gate := service.NewStageGate(repo, nil)
	ctx := context.Background()

	res, err := gate.Advance(ctx, p)
	require.NoError(t, err)
	assert.False(t, res.Advanced)
	assert.Equal(t, "ERF number is required", res.Reason)
	assert.Equal(t, domain.StatusCaptured, p.Status)
	assert.Zero(t, repo.statusUpdates, "a blocked advance never writes")

	_, err = repo.MemoryStore.UpdateProjectFields(ctx, p.Number, map[domain.ProjectField]any{domain.FieldERF: int64(4521)})
	require.NoError(t, err)
	p, _ = repo.FetchProjectByID(ctx, p.Number)

	res, err = gate.Advance(ctx, p)
	require.NoError(t, err)
	assert.True(t, res.Advanced)
	assert.Equal(t, domain.StatusCaptured, res.From)
	assert.Equal(t, domain.StatusLogged, res.To)
	assert.Equal(t, domain.StatusLogged, p.Status)
	assert.Equal(t, 1, repo.statusUpdates)

	stored, _ := repo.FetchProjectByID(ctx, p.Number)
	assert.Equal(t, domain.StatusLogged, stored.Status)
}

func TestStageGate_Guards(t *testing.T) {
	repo := newRecordingRepo()
	cust := addPerson(t, repo, "Jane", "Smith")
	gate := service.NewStageGate(repo, nil)

	cases := []struct {
		status domain.ProjectStatus
		field  domain.ProjectField
		value  any
		reason string
	}{
		{domain.StatusLogged, domain.FieldArchitect, cust, "architect must be assigned"},
		{domain.StatusConcept, domain.FieldEngineer, cust, "engineer must be assigned"},
		{domain.StatusPreFeasibility, domain.FieldProjectManager, cust, "project manager must be assigned"},
		{domain.StatusBankable, domain.FieldTotalFee, decimal.NewFromInt(1000), "total fee must be greater than zero"},
		{domain.StatusConstruction, domain.FieldTotalPaid, decimal.RequireFromString("0.01"), "total paid must be greater than zero"},
	}
	for _, tc := range cases {
		t.Run(tc.status.Key(), func(t *testing.T) {
			p := addProject(t, repo, "P", cust, nil)
			setStatus(t, repo, p, tc.status)

			blocked := gate.Check(p)
			assert.Equal(t, tc.reason, blocked.Reason)
			assert.Equal(t, tc.status, blocked.To)

			p.SetField(tc.field, tc.value)
			ok := gate.Check(p)
			assert.Empty(t, ok.Reason)
			assert.Equal(t, tc.status.Rank()+1, ok.To.Rank())
		})
	}

	t.Run("captured reports both missing", func(t *testing.T) {
		p := addProject(t, repo, "P", cust, nil)
		assert.Equal(t, "address and ERF number are required", gate.Check(p).Reason)
		p.ERF = 1
		assert.Equal(t, "address is required", gate.Check(p).Reason)
	})
}

func TestStageGate_FinalIsTerminal(t *testing.T) {
	repo := newRecordingRepo()
	cust := addPerson(t, repo, "Jane", "Smith")
	p := addProject(t, repo, "P", cust, nil)
	setStatus(t, repo, p, domain.StatusFinal)

	res, err := service.NewStageGate(repo, nil).Advance(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, res.Terminal)
	assert.False(t, res.Advanced)
	assert.Empty(t, res.Reason)
	assert.Zero(t, repo.statusUpdates)
}

func TestStageGate_NeverSkipsOrRegresses(t *testing.T) {
	repo := newRecordingRepo()
	cust := addPerson(t, repo, "Jane", "Smith")
	p := addProject(t, repo, "P", cust, map[domain.ProjectField]any{
		domain.FieldAddress:        "1 Main Rd",
		domain.FieldERF:            int64(1),
		domain.FieldArchitect:      cust,
		domain.FieldEngineer:       cust,
		domain.FieldProjectManager: cust,
		domain.FieldTotalFee:       decimal.NewFromInt(10),
		domain.FieldTotalPaid:      decimal.NewFromInt(5),
	})
	gate := service.NewStageGate(repo, nil)

	prev := p.Status
	for i := 0; i < 10; i++ {
		res, err := gate.Advance(context.Background(), p)
		require.NoError(t, err)
		if res.Terminal {
			break
		}
		require.True(t, res.Advanced)
		assert.Equal(t, prev.Rank()+1, p.Status.Rank())
		prev = p.Status
	}
	assert.Equal(t, domain.StatusFinal, p.Status)
	assert.Equal(t, 6, repo.statusUpdates)
}

func TestStageGate_PersistenceFailureKeepsStatus(t *testing.T) {
	repo := newRecordingRepo()
	cust := addPerson(t, repo, "Jane", "Smith")
	p := addProject(t, repo, "P", cust, map[domain.ProjectField]any{
		domain.FieldAddress: "1 Main Rd",
		domain.FieldERF:     int64(1),
	})
	repo.failWrites = errors.New("connection reset")

	_, err := service.NewStageGate(repo, nil).Advance(context.Background(), p)
	require.Error(t, err)
	assert.True(t, domain.IsPersistence(err))
	assert.Equal(t, domain.StatusCaptured, p.Status)
	assert.Equal(t, 1, repo.statusUpdates)
}

func TestStageGate_VanishedProject(t *testing.T) {
	repo := newRecordingRepo()
	cust := addPerson(t, repo, "Jane", "Smith")
	p := addProject(t, repo, "P", cust, map[domain.ProjectField]any{
		domain.FieldAddress: "1 Main Rd",
		domain.FieldERF:     int64(1),
	})
	_, err := repo.DeleteProject(context.Background(), p.Number)
	require.NoError(t, err)

	_, err = service.NewStageGate(repo, nil).Advance(context.Background(), p)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	assert.Equal(t, domain.StatusCaptured, p.Status)
}
