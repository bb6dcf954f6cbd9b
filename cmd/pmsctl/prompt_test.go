package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/repository"
	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/service"
)

func TestPrompter_Select(t *testing.T) {
	candidates := []domain.Person{
		{ID: 4, FirstName: "Bob", Surname: "Smith", Email: "bob@example.com"},
		{ID: 2, FirstName: "Ann", Surname: "Smithson", Email: "ann@example.com"},
	}

	var out bytes.Buffer
	p := newPrompter(strings.NewReader("x\n7\n2\n"), &out)
	idx, err := p.Select(context.Background(), "Smith", candidates)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Contains(t, out.String(), "Bob Smith <bob@example.com>")

	p = newPrompter(strings.NewReader("0\n"), &out)
	idx, err = p.Select(context.Background(), "Smith", candidates)
	require.NoError(t, err)
	assert.Equal(t, service.NoSelection, idx)

	p = newPrompter(strings.NewReader(""), &out)
	_, err = p.Select(context.Background(), "Smith", candidates)
	assert.ErrorIs(t, err, service.ErrReconcileAborted)
}

func TestPrompter_FindOrCreate(t *testing.T) {
	repo := repository.NewMemoryStore()
	_, err := repo.InsertPerson(context.Background(), "Bob", "Smith", "", "bob@example.com")
	require.NoError(t, err)

	var out bytes.Buffer
	p := newPrompter(strings.NewReader("0\nmaybe\ns\nCarol\ncarol@example.com\n9 Oak Ave\n"), &out)
	res, err := service.NewReconciler(repo, nil).Resolve(context.Background(), "Smith", p, p)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "Carol", res.Person.FirstName)
	assert.Equal(t, "Smith", res.Person.Surname)
	assert.Equal(t, "9 Oak Ave", res.Person.Address)
}
