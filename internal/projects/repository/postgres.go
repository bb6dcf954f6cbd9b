package repository

import (
	"database/sql"

	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/service"
)

var (
	_ service.Repository = (*Postgres)(nil)
	_ service.Repository = (*MemoryStore)(nil)
	_ service.DraftStore = (*DraftRepository)(nil)
	_ service.DraftStore = (*MemoryDraftStore)(nil)
)

// Postgres combines the project and person repositories over one *sql.DB.
type Postgres struct {
	*ProjectRepository
	*PersonRepository
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{
		ProjectRepository: NewProjectRepository(db),
		PersonRepository:  NewPersonRepository(db),
	}
}
