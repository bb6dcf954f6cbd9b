package http

import (
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/service"
)

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	projects *service.ProjectService
	people   *service.PersonService
	changes  *service.ChangeSetService
	log      *zap.Logger
}

func New(projects *service.ProjectService, people *service.PersonService, changes *service.ChangeSetService, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{projects: projects, people: people, changes: changes, log: log}
}
