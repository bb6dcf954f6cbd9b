package http

import "github.com/gin-gonic/gin"

// Register attaches project and people routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	projects.GET("", h.search)
	projects.GET("/current", h.listCurrent)
	projects.GET("/overdue", h.listOverdue)
	projects.POST("", h.create)
	projects.GET("/:number", h.get)
	projects.DELETE("/:number", h.delete)
	projects.POST("/:number/advance", h.advance)
	projects.GET("/:number/changes", h.viewChanges)
	projects.PUT("/:number/changes", h.proposeChange)
	projects.DELETE("/:number/changes", h.discardChanges)
	projects.POST("/:number/changes/commit", h.commitChanges)

	people := rg.Group("/people")
	people.GET("", h.searchPeople)
	people.POST("/reconcile", h.reconcile)
	people.GET("/:id", h.getPerson)
	people.GET("/:id/projects", h.personProjects)
	people.PATCH("/:id", h.updatePerson)
}
