package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/service"
)

func (h *Handler) search(c *gin.Context) {
	field := domain.SearchField(c.DefaultQuery("field", string(domain.SearchByName)))
	q := service.Query{
		Field:      field,
		Term:       c.Query("q"),
		AllOnEmpty: c.Query("all") == "true",
	}
	items, err := h.projects.Search(c.Request.Context(), q)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) listCurrent(c *gin.Context) {
	items, err := h.projects.ListCurrent(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) listOverdue(c *gin.Context) {
	items, err := h.projects.ListOverdue(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

type createReq struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	CustomerID int64  `json:"customer_id"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}
	t, err := domain.ParseProjectType(req.Type)
	if err != nil {
		h.writeError(c, domain.NewValidationError(string(domain.FieldType), domain.CodeInvalidEnum, err.Error()))
		return
	}

	p, err := h.projects.Create(c.Request.Context(), service.NewProjectInput{
		Name:       strings.TrimSpace(req.Name),
		Type:       t,
		CustomerID: req.CustomerID,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) get(c *gin.Context) {
	number, ok := int64Param(c, "number")
	if !ok {
		return
	}
	p, err := h.projects.Get(c.Request.Context(), number)
	if err != nil {
		h.writeError(c, err)
		return
	}
	roles, err := h.projects.Roles(c.Request.Context(), p)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"project":  p,
		"roles":    roles,
		"overdue":  p.Overdue(h.projects.Today()),
		"can_next": h.projects.Gate().Check(p),
	})
}

func (h *Handler) delete(c *gin.Context) {
	number, ok := int64Param(c, "number")
	if !ok {
		return
	}
	if err := h.projects.Delete(c.Request.Context(), number); err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.changes.Discard(c.Request.Context(), number); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// advance answers 200 for a blocked advance; the reason is in the body.
func (h *Handler) advance(c *gin.Context) {
	number, ok := int64Param(c, "number")
	if !ok {
		return
	}
	p, res, err := h.projects.Advance(c.Request.Context(), number)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"advanced": res.Advanced,
		"terminal": res.Terminal,
		"reason":   res.Reason,
		"from":     res.From,
		"to":       res.To,
		"project":  p,
	})
}
