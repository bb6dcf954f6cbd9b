package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/service"
)

func (h *Handler) searchPeople(c *gin.Context) {
	items, err := h.people.Search(c.Request.Context(), c.Query("q"), c.Query("all") == "true")
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "people": items})
}

func (h *Handler) getPerson(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	p, err := h.people.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "person": p})
}

func (h *Handler) personProjects(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	items, err := h.projects.ListByPerson(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

type reconcileReq struct {
	Term          string `json:"term"`
	SelectID      *int64 `json:"select_id"`
	TermIsSurname bool   `json:"term_is_surname"`
	OtherName     string `json:"other_name"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}

// wantsCreate is true once the client has sent the details of a new person.
func (r reconcileReq) wantsCreate() bool {
	return strings.TrimSpace(r.OtherName) != "" || strings.TrimSpace(r.Email) != ""
}

// reconcile is find-or-create in two round trips. Without select_id or new
// person details it only returns the candidates.
func (h *Handler) reconcile(c *gin.Context) {
	var req reconcileReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Term) == "" {
		badRequest(c, "invalid body")
		return
	}
	ctx := c.Request.Context()

	if req.SelectID == nil && !req.wantsCreate() {
		candidates, err := h.people.Search(ctx, req.Term, false)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "resolved": false, "candidates": candidates})
		return
	}

	sel := service.SelectorFunc(func(_ context.Context, _ string, candidates []domain.Person) (int, error) {
		if req.SelectID == nil {
			return service.NoSelection, nil
		}
		for i, p := range candidates {
			if p.ID == *req.SelectID {
				return i, nil
			}
		}
		v := strconv.FormatInt(*req.SelectID, 10)
		return 0, &domain.ValidationError{
			Field:         "select_id",
			Code:          domain.CodeOutOfRange,
			Reason:        "not among the candidates for this term",
			RejectedValue: &v,
		}
	})
	collect := service.CollectorFunc(func(context.Context, string) (service.PersonDetails, error) {
		if req.SelectID != nil {
			return service.PersonDetails{}, domain.ErrPersonNotFound
		}
		return service.PersonDetails{
			TermIsSurname: req.TermIsSurname,
			OtherName:     req.OtherName,
			Email:         req.Email,
			Address:       req.Address,
		}, nil
	})

	res, err := h.people.FindOrCreate(ctx, strings.TrimSpace(req.Term), sel, collect)
	if err != nil {
		h.writeError(c, err)
		return
	}
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"ok": true, "resolved": true, "created": res.Created, "person": res.Person})
}

func (h *Handler) updatePerson(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil || len(req) == 0 {
		badRequest(c, "invalid body")
		return
	}
	p, err := h.people.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "person": p})
}
