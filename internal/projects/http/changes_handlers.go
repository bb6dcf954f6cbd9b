package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) viewChanges(c *gin.Context) {
	number, ok := int64Param(c, "number")
	if !ok {
		return
	}
	v, err := h.changes.View(c.Request.Context(), number)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "changes": v})
}

type proposeReq struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (h *Handler) proposeChange(c *gin.Context) {
	number, ok := int64Param(c, "number")
	if !ok {
		return
	}
	var req proposeReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Field == "" {
		badRequest(c, "invalid body")
		return
	}
	v, err := h.changes.Propose(c.Request.Context(), number, req.Field, req.Value)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "changes": v})
}

func (h *Handler) discardChanges(c *gin.Context) {
	number, ok := int64Param(c, "number")
	if !ok {
		return
	}
	if err := h.changes.Discard(c.Request.Context(), number); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) commitChanges(c *gin.Context) {
	number, ok := int64Param(c, "number")
	if !ok {
		return
	}
	v, err := h.changes.Commit(c.Request.Context(), number)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": v.Project, "warnings": v.Warnings})
}
