package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/pms-backend/internal/logging"
	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
)

// writeError maps domain errors onto status codes: validation 400, not found
// 404, everything else 500.
func (h *Handler) writeError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		body := gin.H{"ok": false, "error": ve.Error(), "field": ve.Field, "code": ve.Code}
		if ve.RejectedValue != nil {
			body["rejected_value"] = *ve.RejectedValue
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	default:
		logging.FromContext(c.Request.Context(), h.log).Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}

func int64Param(c *gin.Context, name string) (int64, bool) {
	n, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || n <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return n, true
}
