package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"github.com/datawarden/datawarden/internal/server/biz"
)

type AuditHandlers struct {
	svc *biz.AuditService
}

func NewAuditHandlers(svc *biz.AuditService) *AuditHandlers {
	return &AuditHandlers{svc: svc}
}

// Recent returns the newest audit events, oldest first.
func (h *AuditHandlers) Recent(c *gin.Context) {
	limit := cast.ToInt(c.Query("limit"))

	events := h.svc.Recent(limit)

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}
