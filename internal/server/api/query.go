package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/datawarden/datawarden/internal/objects"
	"github.com/datawarden/datawarden/internal/server/biz"
)

type QueryHandlers struct {
	svc *biz.QueryService
}

func NewQueryHandlers(svc *biz.QueryService) *QueryHandlers {
	return &QueryHandlers{svc: svc}
}

// PrepareQuery authorizes and rewrites a query for the calling persona.
func (h *QueryHandlers) PrepareQuery(c *gin.Context) {
	var req objects.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, err)
		return
	}

	prepared, err := h.svc.Prepare(c.Request.Context(), req.Query)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, objects.QueryResponse{
		Query:     prepared.Query,
		Rewritten: prepared.Rewritten,
		Tables:    prepared.Tables,
	})
}
