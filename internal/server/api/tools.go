package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/datawarden/datawarden/internal/dispatch"
	"github.com/datawarden/datawarden/internal/objects"
	"github.com/datawarden/datawarden/internal/server/biz"
)

type ToolHandlers struct {
	svc *biz.ToolService
}

func NewToolHandlers(svc *biz.ToolService) *ToolHandlers {
	return &ToolHandlers{svc: svc}
}

// Dispatch runs a batch of tool calls and blocks until every call reaches a
// terminal state.
func (h *ToolHandlers) Dispatch(c *gin.Context) {
	var req objects.DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, err)
		return
	}

	reqs := lo.Map(req.Requests, func(call objects.ToolCall, _ int) dispatch.Request {
		return dispatch.Request{
			ToolName:   call.ToolName,
			Target:     call.Target,
			Input:      call.Input,
			Timeout:    time.Duration(call.TimeoutMS) * time.Millisecond,
			MaxRetries: call.MaxRetries,
			Metadata:   call.Metadata,
		}
	})

	results, err := h.svc.Dispatch(c.Request.Context(), reqs, time.Duration(req.OverallTimeoutMS)*time.Millisecond)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, objects.DispatchResponse{Results: results})
}

// Stats returns aggregate execution statistics, optionally scoped to a
// single tool through the "tool" query parameter.
func (h *ToolHandlers) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, objects.StatsResponse{
		Stats: h.svc.Stats(c.Query("tool")),
	})
}

// ClearHistory drops all recorded executions.
func (h *ToolHandlers) ClearHistory(c *gin.Context) {
	cleared := h.svc.ClearHistory(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"cleared": cleared})
}
