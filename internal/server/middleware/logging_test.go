package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/datawarden/datawarden/internal/tracing"
)

func TestWithTracing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	engine := gin.New()
	engine.Use(WithLoggingTracing(tracing.Config{
		TraceHeader: "DW-Trace-Id",
	}))

	engine.GET("/", func(c *gin.Context) {
		traceID, ok := tracing.GetTraceID(c.Request.Context())
		assert.True(t, ok)
		assert.NotEmpty(t, traceID)
		assert.Contains(t, traceID, "dw-")
		c.Status(http.StatusOK)
	})

	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("DW-Request-Id"))
}

func TestWithTracingExistingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("DW-Trace-Id", "dw-existing-trace-id")

	w := httptest.NewRecorder()

	engine := gin.New()
	engine.Use(WithLoggingTracing(tracing.Config{
		TraceHeader: "DW-Trace-Id",
	}))

	engine.GET("/", func(c *gin.Context) {
		traceID, ok := tracing.GetTraceID(c.Request.Context())
		assert.True(t, ok)
		assert.Equal(t, "dw-existing-trace-id", traceID)
		c.Status(http.StatusOK)
	})

	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWithTracingExtraHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Correlation-Id", "dw-correlated")

	w := httptest.NewRecorder()

	engine := gin.New()
	engine.Use(WithLoggingTracing(tracing.Config{
		TraceHeader:       "DW-Trace-Id",
		ExtraTraceHeaders: []string{"X-Correlation-Id"},
	}))

	engine.GET("/", func(c *gin.Context) {
		traceID, ok := tracing.GetTraceID(c.Request.Context())
		assert.True(t, ok)
		assert.Equal(t, "dw-correlated", traceID)
		c.Status(http.StatusOK)
	})

	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWithTracingBodyField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	body := `{"metadata":{"trace_id":"dw-from-body"},"query":"SELECT 1"}`
	req, _ := http.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	w := httptest.NewRecorder()

	engine := gin.New()
	engine.Use(WithLoggingTracing(tracing.Config{
		ExtraTraceBodyFields: []string{"metadata.trace_id"},
	}))

	engine.POST("/", func(c *gin.Context) {
		traceID, ok := tracing.GetTraceID(c.Request.Context())
		assert.True(t, ok)
		assert.Equal(t, "dw-from-body", traceID)

		// Body must still be readable by the handler.
		var payload struct {
			Query string `json:"query"`
		}
		assert.NoError(t, c.ShouldBindJSON(&payload))
		assert.Equal(t, "SELECT 1", payload.Query)

		c.Status(http.StatusOK)
	})

	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
