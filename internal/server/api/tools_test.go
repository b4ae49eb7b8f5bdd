package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawarden/datawarden/internal/audit"
	"github.com/datawarden/datawarden/internal/authz"
	"github.com/datawarden/datawarden/internal/contexts"
	"github.com/datawarden/datawarden/internal/dispatch"
	"github.com/datawarden/datawarden/internal/objects"
	"github.com/datawarden/datawarden/internal/server/biz"
)

func newToolRouter(t *testing.T, user contexts.UserContext) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := authz.NewStore(authz.DefaultConfig())
	require.NoError(t, err)

	sink := audit.NewMemorySink(64)
	history := dispatch.NewHistory()
	dispatcher := dispatch.NewDispatcher(dispatch.Config{
		MaxConcurrent:  4,
		DefaultTimeout: time.Second,
	}, biz.NewToolRegistry(), history)

	svc := biz.NewToolService(biz.ToolServiceParams{
		Gate:       authz.NewGate(store, sink),
		Dispatcher: dispatcher,
		History:    history,
	})

	handlers := NewToolHandlers(svc)

	engine := gin.New()
	engine.Use(withTestUser(user))
	engine.POST("/v1/tools/dispatch", handlers.Dispatch)
	engine.GET("/v1/tools/stats", handlers.Stats)
	engine.DELETE("/v1/tools/history", handlers.ClearHistory)

	return engine
}

func TestToolDispatchEndpoint(t *testing.T) {
	manager := contexts.UserContext{UserID: "u-3001", Persona: "warehouse_manager"}

	t.Run("batch of allowed tools", func(t *testing.T) {
		engine := newToolRouter(t, manager)

		body := `{
			"requests": [
				{"tool_name":"echo","target_identifier":"wh-01","input_data":{"k":"v"}},
				{"tool_name":"inventory_report","input_data":{"warehouse_code":"WH-01","limit":5}}
			],
			"overall_timeout_ms": 5000
		}`

		req := httptest.NewRequest(http.MethodPost, "/v1/tools/dispatch", strings.NewReader(body))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp objects.DispatchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Results, 2)

		assert.Equal(t, "echo", resp.Results[0].ToolName)
		assert.Equal(t, dispatch.StatusSuccess, resp.Results[0].Status)
		assert.Equal(t, dispatch.StatusSuccess, resp.Results[1].Status)
		assert.NotEmpty(t, resp.Results[0].ID)
		assert.Equal(t, 1, resp.Results[0].Attempts)
	})

	t.Run("denied tool returns 403", func(t *testing.T) {
		engine := newToolRouter(t, manager)

		body := `{"requests":[{"tool_name":"sales_report","input_data":{"region":"emea"}}]}`

		req := httptest.NewRequest(http.MethodPost, "/v1/tools/dispatch", strings.NewReader(body))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "sales_report")
	})

	t.Run("missing requests returns 400", func(t *testing.T) {
		engine := newToolRouter(t, manager)

		req := httptest.NewRequest(http.MethodPost, "/v1/tools/dispatch", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("stats and clear", func(t *testing.T) {
		engine := newToolRouter(t, manager)

		body := `{"requests":[{"tool_name":"echo"}]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/tools/dispatch", strings.NewReader(body))
		engine.ServeHTTP(httptest.NewRecorder(), req)

		statsReq := httptest.NewRequest(http.MethodGet, "/v1/tools/stats?tool=echo", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, statsReq)

		require.Equal(t, http.StatusOK, w.Code)

		var resp objects.StatsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Stats["echo"].Total)
		assert.Equal(t, 1.0, resp.Stats["echo"].SuccessRate)

		clearReq := httptest.NewRequest(http.MethodDelete, "/v1/tools/history", nil)
		w = httptest.NewRecorder()
		engine.ServeHTTP(w, clearReq)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"cleared":1`)
	})
}
