package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/finplan/backend/internal/infrastructure/config"
	"github.com/finplan/backend/internal/infrastructure/telemetry"
	"github.com/finplan/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "finplan", Env: "test"},
		HTTP: config.HTTPConfig{
			MaxBodySize:      256,
			CORSAllowOrigins: []string{"https://planner.example.com"},
			CORSAllowMethods: []string{"GET", "POST", "OPTIONS"},
			CORSAllowHeaders: []string{"Content-Type"},
		},
		Telemetry: config.TelemetryConfig{ServiceName: "finplan"},
		Metrics:   config.MetricsConfig{Enabled: true, Path: "/metrics", Namespace: "finplan"},
		Planning:  config.DefaultPlanningConfig(),
	}
}

func do(engine *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestNewEngine(t *testing.T) {
	metrics := telemetry.NewPlanningMetrics(telemetry.MetricsConfig{Namespace: "finplan"})
	engine, routes := newEngine(testConfig(), zap.NewNop(), metrics)

	assert.Len(t, routes, 17)

	t.Run("planning route carries request id and security headers", func(t *testing.T) {
		w := do(engine, http.MethodPost, "/api/v1/planning/cash-flow", `{"opening_cash": 10, "ar_collections": 5}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		assert.Contains(t, w.Body.String(), `"closing_cash":"15"`)
	})

	t.Run("oversized body", func(t *testing.T) {
		w := do(engine, http.MethodPost, "/api/v1/planning/cash-flow", `{"opening_cash": "`+strings.Repeat("1", 400)+`"}`)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_REQUEST_TOO_LARGE")
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/planning/trend", nil)
		req.Header.Set("Origin", "https://planner.example.com")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://planner.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("health and system info", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(engine, http.MethodGet, "/health", "").Code)

		w := do(engine, http.MethodGet, "/api/v1/system/info", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"max_strategies":10`)
	})

	t.Run("metrics scrape includes http requests", func(t *testing.T) {
		w := do(engine, http.MethodGet, "/metrics", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "finplan_http_requests_total")
		assert.Contains(t, w.Body.String(), `route="/api/v1/planning/cash-flow"`)
	})
}

func TestNewEngine_WithoutMetrics(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics.Enabled = false
	engine, _ := newEngine(cfg, zap.NewNop(), nil)

	assert.Equal(t, http.StatusNotFound, do(engine, http.MethodGet, "/metrics", "").Code)
	assert.Equal(t, http.StatusOK, do(engine, http.MethodGet, "/api/v1/planning/forecast/scenarios", "").Code)
}
