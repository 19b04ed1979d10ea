package logger

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGinMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel zapcore.Level
	}{
		{"success logs info", http.StatusOK, zapcore.InfoLevel},
		{"client error logs warn", http.StatusBadRequest, zapcore.WarnLevel},
		{"server error logs error", http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, logs := observed()

			r := gin.New()
			r.Use(func(c *gin.Context) {
				c.Set(RequestIDContextKey, "req-abc")
				c.Next()
			})
			r.Use(GinMiddleware(log))
			r.GET("/api/v1/planning/:kind", func(c *gin.Context) {
				L(c.Request.Context()).Debug("inside handler")
				c.Status(tt.status)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/planning/trend", nil))

			require.Equal(t, 2, logs.Len())

			inner := logs.All()[0]
			assert.Equal(t, "inside handler", inner.Message)
			assert.Equal(t, "req-abc", inner.ContextMap()["request_id"])

			access := logs.All()[1]
			assert.Equal(t, "HTTP Request", access.Message)
			assert.Equal(t, tt.wantLevel, access.Level)
			fields := access.ContextMap()
			assert.Equal(t, int64(tt.status), fields["status"])
			assert.Equal(t, "GET", fields["method"])
			assert.Equal(t, "/api/v1/planning/trend", fields["path"])
			assert.Equal(t, "/api/v1/planning/:kind", fields["route"])
			assert.Equal(t, "req-abc", fields["request_id"])
		})
	}
}

func TestRecovery(t *testing.T) {
	log, logs := observed()

	r := gin.New()
	r.Use(Recovery(log))
	r.GET("/panic", func(c *gin.Context) {
		panic("unexpected state")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "INTERNAL_ERROR", body["error"].(map[string]any)["code"])

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Panic recovered", logs.All()[0].Message)
	assert.Equal(t, "unexpected state", logs.All()[0].ContextMap()["error"])
}
