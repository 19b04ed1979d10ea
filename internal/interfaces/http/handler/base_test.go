package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/finplan/backend/internal/domain/shared"
	"github.com/finplan/backend/internal/interfaces/http/dto"
	"github.com/finplan/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// envelope mirrors dto.Response with the payload left undecoded
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return env
}

func testContext(requestID string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	if requestID != "" {
		c.Request.Header.Set(middleware.RequestIDHeader, requestID)
	}
	return c, w
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	c, w := testContext("")

	h.Success(c, map[string]string{"trend": "stable"})

	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"trend": "stable"}`, string(env.Data))
	assert.Nil(t, env.Error)
}

func TestBaseHandlerErrorMethods(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name       string
		call       func(*gin.Context)
		wantStatus int
		wantCode   string
	}{
		{"bad request", func(c *gin.Context) { h.BadRequest(c, dto.ErrCodeInvalidJSON, "bad") }, http.StatusBadRequest, dto.ErrCodeInvalidJSON},
		{"not found", func(c *gin.Context) { h.NotFound(c, "missing") }, http.StatusNotFound, dto.ErrCodeNotFound},
		{"internal", func(c *gin.Context) { h.InternalError(c, "boom") }, http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testContext("req-base-1")
			tt.call(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			env := decode(t, w)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.Equal(t, "req-base-1", env.Error.RequestID)
		})
	}
}

func TestBaseHandlerHandleError(t *testing.T) {
	h := &BaseHandler{}

	t.Run("joined field errors become details", func(t *testing.T) {
		c, w := testContext("req-join")
		err := errors.Join(
			shared.NewValidationError("strategies[0].early_payment_days", "must be between 0 and 30"),
			shared.NewValidationError("aging.days_90_plus", "must not be negative"),
		)

		h.HandleError(c, fmt.Errorf("compare strategies: %w", err))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		env := decode(t, w)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodeInvalidInput, env.Error.Code)
		assert.Equal(t, shared.ErrInvalidInput.Message, env.Error.Message)
		assert.Equal(t, []dto.ValidationDetail{
			{Field: "strategies[0].early_payment_days", Message: "must be between 0 and 30"},
			{Field: "aging.days_90_plus", Message: "must not be negative"},
		}, env.Error.Details)
	})

	t.Run("single domain error keeps its message", func(t *testing.T) {
		c, w := testContext("")
		h.HandleError(c, shared.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decode(t, w)
		assert.Equal(t, dto.ErrCodeNotFound, env.Error.Code)
		assert.Equal(t, "Resource not found", env.Error.Message)
		assert.Empty(t, env.Error.Details)
	})

	t.Run("unknown errors hide their text", func(t *testing.T) {
		c, w := testContext("")
		h.HandleError(c, errors.New("connection reset"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decode(t, w)
		assert.Equal(t, dto.ErrCodeInternal, env.Error.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
		assert.Len(t, c.Errors, 1)
	})

	t.Run("nil is a no-op", func(t *testing.T) {
		c, w := testContext("")
		h.HandleError(c, nil)

		assert.False(t, c.Writer.Written())
		assert.Equal(t, 0, w.Body.Len())
	})
}

func TestBaseHandlerBindJSON(t *testing.T) {
	h := &BaseHandler{}

	bind := func(body string) (*httptest.ResponseRecorder, bool) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		var req dto.ProfitLossRequest
		return w, h.BindJSON(c, &req)
	}

	t.Run("valid body", func(t *testing.T) {
		_, ok := bind(`{"revenue": "1000", "tax_rate_pct": 20}`)
		assert.True(t, ok)
	})

	t.Run("empty body", func(t *testing.T) {
		w, ok := bind(``)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decode(t, w)
		assert.Equal(t, dto.ErrCodeInvalidJSON, env.Error.Code)
		assert.Equal(t, "Request body is required", env.Error.Message)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		w, ok := bind(`{"revenue": `)
		assert.False(t, ok)
		assert.Equal(t, dto.ErrCodeInvalidJSON, decode(t, w).Error.Code)
	})

	t.Run("non-numeric amount", func(t *testing.T) {
		w, ok := bind(`{"revenue": "lots"}`)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidJSON, decode(t, w).Error.Code)
	})

	t.Run("validation failure", func(t *testing.T) {
		w, ok := bind(`{"tax_rate_pct": -1}`)
		assert.False(t, ok)
		env := decode(t, w)
		assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)
		require.Len(t, env.Error.Details, 1)
		assert.Equal(t, "tax_rate_pct", env.Error.Details[0].Field)
	})
}
