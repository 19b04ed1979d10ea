package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/finplan/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationRouter(bind func(c *gin.Context) error) *gin.Engine {
	SetupValidator()

	router := gin.New()
	router.Use(RequestID())
	router.POST("/test", func(c *gin.Context) {
		if err := bind(c); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
				"Request validation failed", GetRequestID(c), ValidationDetails(err),
			))
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
	})
	return router
}

func postJSON(router *gin.Engine, body string) (*httptest.ResponseRecorder, dto.Response) {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := serve(router, req)

	var resp dto.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func detailFields(resp dto.Response) []string {
	if resp.Error == nil {
		return nil
	}
	fields := make([]string, len(resp.Error.Details))
	for i, d := range resp.Error.Details {
		fields[i] = d.Field
	}
	return fields
}

func TestSetupValidator(t *testing.T) {
	SetupValidator()
	SetupValidator() // idempotent

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestValidation_DecimalBounds(t *testing.T) {
	router := validationRouter(func(c *gin.Context) error {
		var req dto.ProfitLossRequest
		return c.ShouldBindJSON(&req)
	})

	t.Run("accepts rate within range", func(t *testing.T) {
		w, resp := postJSON(router, `{"revenue": "1000", "tax_rate_pct": "25.5"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)
	})

	t.Run("rejects rate above 100", func(t *testing.T) {
		w, resp := postJSON(router, `{"revenue": 1000, "tax_rate_pct": 100.01}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, []string{"tax_rate_pct"}, detailFields(resp))
		assert.Equal(t, "Must be less than or equal to 100", resp.Error.Details[0].Message)
		assert.NotEmpty(t, resp.Error.RequestID)
	})
}

func TestValidation_NestedPaths(t *testing.T) {
	router := validationRouter(func(c *gin.Context) error {
		var req dto.CompareStrategiesRequest
		return c.ShouldBindJSON(&req)
	})

	t.Run("empty strategy list", func(t *testing.T) {
		w, resp := postJSON(router, `{"aging": {}, "strategies": []}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []string{"strategies"}, detailFields(resp))
		assert.Equal(t, "Must contain at least 1 item(s)", resp.Error.Details[0].Message)
	})

	t.Run("indexes into the offending strategy", func(t *testing.T) {
		body := `{
			"aging": {"days_0_30": "-1"},
			"strategies": [
				{"early_payment_days": 10, "standard_terms_days": 30},
				{"early_payment_days": 45, "collection_intensity": 120}
			]
		}`
		w, resp := postJSON(router, body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.ElementsMatch(t, []string{
			"aging.days_0_30",
			"strategies[1].early_payment_days",
			"strategies[1].collection_intensity",
		}, detailFields(resp))
	})
}

func TestValidation_OptionalPointerDecimals(t *testing.T) {
	router := validationRouter(func(c *gin.Context) error {
		var req dto.RecommendationsRequest
		return c.ShouldBindJSON(&req)
	})

	w, _ := postJSON(router, `{"aging": {"days_0_30": 100}}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp := postJSON(router, `{"aging": {}, "max_budget": "-5"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"max_budget"}, detailFields(resp))
}

func TestValidation_SeverityAndScenarios(t *testing.T) {
	t.Run("unknown severity", func(t *testing.T) {
		router := validationRouter(func(c *gin.Context) error {
			var req dto.RiskAlertsRequest
			return c.ShouldBindJSON(&req)
		})

		_, resp := postJSON(router, `{"exposures": [{"customer_id": "C-1"}], "min_severity": "urgent"}`)

		assert.Equal(t, []string{"min_severity"}, detailFields(resp))
		assert.Equal(t, "Must be one of: info warning critical", resp.Error.Details[0].Message)
	})

	t.Run("unnamed scenario and overly negative shift", func(t *testing.T) {
		router := validationRouter(func(c *gin.Context) error {
			var req dto.StressTestRequest
			return c.ShouldBindJSON(&req)
		})

		_, resp := postJSON(router, `{"base": {}, "scenarios": [{"name": "ok"}, {"payroll_pct": -150}]}`)

		assert.ElementsMatch(t, []string{"scenarios[1].name", "scenarios[1].payroll_pct"}, detailFields(resp))
	})

	t.Run("negative seasonality factor", func(t *testing.T) {
		router := validationRouter(func(c *gin.Context) error {
			var req dto.RollingForecastRequest
			return c.ShouldBindJSON(&req)
		})

		_, resp := postJSON(router, `{"base_monthly": {}, "seasonality_factors": [1, -0.5]}`)

		assert.Equal(t, []string{"seasonality_factors[1]"}, detailFields(resp))
	})
}

func TestValidation_TemplateOrParams(t *testing.T) {
	router := validationRouter(func(c *gin.Context) error {
		var req dto.SimulateStrategyRequest
		return c.ShouldBindJSON(&req)
	})

	w, _ := postJSON(router, `{"aging": {}, "template": "balanced"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp := postJSON(router, `{"aging": {}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"params"}, detailFields(resp))
}

func TestValidationDetails_NonValidatorError(t *testing.T) {
	assert.Nil(t, ValidationDetails(assert.AnError))
}

func TestGetValidationMessage(t *testing.T) {
	SetupValidator()
	v := binding.Validator.Engine().(*validator.Validate)

	type sample struct {
		Name  string `json:"name" binding:"required"`
		Items []int  `json:"items" binding:"max=1"`
		Count int    `json:"count" binding:"gt=0"`
	}

	err := v.Struct(sample{Items: []int{1, 2}})
	details := ValidationDetails(err)
	require.Len(t, details, 3)

	messages := map[string]string{}
	for _, d := range details {
		messages[d.Field] = d.Message
	}
	assert.Equal(t, "This field is required", messages["name"])
	assert.Equal(t, "Must contain at most 1 item(s)", messages["items"])
	assert.Equal(t, "Must be greater than 0", messages["count"])
}
