package handler

import (
	"github.com/finplan/backend/internal/application/planning"
	"github.com/finplan/backend/internal/domain/collection"
	"github.com/finplan/backend/internal/domain/report"
	"github.com/finplan/backend/internal/domain/risk"
	"github.com/finplan/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// PlanningHandler exposes the planning calculators over HTTP
type PlanningHandler struct {
	BaseHandler
	planningService *planning.PlanningService
}

// NewPlanningHandler creates a new PlanningHandler
func NewPlanningHandler(planningService *planning.PlanningService) *PlanningHandler {
	return &PlanningHandler{
		planningService: planningService,
	}
}

// WorkingCapital godoc
// @ID           computeWorkingCapital
// @Summary      Compute working capital metrics
// @Description  DSO, DPO, DIO, cash conversion cycle, liquidity ratios and net working capital
// @Tags         planning
// @Accept       json
// @Produce      json
// @Param        request body dto.WorkingCapitalRequest true "Balances and period totals"
// @Success      200 {object} dto.Response{data=report.WorkingCapitalResult}
// @Failure      400 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /planning/working-capital [post]
func (h *PlanningHandler) WorkingCapital(c *gin.Context) {
	var req dto.WorkingCapitalRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.planningService.ComputeWorkingCapital(c.Request.Context(), req.ToDomain())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// CashFlow godoc
// @ID           computeCashFlow
// @Summary      Derive a cash flow statement
// @Tags         planning
// @Accept       json
// @Produce      json
// @Param        request body report.CashFlowInputs true "Period cash movements"
// @Success      200 {object} dto.Response{data=report.CashFlowResult}
// @Failure      400 {object} dto.Response
// @Router       /planning/cash-flow [post]
func (h *PlanningHandler) CashFlow(c *gin.Context) {
	var req report.CashFlowInputs
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.planningService.ComputeCashFlow(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ProfitLoss godoc
// @ID           computeProfitLoss
// @Summary      Run the profit and loss waterfall
// @Tags         planning
// @Accept       json
// @Produce      json
// @Param        request body dto.ProfitLossRequest true "Revenue, costs and tax rate"
// @Success      200 {object} dto.Response{data=report.PLResult}
// @Failure      400 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /planning/profit-loss [post]
func (h *PlanningHandler) ProfitLoss(c *gin.Context) {
	var req dto.ProfitLossRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.planningService.ComputePL(c.Request.Context(), req.ToDomain())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Variance godoc
// @ID           computeVariance
// @Summary      Compare one actual figure with its budget
// @Tags         planning
// @Accept       json
// @Produce      json
// @Param        request body dto.VarianceRequest true "Budget line"
// @Success      200 {object} dto.Response{data=report.VarianceResult}
// @Failure      400 {object} dto.Response
// @Router       /planning/variance [post]
func (h *PlanningHandler) Variance(c *gin.Context) {
	var req dto.VarianceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.planningService.ComputeVariance(c.Request.Context(), req.ToDomain())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// VarianceReport godoc
// @ID           computeVarianceReport
// @Summary      Analyze variances across budget lines
// @Tags         planning
// @Accept       json
// @Produce      json
// @Param        request body dto.VarianceReportRequest true "Budget lines"
// @Success      200 {object} dto.Response{data=report.VarianceReport}
// @Failure      400 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /planning/variance/report [post]
func (h *PlanningHandler) VarianceReport(c *gin.Context) {
	var req dto.VarianceReportRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.planningService.ComputeVarianceReport(c.Request.Context(), req.ToDomain())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Trend godoc
// @ID           analyzeTrend
// @Summary      Classify an ordered series as increasing, decreasing or stable
// @Tags         planning
// @Accept       json
// @Produce      json
// @Param        request body dto.TrendRequest true "Ordered series"
// @Success      200 {object} dto.Response{data=report.TrendResult}
// @Failure      400 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /planning/trend [post]
func (h *PlanningHandler) Trend(c *gin.Context) {
	var req dto.TrendRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.planningService.AnalyzeTrend(c.Request.Context(), req.Series)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// SimulateStrategy godoc
// @ID           simulateCollectionStrategy
// @Summary      Simulate a collection strategy against an aging snapshot
// @Description  Give either explicit params or the name of a built-in template
// @Tags         planning-collection
// @Accept       json
// @Produce      json
// @Param        request body dto.SimulateStrategyRequest true "Aging snapshot and strategy"
// @Success      200 {object} dto.Response{data=collection.SimulationResult}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /planning/collection/simulate [post]
func (h *PlanningHandler) SimulateStrategy(c *gin.Context) {
	var req dto.SimulateStrategyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	var params collection.StrategyParams
	if req.Params != nil {
		params = req.Params.ToDomain()
	} else {
		tmpl, ok := collection.TemplateByName(req.Template)
		if !ok {
			h.NotFound(c, "Strategy template not found: "+req.Template)
			return
		}
		params = tmpl.Params
	}

	result, err := h.planningService.SimulateStrategy(c.Request.Context(), params, req.Aging.ToDomain())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// CompareStrategies godoc
// @ID           compareCollectionStrategies
// @Summary      Simulate several strategies against the same aging snapshot
// @Tags         planning-collection
// @Accept       json
// @Produce      json
// @Param        request body dto.CompareStrategiesRequest true "Aging snapshot and strategies"
// @Success      200 {object} dto.Response{data=[]collection.SimulationResult}
// @Failure      400 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /planning/collection/compare [post]
func (h *PlanningHandler) CompareStrategies(c *gin.Context) {
	var req dto.CompareStrategiesRequest
	if !h.BindJSON(c, &req) {
		return
	}

	results, err := h.planningService.CompareStrategies(c.Request.Context(), req.Aging.ToDomain(), req.ToDomain())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// Recommendations godoc
// @ID           recommendCollectionStrategies
// @Summary      Rank the built-in templates for an aging snapshot
// @Tags         planning-collection
// @Accept       json
// @Produce      json
// @Param        request body dto.RecommendationsRequest true "Aging snapshot and optional target DSO and budget"
// @Success      200 {object} dto.Response{data=[]collection.RankedStrategy}
// @Failure      400 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /planning/collection/recommendations [post]
func (h *PlanningHandler) Recommendations(c *gin.Context) {
	var req dto.RecommendationsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ranked, err := h.planningService.GetRecommendations(c.Request.Context(), req.Aging.ToDomain(), req.Criteria())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ranked)
}

// ListTemplates godoc
// @ID           listCollectionTemplates
// @Summary      List the built-in collection strategy templates
// @Tags         planning-collection
// @Produce      json
// @Success      200 {object} dto.Response{data=[]collection.Template}
// @Router       /planning/collection/templates [get]
func (h *PlanningHandler) ListTemplates(c *gin.Context) {
	h.Success(c, h.planningService.StrategyTemplates())
}

// ScoreRisk godoc
// @ID           scoreRisk
// @Summary      Score one customer's receivable exposure
// @Tags         planning-risk
// @Accept       json
// @Produce      json
// @Param        request body dto.ExposureRequest true "Customer exposure"
// @Success      200 {object} dto.Response{data=risk.RiskScore}
// @Failure      400 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /planning/risk/score [post]
func (h *PlanningHandler) ScoreRisk(c *gin.Context) {
	var req dto.ExposureRequest
	if !h.BindJSON(c, &req) {
		return
	}

	score, err := h.planningService.ScoreRisk(c.Request.Context(), req.ToDomain())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, score)
}

// RiskAlerts godoc
// @ID           evaluateRiskAlerts
// @Summary      Score a batch of exposures and return alerts at or above a severity
// @Tags         planning-risk
// @Accept       json
// @Produce      json
// @Param        request body dto.RiskAlertsRequest true "Exposures and minimum severity"
// @Success      200 {object} dto.Response{data=[]risk.Alert}
// @Failure      400 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /planning/risk/alerts [post]
func (h *PlanningHandler) RiskAlerts(c *gin.Context) {
	var req dto.RiskAlertsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	alerts, err := h.planningService.EvaluateExposures(c.Request.Context(), req.ToDomain(), risk.Severity(req.MinSeverity))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, alerts)
}

// StressTest godoc
// @ID           stressTestCashFlow
// @Summary      Run a cash flow baseline through stress scenarios
// @Description  Omitting scenarios runs the built-in set
// @Tags         planning-forecast
// @Accept       json
// @Produce      json
// @Param        request body dto.StressTestRequest true "Baseline and scenarios"
// @Success      200 {object} dto.Response{data=forecast.StressTestReport}
// @Failure      400 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /planning/forecast/stress-test [post]
func (h *PlanningHandler) StressTest(c *gin.Context) {
	var req dto.StressTestRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.planningService.StressTest(c.Request.Context(), req.Base, req.ToDomain())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RollingForecast godoc
// @ID           rollingForecast
// @Summary      Project monthly cash positions over a rolling horizon
// @Tags         planning-forecast
// @Accept       json
// @Produce      json
// @Param        request body dto.RollingForecastRequest true "Monthly run rate, growth and seasonality"
// @Success      200 {object} dto.Response{data=planning.RollingForecastResult}
// @Failure      400 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /planning/forecast/rolling [post]
func (h *PlanningHandler) RollingForecast(c *gin.Context) {
	var req dto.RollingForecastRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.planningService.RollingForecast(c.Request.Context(), req.ToDomain())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListScenarios godoc
// @ID           listStressScenarios
// @Summary      List the built-in stress scenarios
// @Tags         planning-forecast
// @Produce      json
// @Success      200 {object} dto.Response{data=[]forecast.ScenarioAdjustment}
// @Router       /planning/forecast/scenarios [get]
func (h *PlanningHandler) ListScenarios(c *gin.Context) {
	h.Success(c, h.planningService.DefaultScenarios())
}
