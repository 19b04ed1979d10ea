package router

import (
	"net/http"

	"github.com/finplan/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// NewPlanningGroup builds the /planning route group
func NewPlanningGroup(h *handler.PlanningHandler) *DomainGroup {
	planning := NewDomainGroup("planning", "/planning")
	planning.
		POST("/working-capital", "Working capital metrics and cash conversion cycle", h.WorkingCapital).
		POST("/cash-flow", "Cash flow statement for one period", h.CashFlow).
		POST("/profit-loss", "Profit and loss with margins", h.ProfitLoss).
		POST("/variance", "Budget variance for one line", h.Variance).
		POST("/variance/report", "Budget variance across lines", h.VarianceReport).
		POST("/trend", "Trend classification of a series", h.Trend)

	planning.Group("collection", "/collection").
		POST("/simulate", "Simulate a collection strategy", h.SimulateStrategy).
		POST("/compare", "Compare collection strategies", h.CompareStrategies).
		POST("/recommendations", "Rank strategy templates", h.Recommendations).
		GET("/templates", "List strategy templates", h.ListTemplates)

	planning.Group("risk", "/risk").
		POST("/score", "Score one customer exposure", h.ScoreRisk).
		POST("/alerts", "Alerts for a batch of exposures", h.RiskAlerts)

	planning.Group("forecast", "/forecast").
		POST("/stress-test", "Run cash flow stress scenarios", h.StressTest).
		POST("/rolling", "Rolling monthly cash forecast", h.RollingForecast).
		GET("/scenarios", "List default stress scenarios", h.ListScenarios)

	return planning
}

// NewSystemGroup builds the /system route group
func NewSystemGroup(h *handler.SystemHandler) *DomainGroup {
	return NewDomainGroup("system", "/system").
		GET("/ping", "Ping the API", h.Ping).
		GET("/info", "Build information and planning limits", h.GetSystemInfo)
}

// RegisterOperational mounts the unversioned liveness and scrape endpoints.
// A nil metrics handler leaves metricsPath unregistered.
func RegisterOperational(engine *gin.Engine, h *handler.SystemHandler, metricsPath string, metrics http.Handler) {
	engine.GET("/health", h.Health)
	if metrics != nil {
		engine.GET(metricsPath, gin.WrapH(metrics))
	}
}
