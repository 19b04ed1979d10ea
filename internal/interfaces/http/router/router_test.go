package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finplan/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func text(body string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, body)
	}
}

func get(engine *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestRouter_Setup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	r.Register(NewDomainGroup("a", "/a").GET("/ping", "", text("a"))).
		Register(NewDomainGroup("b", "/b").POST("/calc", "", text("b")))
	r.Setup()

	w := get(engine, http.MethodGet, "/api/v1/a/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a", w.Body.String())

	w = get(engine, http.MethodPost, "/api/v1/b/calc")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "b", w.Body.String())

	assert.Equal(t, http.StatusNotFound, get(engine, http.MethodGet, "/a/ping").Code)
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("planning", "/planning")
		assert.Equal(t, "planning", g.Name())
		assert.Equal(t, "/planning", g.Prefix())
	})

	t.Run("middleware applies to subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("planning", "/planning").Use(func(c *gin.Context) {
			c.Header("X-Group", "planning")
			c.Next()
		})
		g.Group("risk", "/risk").POST("/score", "", text("scored"))
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := get(engine, http.MethodPost, "/api/v1/planning/risk/score")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "scored", w.Body.String())
		assert.Equal(t, "planning", w.Header().Get("X-Group"))
	})
}

func TestRouter_Routes(t *testing.T) {
	r := NewRouter(gin.New())

	g := NewDomainGroup("planning", "/planning").POST("/trend", "Trend", text(""))
	g.Group("forecast", "/forecast").GET("/scenarios", "Scenarios", text(""))
	r.Register(g)

	assert.Equal(t, []RouteInfo{
		{Method: http.MethodPost, Path: "/api/v1/planning/trend", Description: "Trend"},
		{Method: http.MethodGet, Path: "/api/v1/planning/forecast/scenarios", Description: "Scenarios"},
	}, r.Routes())
}

func TestNewPlanningGroup(t *testing.T) {
	r := NewRouter(gin.New())
	r.Register(NewPlanningGroup(newPlanningHandler()))

	var paths []string
	for _, route := range r.Routes() {
		assert.NotEmpty(t, route.Description, route.Path)
		paths = append(paths, route.Method+" "+route.Path)
	}

	assert.ElementsMatch(t, []string{
		"POST /api/v1/planning/working-capital",
		"POST /api/v1/planning/cash-flow",
		"POST /api/v1/planning/profit-loss",
		"POST /api/v1/planning/variance",
		"POST /api/v1/planning/variance/report",
		"POST /api/v1/planning/trend",
		"POST /api/v1/planning/collection/simulate",
		"POST /api/v1/planning/collection/compare",
		"POST /api/v1/planning/collection/recommendations",
		"GET /api/v1/planning/collection/templates",
		"POST /api/v1/planning/risk/score",
		"POST /api/v1/planning/risk/alerts",
		"POST /api/v1/planning/forecast/stress-test",
		"POST /api/v1/planning/forecast/rolling",
		"GET /api/v1/planning/forecast/scenarios",
	}, paths)
}

func TestRegisterOperational(t *testing.T) {
	t.Run("with metrics", func(t *testing.T) {
		engine := gin.New()
		RegisterOperational(engine, newSystemHandler(), "/metrics", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("# metrics"))
		}))

		assert.Equal(t, http.StatusOK, get(engine, http.MethodGet, "/health").Code)

		w := get(engine, http.MethodGet, "/metrics")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "# metrics", w.Body.String())
	})

	t.Run("without metrics", func(t *testing.T) {
		engine := gin.New()
		RegisterOperational(engine, newSystemHandler(), "/metrics", nil)

		assert.Equal(t, http.StatusOK, get(engine, http.MethodGet, "/health").Code)
		assert.Equal(t, http.StatusNotFound, get(engine, http.MethodGet, "/metrics").Code)
	})
}
