package server

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"career-advisor/internal/internships"
	"career-advisor/internal/plans"
	"career-advisor/internal/sessions"
	"career-advisor/internal/shared/config"
	"career-advisor/internal/shared/metrics"
	"career-advisor/internal/shared/server/middleware"
	"career-advisor/internal/shared/server/respond"
)

// Rate limit groups. Plan generation issues several generative calls per
// request, so it carries a much tighter budget than the rest of the API.
const (
	rateGroupDefault = "DEFAULT"
	rateGroupPlan    = "PLAN"
)

// RouterDeps carries everything NewRouter needs to wire routes.
type RouterDeps struct {
	Config            config.Config
	SessionHandler    *sessions.Handler
	PlanHandler       *plans.Handler
	InternshipHandler *internships.Handler
	StaticFS          fs.FS
}

// NewRouter builds the gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Session(),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			rateGroupDefault: {Rate: 5, Burst: 20},
			rateGroupPlan:    {Rate: 0.2, Burst: 3},
		},
		DefaultGroup: rateGroupDefault,
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && strings.HasSuffix(c.FullPath(), "/plans") {
				return rateGroupPlan
			}
			return ""
		},
	}))

	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"ok": true})
	})

	if deps.SessionHandler != nil {
		deps.SessionHandler.RegisterRoutes(api)
	}
	if deps.PlanHandler != nil {
		deps.PlanHandler.RegisterRoutes(api)
	}
	if deps.InternshipHandler != nil {
		deps.InternshipHandler.RegisterRoutes(api)
	}

	registerStatic(r, deps.StaticFS)

	return r
}

// registerStatic serves the embedded single-page UI for anything that is not
// an API route.
func registerStatic(r *gin.Engine, staticFS fs.FS) {
	if staticFS == nil {
		return
	}
	fileServer := http.FileServer(http.FS(staticFS))
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
			return
		}
		fileServer.ServeHTTP(c.Writer, c.Request)
	})
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
