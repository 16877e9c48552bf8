package router

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"guestbook/internal/config"
	"guestbook/internal/handlers"
	"guestbook/internal/middleware"
	"guestbook/internal/observability"
	"guestbook/internal/telemetry"
	"guestbook/internal/ws"
)

// Web holds what the page server routes need.
type Web struct {
	ServiceName string
	Log         *slog.Logger
	Templates   *template.Template
	Pages       *handlers.PageHandler
}

// NewWebRouter wires the page server.
func NewWebRouter(deps Web) *gin.Engine {
	router := gin.New()

	// middlewares
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		otelgin.Middleware(deps.ServiceName),
		observability.HTTPMetricsMiddleware(),
		middleware.Logging(deps.Log),
	)
	router.SetHTMLTemplate(deps.Templates)

	router.GET("/", deps.Pages.Show)
	router.POST("/messages", deps.Pages.Submit)
	router.GET("/state", deps.Pages.State)

	registerOps(router)
	return router
}

// API holds what the backend routes need.
type API struct {
	ServiceName string
	Log         *slog.Logger
	CORSOrigins []string
	DebugRoutes bool
	Guestbook   *handlers.GuestbookHandler
	Feed        *ws.FeedHandler
	Audit       *telemetry.AuditEmitter
}

// NewAPIRouter wires the guestbook backend.
func NewAPIRouter(deps API) *gin.Engine {
	router := gin.New()

	// middlewares
	router.Use(
		gin.Recovery(),
		middleware.CORS(deps.CORSOrigins),
		middleware.RequestID(),
		otelgin.Middleware(deps.ServiceName),
		observability.HTTPMetricsMiddleware(),
		middleware.Logging(deps.Log),
	)

	router.GET(config.GuestbookPath, deps.Guestbook.ListMessages)
	router.POST(config.GuestbookPath, deps.Guestbook.CreateMessage)
	if deps.Feed != nil {
		router.GET("/ws/guestbook", deps.Feed.Handle)
	}

	handlers.RegisterDebugRoutes(router, deps.Audit, deps.DebugRoutes)
	registerOps(router)
	return router
}

func registerOps(router *gin.Engine) {
	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
