package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/umuturukk/de-propulsion-v2.0/internal/api/handlers"
	"github.com/umuturukk/de-propulsion-v2.0/internal/api/middleware"
	"github.com/umuturukk/de-propulsion-v2.0/internal/api/models"
	"github.com/umuturukk/de-propulsion-v2.0/internal/metrics"
)

// RouterOptions configures NewRouter. Nil Logger disables request logging, nil Metrics
// disables the request metrics and /metrics.
type RouterOptions struct {
	Logger      *zap.Logger
	Metrics     *metrics.Middleware
	StaticDir   string
	CORSOrigins []string
}

func NewRouter(b *handlers.Backend, opts RouterOptions) *gin.Engine {
	router := gin.New()

	if opts.Metrics != nil {
		router.Use(opts.Metrics.Handler())
	}
	router.Use(middleware.CORS(opts.CORSOrigins...))
	if opts.Logger != nil {
		router.Use(middleware.Logger(opts.Logger, "http"))
	}
	router.Use(middleware.ErrorHandler())

	optimizeHandler := handlers.NewOptimizeHandler(b)
	sweepHandler := handlers.NewSweepHandler(b)
	rankHandler := handlers.NewRankHandler(b)
	curvesHandler := handlers.NewCurvesHandler(b)
	powerFlowHandler := handlers.NewPowerFlowHandler(b)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	api := router.Group("/api/v1")
	{
		api.POST("/optimize", optimizeHandler.Optimize)

		api.POST("/sweep", sweepHandler.RunSweep)
		api.GET("/sweep/:id/ledger", sweepHandler.GetLedger)
		api.POST("/compare", sweepHandler.CompareFleets)

		api.GET("/rank", rankHandler.RankUnitSizes)

		api.GET("/curves", curvesHandler.ListCurves)
		api.GET("/curves/:key/samples", curvesHandler.CurveSamples)

		api.POST("/power-flow", powerFlowHandler.PowerFlow)
	}

	serveStatic(router, opts.StaticDir)
	return router
}

// serveStatic serves the dashboard build from dir when it exists, with index.html as
// the fallback for client-side routes.
func serveStatic(router *gin.Engine, dir string) {
	notFound := func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: models.CodeNotFound, Message: "Not found"},
		})
	}

	if dir == "" {
		router.NoRoute(notFound)
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		zap.S().Named("api").Infow("static directory not found, skipping static file serving", "dir", dir)
		router.NoRoute(notFound)
		return
	}

	router.Static("/assets", filepath.Join(dir, "assets"))
	router.StaticFile("/favicon.ico", filepath.Join(dir, "favicon.ico"))
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			notFound(c)
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	})
	zap.S().Named("api").Infow("serving static files", "dir", dir)
}
