package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/marketpulse/internal/middleware"
)

// RouterOptions tunes the cross-cutting middleware of NewRouter.
type RouterOptions struct {
	RequestTimeout time.Duration // per-request context deadline; 0 disables it
	RateLimit      int           // requests per minute per client IP; 0 disables it
}

// DefaultRouterOptions mirrors the configuration defaults.
var DefaultRouterOptions = RouterOptions{
	RequestTimeout: 10 * time.Second,
	RateLimit:      60,
}

// NewRouter creates a Gin engine with middlewares and the v1 routes.
//
// Middleware order: RequestID, RequestLogger, Recovery, ErrorHandler, rate
// limiting, request timeout. Health checks are registered by app.InitializeApp.
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.NewRateLimiter(opts.RateLimit, time.Minute).Middleware(),
	)

	if opts.RequestTimeout > 0 {
		router.Use(func(c *gin.Context) {
			ctx, cancel := context.WithTimeout(c.Request.Context(), opts.RequestTimeout)
			defer cancel()
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/reports", handler.GetDailyReports)
		v1.GET("/index/last", handler.GetLastIndex)
	}

	return router
}
