package handler

import (
	"net/http"

	"hermes-payment-tracker/internal/adapter/http/middleware"
	redisStore "hermes-payment-tracker/internal/adapter/storage/redis"
	"hermes-payment-tracker/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// MaxBodyBytes caps request bodies; tracker payloads are a few hundred bytes.
const MaxBodyBytes = 64 << 10

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	PaymentSvc     ports.PaymentService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	RateLimit      middleware.RateLimitRule
	HealthCheckers []ports.HealthChecker
	Durable        bool
	MetricsHandler http.Handler // nil = no /metrics route
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(MaxBodyBytes))

	r.GET("/health", HealthCheck(deps.Durable, deps.HealthCheckers...))
	if deps.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	// Writes are rate limited; reads are not.
	rl := func(c *gin.Context) { c.Next() }
	if deps.RateLimitStore != nil {
		rl = middleware.RateLimiter(deps.RateLimitStore, "payments_write", deps.RateLimit, deps.Logger)
	}

	paymentHandler := NewPaymentHandler(deps.PaymentSvc)
	payments := r.Group("/api/v1/payments")
	{
		payments.POST("", rl, paymentHandler.Register)
		payments.PUT("/:paymentId/complete", rl, paymentHandler.Complete)
		payments.PUT("/:paymentId/error", rl, paymentHandler.Fail)
		payments.GET("/:paymentId", paymentHandler.Get)
	}

	return r
}
