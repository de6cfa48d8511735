package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/zeyang/login-system/internal/api/handler"
	"github.com/zeyang/login-system/internal/api/middleware"
	"github.com/zeyang/login-system/internal/core/service"
	mongodb "github.com/zeyang/login-system/internal/infrastructure/db/mongo"
	redisdb "github.com/zeyang/login-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	e.Use(echoprometheus.NewMiddleware("login"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	cache := redisdb.NewCache(rdb)

	hasher := service.NewPasswordHasher()
	authService := service.NewAuthService(userRepo, auditRepo, hasher, jwtSecret, 24*time.Hour, log)
	userService := service.NewUserService(userRepo, hasher, log)

	sessions := redisdb.NewSessionStore(cache)
	tokens := redisdb.NewTokenStore(cache)
	attempts := redisdb.NewAttemptStore(cache)
	limiter := redisdb.NewRateLimiter(cache)

	authHandler := handler.NewAuthHandler(authService, userService, sessions, tokens, attempts, log)
	tokenHandler := handler.NewTokenHandler(tokens)
	userHandler := handler.NewUserHandler(userService)
	auditHandler := handler.NewAuditHandler(auditRepo)

	authMW := middleware.Auth(jwtSecret)
	rateMW := middleware.RateLimit(limiter, log)

	// --- Auth routes (rate limited by caller IP) ---
	auth := e.Group("/api/auth", rateMW)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/token", tokenHandler.Create, authMW)
	auth.POST("/token/validate", tokenHandler.Validate)
	auth.POST("/token/refresh", tokenHandler.Refresh)
	auth.DELETE("/token", tokenHandler.Invalidate)
	auth.GET("/logs", auditHandler.ListByAccount, authMW)
	auth.GET("/logs/range", auditHandler.ListByTimeRange, authMW)

	// --- User routes ---
	e.GET("/api/users/:id", userHandler.GetByID, authMW)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
