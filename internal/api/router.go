package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tastetrail/food-review-api/internal/api/handler"
	"github.com/tastetrail/food-review-api/internal/api/middleware"
	"github.com/tastetrail/food-review-api/internal/core/domain"
	"github.com/tastetrail/food-review-api/internal/core/service"
	"github.com/tastetrail/food-review-api/internal/infrastructure/config"
	mongodb "github.com/tastetrail/food-review-api/internal/infrastructure/db/mongo"
	redisdb "github.com/tastetrail/food-review-api/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with all dependencies constructed
// and all routes registered. Storage handles are injected here once; no
// package holds global connection state.
func NewRouter(client *mongo.Client, db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("foodreview"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	foodRepo := mongodb.NewFoodRepository(db)
	reviewRepo := mongodb.NewReviewRepository(db)
	txRunner := mongodb.NewTxRunner(client)
	foodCache := redisdb.NewFoodCache(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost, log)
	reviewService := service.NewReviewService(reviewRepo, foodRepo, userRepo, txRunner, foodCache, log)
	foodService := service.NewFoodService(foodRepo, reviewRepo, userRepo, txRunner, foodCache, log)

	// --- Handlers ---
	secureCookie := cfg.Env == "production"
	authHandler := handler.NewAuthHandler(authService, cfg.TokenTTL, secureCookie)
	foodHandler := handler.NewFoodHandler(foodService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	adminHandler := handler.NewAdminHandler(foodService)

	authRequired := middleware.Auth(authService)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, authRequired)

	// --- Catalog routes ---
	foods := e.Group("/v1/foods")
	foods.GET("", foodHandler.List)
	foods.GET("/:id", foodHandler.Get)
	foods.POST("", foodHandler.Create, authRequired, adminOnly)
	foods.PUT("/:id", foodHandler.Update, authRequired, adminOnly)
	foods.DELETE("/:id", foodHandler.Delete, authRequired, adminOnly)

	// --- Review routes ---
	foods.GET("/:id/reviews", reviewHandler.ListForFood)
	foods.POST("/:id/reviews", reviewHandler.Submit, authRequired)
	reviews := e.Group("/v1/reviews", authRequired)
	reviews.PUT("/:id", reviewHandler.Update)
	reviews.DELETE("/:id", reviewHandler.Delete)

	// --- Admin routes ---
	admin := e.Group("/v1/admin", authRequired, adminOnly)
	admin.GET("/stats", adminHandler.Stats)

	// --- Health probes, metrics, docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
