package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sellr/marketplace-api/internal/api/cookie"
	"github.com/sellr/marketplace-api/internal/api/handler"
	"github.com/sellr/marketplace-api/internal/api/middleware"
	"github.com/sellr/marketplace-api/internal/core/domain"
	"github.com/sellr/marketplace-api/internal/core/service"
	"github.com/sellr/marketplace-api/internal/core/token"
	"github.com/sellr/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/sellr/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/sellr/marketplace-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("sellr"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	sessions := redisdb.NewSessionStore(rdb)
	codec := token.NewCodec(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	cookies := cookie.NewManager(cookie.Config{
		Domain:     cfg.Cookie.Domain,
		Secure:     cfg.Cookie.Secure,
		SameSite:   cookie.ParseSameSite(cfg.Cookie.SameSite),
		AccessTTL:  codec.AccessTTL(),
		RefreshTTL: codec.RefreshTTL(),
	})

	authService := service.NewAuthService(userRepo, codec, sessions, codec.RefreshTTL(), log)
	userService := service.NewUserService(userRepo, log)
	categoryService := service.NewCategoryService(categoryRepo, log)

	authHandler := handler.NewAuthHandler(authService, cookies)
	userHandler := handler.NewUserHandler(userService)
	categoryHandler := handler.NewCategoryHandler(categoryService)

	authRequired := middleware.Auth(codec)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout, authRequired)
	auth.GET("/session", authHandler.Session, authRequired)
	auth.GET("/verify", authHandler.Verify, authRequired)
	auth.GET("/me", authHandler.Me, authRequired)

	// --- User routes ---
	users := e.Group("/users")
	users.GET("", userHandler.List, authRequired, adminOnly)
	users.GET("/:id", userHandler.Get)
	users.GET("/:id/profile", userHandler.Get)
	users.PATCH("/:id", userHandler.Update, authRequired)
	users.PATCH("/:id/profile", userHandler.UpdateProfile, authRequired)

	// --- Category routes ---
	categories := e.Group("/categories")
	categories.GET("", categoryHandler.List)
	categories.GET("/:id", categoryHandler.Get)
	categories.POST("", categoryHandler.Create, authRequired, adminOnly)
	categories.PATCH("/:id", categoryHandler.Update, authRequired, adminOnly)
	categories.DELETE("/:id", categoryHandler.Delete, authRequired, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(handler.MongoPinger(db), handler.RedisPinger(rdb))

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
