package api

import (
	"fmt"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/polatblog/blog-platform/internal/api/handler"
	"github.com/polatblog/blog-platform/internal/api/middleware"
	"github.com/polatblog/blog-platform/internal/api/session"
	"github.com/polatblog/blog-platform/internal/core/service"
	mongodb "github.com/polatblog/blog-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/polatblog/blog-platform/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, sessionSecret string, sessionTTL time.Duration, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("blog"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	articleRepo := mongodb.NewArticleRepository(db)
	accountService := service.NewAccountService(userRepo, log)
	articleService := service.NewArticleService(articleRepo, log)

	sessions := session.NewManager(redisdb.NewSessionStore(rdb), sessionSecret, sessionTTL)
	accountHandler := handler.NewAccountHandler(accountService, sessions)
	articleHandler := handler.NewArticleHandler(articleService, sessions)

	e.Use(middleware.LoadSession(sessions))
	requireLogin := middleware.RequireLogin(sessions)

	// --- Public routes ---
	e.GET("/", articleHandler.Home)
	e.GET("/register", accountHandler.ShowRegister)
	e.POST("/register", accountHandler.Register)
	e.GET("/login", accountHandler.ShowLogin)
	e.POST("/login", accountHandler.Login)
	e.GET("/post/:id", articleHandler.Show)

	// --- Gated routes ---
	e.GET("/logout", accountHandler.Logout, requireLogin)
	e.GET("/dashboard", articleHandler.Dashboard, requireLogin)
	e.GET("/addarticle", articleHandler.ShowCreate, requireLogin)
	e.POST("/addarticle", articleHandler.Create, requireLogin)
	e.GET("/edit/:id", articleHandler.ShowEdit, requireLogin)
	e.POST("/edit/:id", articleHandler.Update, requireLogin)
	e.GET("/delete/:id", articleHandler.Delete, requireLogin)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
