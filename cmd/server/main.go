package main

import (
	"context"
	"log"
	"net/http"

	_ "memberdesk/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"memberdesk/internal/auth"
	"memberdesk/internal/cache"
	"memberdesk/internal/config"
	"memberdesk/internal/handler"
	"memberdesk/internal/repository"
	"memberdesk/internal/router"
	"memberdesk/internal/service"
	"memberdesk/internal/store"
)

// @title Memberdesk API
// @version 1.0
// @description Community membership API with registration approval, identifier-based login, and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	recordStore, err := newStore(cfg)
	if err != nil {
		log.Fatalf("record store init: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(recordStore)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	registrationService := service.NewRegistrationService(userRepo)
	memberService := service.NewMemberService(userRepo)
	lifecycleService := service.NewLifecycleService(userRepo)
	bootstrapService := service.NewBootstrapService(userRepo, cfg.AdminEmail, cfg.AdminPass)

	// Seed the default administrator before accepting requests
	if err := bootstrapService.EnsureAdminSeed(context.Background()); err != nil {
		log.Fatalf("admin seed: %v", err)
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, registrationService)
	userHandler := handler.NewUserHandler(memberService, lifecycleService)
	profileHandler := handler.NewProfileHandler(memberService)
	dashboardHandler := handler.NewDashboardHandler(memberService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		profileHandler,
		dashboardHandler,
	)

	log.Printf("record store driver: %s", cfg.StoreDriver)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// newStore picks the Record Store driver from config.
func newStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverRedis:
		return store.NewRedisStore(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.StoreKey), nil
	case config.StoreDriverMySQL:
		db, err := store.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		return store.NewMySQLStore(db, cfg.StoreKey)
	default:
		return store.NewFileStore(cfg.StorePath), nil
	}
}
