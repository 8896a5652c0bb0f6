// Package server assembles the echo instance: middleware chain, services
// and the route table.
package server

import (
	"context"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/suteetoe/sareecatalog/internal/handler"
	mid "github.com/suteetoe/sareecatalog/internal/middleware"
	"github.com/suteetoe/sareecatalog/internal/repository"
	"github.com/suteetoe/sareecatalog/internal/service"
	"github.com/suteetoe/sareecatalog/pkg/config"
	"github.com/suteetoe/sareecatalog/pkg/jwtutil"
	"github.com/suteetoe/sareecatalog/pkg/logger"
	"github.com/suteetoe/sareecatalog/pkg/metrics"
	"github.com/suteetoe/sareecatalog/pkg/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server is the HTTP front of the catalog
type Server struct {
	Echo      *echo.Echo
	Varieties *service.VarietyService

	cfg *config.Config
}

// New wires services over db and registers every route
func New(cfg *config.Config, db *gorm.DB) *Server {
	store := repository.New(db)
	jwt := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      cfg.JWT.SigningKey,
		ExpirationHours: cfg.JWT.ExpirationHours,
	})

	scope := service.NewScopeResolver(store)
	svc := handler.Services{
		Admins:     service.NewAdminService(store, jwt),
		Categories: service.NewCategoryService(store, cfg.Catalog.DerivedSortLimit),
		Sarees:     service.NewSareeService(store, scope),
		Varieties:  service.NewVarietyService(store),
		Invites:    service.NewInviteManager(store, cfg.Invite.FrontendURL),
		Dashboard:  service.NewDashboardService(store),
	}
	h := handler.New(cfg.ServiceName, svc)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewRequestValidator()
	e.HTTPErrorHandler = handler.ErrorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestIDMiddleware())
	e.Use(metrics.NewHTTPMetrics(cfg.ServiceName).Middleware())
	e.Use(logger.Middleware())

	registerRoutes(e, h, routeOptions{
		adminAuth:        mid.AdminAuth(svc.Admins),
		adminSecret:      mid.SharedSecret(cfg.Admin.SecretKey),
		publicItemRoutes: cfg.Catalog.PublicItemRoutes,
	})

	return &Server{
		Echo:      e,
		Varieties: svc.Varieties,
		cfg:       cfg,
	}
}

// Start serves HTTP until the listener fails or Shutdown is called
func (s *Server) Start() error {
	logger.GetLogger().Info("Starting server", zap.String("port", s.cfg.Server.Port))
	return s.Echo.Start(":" + s.cfg.Server.Port)
}

// Shutdown stops accepting requests and drains in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.Echo.Shutdown(ctx)
}
