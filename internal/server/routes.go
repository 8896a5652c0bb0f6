package server

import (
	"github.com/labstack/echo/v4"
	"github.com/suteetoe/sareecatalog/internal/handler"
	"github.com/suteetoe/sareecatalog/pkg/metrics"
)

type routeOptions struct {
	adminAuth   echo.MiddlewareFunc
	adminSecret echo.MiddlewareFunc
	// publicItemRoutes serves /saree and /sarees without an admin identity
	publicItemRoutes bool
}

func registerRoutes(e *echo.Echo, h *handler.Handler, opts routeOptions) {
	e.GET("/metrics", echo.WrapHandler(metrics.GetPrometheusHandler()))
	e.GET("/health", h.Health)

	// Admin users, gated by the shared secret
	adminUsers := e.Group("/admin-user", opts.adminSecret)
	adminUsers.POST("", h.CreateAdmin)
	adminUsers.GET("", h.ListAdmins)
	adminUsers.DELETE("/:id", h.DeleteAdmin)

	e.POST("/admin/login", h.Login)

	admin := e.Group("/admin", opts.adminAuth)
	admin.POST("/category", h.CreateCategory)
	admin.PUT("/category/:id", h.UpdateCategory)
	admin.DELETE("/category/:id", h.DeleteCategory)
	admin.GET("/category/:id/sarees", h.CategorySarees)
	admin.PUT("/category/:id/sarees", h.UpdateCategorySarees)
	admin.DELETE("/category/:id/saree/:saree_id", h.RemoveCategorySaree)
	admin.GET("/category/:id/sarees/picker", h.CategoryPicker)
	admin.POST("/category/:id/sarees/picker", h.CategoryPicker)
	admin.GET("/categories", h.ListCategories)

	admin.POST("/variety", h.CreateVariety)
	admin.PUT("/variety/:id", h.UpdateVariety)
	admin.GET("/varieties", h.ListVarieties)

	admin.GET("/dashboard/stats", h.DashboardStats)

	// Invites
	e.POST("/invite/create", h.CreateInvite, opts.adminAuth)
	e.POST("/invite/category/create", h.CreateCategoryInvite, opts.adminAuth)

	e.POST("/api/invite/verify", h.VerifyInvite)
	e.POST("/api/invite/category/verify", h.VerifyCategoryInvite)
	e.POST("/api/category-invite/verify", h.VerifyCategoryInvite)

	e.POST("/api/invite/disable", h.DisableInvite, opts.adminAuth)
	e.POST("/api/invite/category/disable", h.DisableCategoryInvite, opts.adminAuth)
	e.POST("/api/category-invite/disable", h.DisableCategoryInvite, opts.adminAuth)

	// Client catalog, scoped by the optional ?token=
	client := e.Group("/client")
	client.GET("/sarees", h.ClientSarees)
	client.GET("/sarees/:id", h.ClientSaree)
	client.GET("/varieties", h.ClientVarieties)

	// Item CRUD
	var items []echo.MiddlewareFunc
	if !opts.publicItemRoutes {
		items = append(items, opts.adminAuth)
	}
	e.POST("/saree", h.CreateSaree, items...)
	e.GET("/saree/:id", h.GetSaree, items...)
	e.PUT("/saree/:id", h.UpdateSaree, items...)
	e.DELETE("/saree/:id", h.DeleteSaree, items...)
	e.GET("/sarees", h.ListSarees, items...)
}
