package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/sareecatalog/internal/service"
)

// CreateAdminRequest is the body of POST /admin-user
type CreateAdminRequest struct {
	Username string `json:"username" validate:"required"`
	FullName string `json:"full_name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the body of POST /admin/login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateAdmin registers an admin user
func (h *Handler) CreateAdmin(c echo.Context) error {
	var req CreateAdminRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	admin, err := h.admins.Create(c.Request().Context(), service.AdminInput{
		Username: req.Username,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, admin)
}

// ListAdmins lists every admin user
func (h *Handler) ListAdmins(c echo.Context) error {
	admins, err := h.admins.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admins)
}

// DeleteAdmin removes an admin user
func (h *Handler) DeleteAdmin(c echo.Context) error {
	if err := h.admins.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message("User deleted"))
}

// Login exchanges credentials for a session token
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	res, err := h.admins.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// DashboardStats returns the aggregate catalog counts
func (h *Handler) DashboardStats(c echo.Context) error {
	stats, err := h.dashboard.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Health reports liveness
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"service": h.serviceName,
	})
}
