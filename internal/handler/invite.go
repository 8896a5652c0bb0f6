package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/sareecatalog/internal/service"
)

// CategoryInviteRequest lists the categories a new invite grants.
// CategoryID is the single-category form older clients send.
type CategoryInviteRequest struct {
	CategoryIDs []string `json:"category_ids"`
	CategoryID  string   `json:"category_id"`
}

// VerifyRequest is a device-lock check
type VerifyRequest struct {
	Token      string `json:"token"`
	DeviceID   string `json:"device_id"`
	CategoryID string `json:"category_id"`
}

// TokenRequest names a token to disable
type TokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// CreateInvite issues a global invite
func (h *Handler) CreateInvite(c echo.Context) error {
	inv, err := h.invites.CreateGlobal(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, inv)
}

// CreateCategoryInvite issues an invite scoped to one or more categories
func (h *Handler) CreateCategoryInvite(c echo.Context) error {
	var req CategoryInviteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ids := req.CategoryIDs
	if len(ids) == 0 && req.CategoryID != "" {
		ids = []string{req.CategoryID}
	}
	inv, err := h.invites.CreateCategory(c.Request().Context(), ids)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, inv)
}

// VerifyInvite checks a global token against the calling device
func (h *Handler) VerifyInvite(c echo.Context) error {
	var req VerifyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return denied(c, http.StatusBadRequest, err.Error())
	}
	res, err := h.invites.Verify(c.Request().Context(), req.Token, req.DeviceID)
	return verifyResponse(c, res, err)
}

// VerifyCategoryInvite checks a category token against the calling device
func (h *Handler) VerifyCategoryInvite(c echo.Context) error {
	var req VerifyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return denied(c, http.StatusBadRequest, err.Error())
	}
	res, err := h.invites.VerifyCategory(c.Request().Context(), req.Token, req.DeviceID, req.CategoryID)
	return verifyResponse(c, res, err)
}

// DisableInvite revokes a global token
func (h *Handler) DisableInvite(c echo.Context) error {
	var req TokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.invites.Disable(c.Request().Context(), req.Token); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message("Token disabled"))
}

// DisableCategoryInvite revokes every row of a category token
func (h *Handler) DisableCategoryInvite(c echo.Context) error {
	var req TokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.invites.DisableCategory(c.Request().Context(), req.Token); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message("Category token disabled"))
}

func verifyResponse(c echo.Context, res *service.VerifyResult, err error) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return denied(c, http.StatusBadRequest, verr.Message)
	}
	if err != nil {
		return err
	}
	return c.JSON(service.StatusOf(res.Err()), res)
}

func denied(c echo.Context, status int, msg string) error {
	return c.JSON(status, service.VerifyResult{Allowed: false, Message: msg})
}
