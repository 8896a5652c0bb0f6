package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/sareecatalog/internal/service"
)

// SareeRequest is the body of saree create and update. On update every
// absent field is left unchanged.
type SareeRequest struct {
	Name      *string   `json:"name"`
	ImageURLs *[]string `json:"image_urls" validate:"omitempty,dive,url"`
	Variety   *string   `json:"variety"`
	Remarks   *string   `json:"remarks"`
	MinPrice  *float64  `json:"min_price" validate:"omitempty,gte=0"`
	MaxPrice  *float64  `json:"max_price" validate:"omitempty,gte=0"`
	Status    *string   `json:"status" validate:"omitempty,oneof=published unpublished"`
}

// CreateSaree adds a saree
func (h *Handler) CreateSaree(c echo.Context) error {
	var req SareeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in := service.SareeInput{
		Name:     deref(req.Name),
		Variety:  deref(req.Variety),
		Remarks:  deref(req.Remarks),
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		Status:   deref(req.Status),
	}
	if req.ImageURLs != nil {
		in.ImageURLs = *req.ImageURLs
	}
	saree, err := h.sarees.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, saree)
}

// UpdateSaree applies a partial update
func (h *Handler) UpdateSaree(c echo.Context) error {
	var req SareeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	saree, err := h.sarees.Update(c.Request().Context(), c.Param("id"), service.SareePatch{
		Name:      req.Name,
		ImageURLs: req.ImageURLs,
		Variety:   req.Variety,
		Remarks:   req.Remarks,
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,
		Status:    req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, saree)
}

// DeleteSaree removes a saree
func (h *Handler) DeleteSaree(c echo.Context) error {
	if err := h.sarees.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message("Saree deleted"))
}

// GetSaree returns one saree regardless of status
func (h *Handler) GetSaree(c echo.Context) error {
	saree, err := h.sarees.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, saree)
}

// ListSarees pages every saree by name
func (h *Handler) ListSarees(c echo.Context) error {
	paging, err := queryPaging(c)
	if err != nil {
		return err
	}
	page, err := h.sarees.ListAdmin(c.Request().Context(), service.AdminSareeQuery{
		Search:  c.QueryParam("search"),
		Variety: c.QueryParam("variety"),
		Status:  c.QueryParam("status"),
		Paging:  paging,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
