package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/sareecatalog/internal/middleware"
	"github.com/suteetoe/sareecatalog/internal/service"
)

// VarietyRequest is the body of variety create and update
type VarietyRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateVariety adds a variety
func (h *Handler) CreateVariety(c echo.Context) error {
	admin, _ := middleware.AdminFromContext(c)

	var req VarietyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	variety, err := h.varieties.Create(c.Request().Context(), admin, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Variety added",
		"variety": variety,
	})
}

// UpdateVariety renames a variety and its sarees
func (h *Handler) UpdateVariety(c echo.Context) error {
	admin, _ := middleware.AdminFromContext(c)

	var req VarietyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	variety, err := h.varieties.Update(c.Request().Context(), admin, c.Param("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Variety updated",
		"variety": variety,
	})
}

// ListVarieties pages varieties by a stored sort key
func (h *Handler) ListVarieties(c echo.Context) error {
	paging, err := queryPaging(c)
	if err != nil {
		return err
	}
	sortBy := c.QueryParam("sort_by")
	if sortBy != "" && sortBy != service.SortByName && sortBy != service.SortByTotalCount {
		return service.ErrValidation("sort_by must be name or total_saree_count")
	}
	page, err := h.varieties.List(c.Request().Context(), service.VarietyListQuery{
		Search: c.QueryParam("search"),
		SortBy: sortBy,
		Order:  c.QueryParam("order"),
		Paging: paging,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}
