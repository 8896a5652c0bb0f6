package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/sareecatalog/internal/middleware"
	"github.com/suteetoe/sareecatalog/internal/service"
)

// CategoryRequest is the body of category create and update
type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// CategorySareesRequest replaces a category's membership list
type CategorySareesRequest struct {
	SareeIDs []string `json:"saree_ids"`
}

// PickerRequest drives the selected-first picker. GET reads the query
// string and uses the current members as the selection; POST reads the body.
type PickerRequest struct {
	Search      string   `json:"search" query:"search"`
	Variety     string   `json:"variety" query:"variety"`
	Status      string   `json:"status" query:"status" validate:"omitempty,oneof=published unpublished"`
	Page        int      `json:"page" query:"page"`
	PerPage     int      `json:"per_page" query:"per_page"`
	SelectedIDs []string `json:"selected_ids"`
}

// CreateCategory adds a category
func (h *Handler) CreateCategory(c echo.Context) error {
	admin, _ := middleware.AdminFromContext(c)

	var req CategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	category, err := h.categories.Create(c.Request().Context(), admin, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "Category created",
		"category": category,
	})
}

// UpdateCategory renames a category
func (h *Handler) UpdateCategory(c echo.Context) error {
	admin, _ := middleware.AdminFromContext(c)

	var req CategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	category, err := h.categories.Update(c.Request().Context(), admin, c.Param("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Category updated",
		"category": category,
	})
}

// DeleteCategory removes a category
func (h *Handler) DeleteCategory(c echo.Context) error {
	if err := h.categories.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message("Category deleted"))
}

// UpdateCategorySarees replaces the membership list
func (h *Handler) UpdateCategorySarees(c echo.Context) error {
	var req CategorySareesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return service.ErrValidation("saree_ids must be a list")
	}
	kept, err := h.categories.SetSarees(c.Request().Context(), c.Param("id"), req.SareeIDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":   "Sarees updated",
		"saree_ids": kept,
	})
}

// RemoveCategorySaree drops one saree from a category
func (h *Handler) RemoveCategorySaree(c echo.Context) error {
	err := h.categories.RemoveSaree(c.Request().Context(), c.Param("id"), c.Param("saree_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message("Saree removed from category"))
}

// CategorySarees lists a category's members in membership order
func (h *Handler) CategorySarees(c echo.Context) error {
	members, err := h.categories.Members(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, members)
}

// ListCategories pages categories by name or member count
func (h *Handler) ListCategories(c echo.Context) error {
	paging, err := queryPaging(c)
	if err != nil {
		return err
	}
	sortBy := c.QueryParam("sort_by")
	if sortBy != "" && sortBy != service.SortByName && sortBy != service.SortByTotalCount {
		return service.ErrValidation("sort_by must be name or total_saree_count")
	}
	page, err := h.categories.List(c.Request().Context(), service.CategoryListQuery{
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

// CategoryPicker lists sarees with the selected ones on top
func (h *Handler) CategoryPicker(c echo.Context) error {
	var req PickerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	selected := req.SelectedIDs
	if c.Request().Method == http.MethodGet {
		selected = nil
	}
	res, err := h.categories.Picker(c.Request().Context(), c.Param("id"), service.PickerQuery{
		Search:      req.Search,
		Variety:     req.Variety,
		Status:      req.Status,
		SelectedIDs: selected,
		Paging:      service.Paging{Page: req.Page, PerPage: req.PerPage},
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
