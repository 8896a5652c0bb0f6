package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/sareecatalog/internal/model"
	"github.com/suteetoe/sareecatalog/internal/service"
)

// clientPage is the client listing envelope, which names its rows "items"
type clientPage struct {
	Page       int           `json:"page"`
	PerPage    int           `json:"per_page"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"total_pages"`
	Items      []model.Saree `json:"items"`
}

// ClientSarees lists the published sarees visible under the optional token
func (h *Handler) ClientSarees(c echo.Context) error {
	paging, err := queryPaging(c)
	if err != nil {
		return err
	}
	minPrice, err := queryFloat(c, "min_price")
	if err != nil {
		return err
	}
	maxPrice, err := queryFloat(c, "max_price")
	if err != nil {
		return err
	}

	page, err := h.sarees.ListClient(c.Request().Context(), service.ClientSareeQuery{
		Token:     c.QueryParam("token"),
		Variety:   c.QueryParam("variety"),
		Varieties: queryList(c, "varieties"),
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
		Paging:    paging,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clientPage{
		Page:       page.Page,
		PerPage:    page.PerPage,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		Items:      page.Data,
	})
}

// ClientSaree returns one visible saree
func (h *Handler) ClientSaree(c echo.Context) error {
	saree, err := h.sarees.GetClient(c.Request().Context(), c.QueryParam("token"), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, saree)
}

// ClientVarieties lists the variety names used by visible sarees
func (h *Handler) ClientVarieties(c echo.Context) error {
	names, err := h.sarees.ClientVarieties(c.Request().Context(), c.QueryParam("token"))
	if err != nil {
		return err
	}
	out := make([]echo.Map, 0, len(names))
	for _, name := range names {
		out = append(out, echo.Map{"name": name})
	}
	return c.JSON(http.StatusOK, out)
}
