package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodexpress/delivery-api/internal/core/ports"
)

type CatalogHandler struct {
	catalog ports.Catalog
}

func NewCatalogHandler(catalog ports.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Menu handles GET /menu.
//
// @Summary      List dishes
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Product
// @Router       /menu [get]
func (h *CatalogHandler) Menu(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.Menu())
}

// Restaurants handles GET /restaurants.
//
// @Summary      List nearby restaurants
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Restaurant
// @Router       /restaurants [get]
func (h *CatalogHandler) Restaurants(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.Restaurants())
}
