package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/foodexpress/delivery-api/internal/core/ports"
)

// CartHandler serves the cart of the calling device.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// Get handles GET /cart.
//
// @Summary      Get the cart
// @Tags         cart
// @Produce      json
// @Param        X-Device-ID  header    string  true  "Device UUID"
// @Success      200          {object}  cartResponse
// @Failure      400          {object}  errorResponse
// @Router       /cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	device, err := ctxDevice(c)
	if err != nil {
		return err
	}
	cart, err := h.service.Get(c.Request().Context(), device)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// Add handles POST /cart/items. Adding a product already in the cart bumps
// its quantity.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Device-ID  header    string          true  "Device UUID"
// @Param        body         body      addItemRequest  true  "Product to add"
// @Success      200          {object}  cartResponse
// @Failure      400          {object}  errorResponse
// @Failure      404          {object}  errorResponse
// @Failure      422          {object}  errorResponse
// @Router       /cart/items [post]
func (h *CartHandler) Add(c echo.Context) error {
	device, err := ctxDevice(c)
	if err != nil {
		return err
	}
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	cart, err := h.service.Add(c.Request().Context(), device, req.ProductID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// Remove handles DELETE /cart/items/:product_id. The whole line goes,
// whatever its quantity.
//
// @Summary      Remove a product from the cart
// @Tags         cart
// @Produce      json
// @Param        X-Device-ID  header    string  true  "Device UUID"
// @Param        product_id   path      int     true  "Product id"
// @Success      200          {object}  cartResponse
// @Failure      400          {object}  errorResponse
// @Router       /cart/items/{product_id} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	device, err := ctxDevice(c)
	if err != nil {
		return err
	}
	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil || productID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	cart, err := h.service.Remove(c.Request().Context(), device, productID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// ClearNotification handles DELETE /cart/notification.
//
// @Summary      Acknowledge the "item added" notification
// @Tags         cart
// @Produce      json
// @Param        X-Device-ID  header    string  true  "Device UUID"
// @Success      200          {object}  cartResponse
// @Router       /cart/notification [delete]
func (h *CartHandler) ClearNotification(c echo.Context) error {
	device, err := ctxDevice(c)
	if err != nil {
		return err
	}
	cart, err := h.service.ClearNotification(c.Request().Context(), device)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}
