package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodexpress/delivery-api/internal/api/middleware"
)

// ctxDevice returns the device id injected by the Device middleware. An
// empty value means the route was mounted without it.
func ctxDevice(c echo.Context) (string, error) {
	device, _ := c.Get(middleware.KeyDeviceID).(string)
	if device == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "missing device identity")
	}
	return device, nil
}

// ctxEmail returns the signed-in email injected by the Auth middleware.
func ctxEmail(c echo.Context) (string, error) {
	email, _ := c.Get(middleware.KeyEmail).(string)
	if email == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return email, nil
}

// ctxTokenDevice returns the device the bearer token was issued to.
func ctxTokenDevice(c echo.Context) (string, error) {
	device, _ := c.Get(middleware.KeyDeviceID).(string)
	if device == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "token is not bound to a device")
	}
	return device, nil
}
