package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	HeaderDeviceID = "X-Device-ID"
	KeyDeviceID    = "device_id"
)

// Device requires a UUID in the X-Device-ID header and stores its canonical
// form under KeyDeviceID.
func Device() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(HeaderDeviceID)
			if raw == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "missing "+HeaderDeviceID+" header")
			}
			id, err := uuid.Parse(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid "+HeaderDeviceID+" header")
			}
			c.Set(KeyDeviceID, id.String())
			return next(c)
		}
	}
}
