package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodexpress/delivery-api/internal/core/domain"
	"github.com/foodexpress/delivery-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account. It does not sign the caller in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Sign-up form"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  authResponse
// @Failure      422   {object}  authResponse
// @Failure      503   {object}  authResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	return respondAuth(c, http.StatusCreated, res, err)
}

// Login checks the credentials and binds the session to the calling device.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        X-Device-ID  header    string        true  "Device UUID"
// @Param        body         body      loginRequest  true  "Sign-in form"
// @Success      200          {object}  authResponse
// @Failure      400          {object}  errorResponse
// @Failure      401          {object}  authResponse
// @Failure      422          {object}  authResponse
// @Failure      503          {object}  authResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	device, err := ctxDevice(c)
	if err != nil {
		return err
	}
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		DeviceID: device,
		Email:    req.Email,
		Password: req.Password,
	})
	return respondAuth(c, http.StatusOK, res, err)
}

// Logout forgets the session of the calling device. Calling it twice is fine.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Param        X-Device-ID  header    string  true  "Device UUID"
// @Success      200          {object}  authResponse
// @Failure      503          {object}  authResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	device, err := ctxDevice(c)
	if err != nil {
		return err
	}
	res, err := h.authService.Logout(c.Request().Context(), device)
	return respondAuth(c, http.StatusOK, res, err)
}

// Restore signs the device back in from its persisted session, if any.
//
// @Summary      Restore session
// @Tags         auth
// @Produce      json
// @Param        X-Device-ID  header    string  true  "Device UUID"
// @Success      200          {object}  authResponse
// @Failure      503          {object}  authResponse
// @Router       /auth/session/restore [post]
func (h *AuthHandler) Restore(c echo.Context) error {
	device, err := ctxDevice(c)
	if err != nil {
		return err
	}
	res, err := h.authService.Restore(c.Request().Context(), device)
	return respondAuth(c, http.StatusOK, res, err)
}

// Me returns the profile of the signed-in user. The token is accepted only
// while its device still has a session for the same user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}
	device, err := ctxTokenDevice(c)
	if err != nil {
		return err
	}
	user, err := h.authService.Profile(c.Request().Context(), device, email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// respondAuth renders the state reached by an auth operation. Failures that
// are not auth outcomes go to the central error handler.
func respondAuth(c echo.Context, okStatus int, res *ports.AuthResult, err error) error {
	if err == nil {
		return c.JSON(okStatus, authResponse{State: res.State, Token: res.Token})
	}

	status, ok := authStatus(err)
	if !ok || res == nil {
		return err
	}
	msg := res.State.Errors.General
	if msg == "" {
		msg = err.Error()
	}
	return c.JSON(status, authResponse{Error: msg, State: res.State})
}

func authStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, true
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, true
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, true
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable, true
	}
	return 0, false
}
