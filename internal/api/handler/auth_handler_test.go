package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/foodexpress/delivery-api/internal/api/middleware"
	"github.com/foodexpress/delivery-api/internal/core/domain"
	"github.com/foodexpress/delivery-api/internal/core/ports"
)

const testDevice = "0b7f3c8e-4d2a-4f7e-9c1a-2f5d6e7a8b9c"

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn    func(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error)
	logoutFn   func(ctx context.Context, deviceID string) (*ports.AuthResult, error)
	restoreFn  func(ctx context.Context, deviceID string) (*ports.AuthResult, error)
	profileFn  func(ctx context.Context, deviceID, email string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	return s.loginFn(ctx, in)
}

func (s *stubAuthService) Logout(ctx context.Context, deviceID string) (*ports.AuthResult, error) {
	return s.logoutFn(ctx, deviceID)
}

func (s *stubAuthService) Restore(ctx context.Context, deviceID string) (*ports.AuthResult, error) {
	return s.restoreFn(ctx, deviceID)
}

func (s *stubAuthService) Profile(ctx context.Context, deviceID, email string) (*domain.User, error) {
	return s.profileFn(ctx, deviceID, email)
}

func newJSONContext(method, target, body string) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e, e.NewContext(req, rec), rec
}

func decodeAuth(t *testing.T, rec *httptest.ResponseRecorder) authResponse {
	t.Helper()
	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			if in.Name != "Alice Smith" || in.Email != "alice@example.com" || in.ConfirmPassword != "Pass1234" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AuthResult{State: domain.AuthState{Message: "registration successful"}}, nil
		},
	}
	handler := NewAuthHandler(stub)

	_, c, rec := newJSONContext(http.MethodPost, "/auth/register",
		`{"name":"Alice Smith","email":"alice@example.com","password":"Pass1234","confirm_password":"Pass1234"}`)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	resp := decodeAuth(t, rec)
	if resp.State.Message != "registration successful" || resp.Token != "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Register_Failures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		state    domain.AuthState
		wantCode int
	}{
		{"field errors", domain.ErrValidation, domain.AuthState{Errors: domain.FieldErrors{Email: "bad email"}}, http.StatusUnprocessableEntity},
		{"duplicate", domain.ErrUserExists, domain.AuthState{Errors: domain.FieldErrors{General: "taken"}}, http.StatusConflict},
		{"store down", errors.Join(domain.ErrUnavailable, errors.New("dial tcp")), domain.AuthState{Errors: domain.FieldErrors{General: "try later"}}, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubAuthService{
				registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
					return &ports.AuthResult{State: tt.state}, tt.err
				},
			}
			_, c, rec := newJSONContext(http.MethodPost, "/auth/register", `{"email":"x"}`)

			if err := NewAuthHandler(stub).Register(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			resp := decodeAuth(t, rec)
			if resp.Error == "" {
				t.Fatalf("expected error message")
			}
			if resp.State.Errors != tt.state.Errors {
				t.Fatalf("state not returned: %+v", resp.State)
			}
		})
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	e, c, rec := newJSONContext(http.MethodPost, "/auth/register", "not-json")

	if err := NewAuthHandler(stub).Register(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
			if in.DeviceID != testDevice || in.Email != "alice@example.com" || in.Password != "Pass1234" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AuthResult{State: domain.AuthState{IsAuthenticated: true}, Token: "token123"}, nil
		},
	}
	_, c, rec := newJSONContext(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"Pass1234"}`)
	c.Set(middleware.KeyDeviceID, testDevice)

	if err := NewAuthHandler(stub).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeAuth(t, rec)
	if resp.Token != "token123" || !resp.State.IsAuthenticated {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
			return &ports.AuthResult{State: domain.AuthState{Errors: domain.FieldErrors{General: "incorrect email or password"}}}, domain.ErrInvalidCredentials
		},
	}
	_, c, rec := newJSONContext(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"bad"}`)
	c.Set(middleware.KeyDeviceID, testDevice)

	if err := NewAuthHandler(stub).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	resp := decodeAuth(t, rec)
	if resp.Error != "incorrect email or password" || resp.State.IsAuthenticated {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Login_MissingDevice(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	e, c, rec := newJSONContext(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"x"}`)

	if err := NewAuthHandler(stub).Login(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_LogoutAndRestore(t *testing.T) {
	var loggedOut, restored string
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, deviceID string) (*ports.AuthResult, error) {
			loggedOut = deviceID
			return &ports.AuthResult{State: domain.AuthState{Message: "you have signed out"}}, nil
		},
		restoreFn: func(ctx context.Context, deviceID string) (*ports.AuthResult, error) {
			restored = deviceID
			return &ports.AuthResult{State: domain.AuthState{IsAuthenticated: true}, Token: "t"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	_, c, rec := newJSONContext(http.MethodPost, "/auth/logout", "")
	c.Set(middleware.KeyDeviceID, testDevice)
	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || loggedOut != testDevice {
		t.Fatalf("logout: code %d device %q", rec.Code, loggedOut)
	}
	if decodeAuth(t, rec).State.IsAuthenticated {
		t.Fatalf("expected signed-out state")
	}

	_, c, rec = newJSONContext(http.MethodPost, "/auth/session/restore", "")
	c.Set(middleware.KeyDeviceID, testDevice)
	if err := handler.Restore(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || restored != testDevice {
		t.Fatalf("restore: code %d device %q", rec.Code, restored)
	}
	if resp := decodeAuth(t, rec); resp.Token != "t" {
		t.Fatalf("expected token, got %+v", resp)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	stub := &stubAuthService{
		profileFn: func(ctx context.Context, deviceID, email string) (*domain.User, error) {
			if deviceID != testDevice {
				return nil, domain.ErrInvalidCredentials
			}
			if email != "alice@example.com" {
				return nil, domain.ErrUserNotFound
			}
			return &domain.User{ID: "u-1", Name: "Alice Smith", Email: email, PasswordHash: "hash"}, nil
		},
	}
	_, c, rec := newJSONContext(http.MethodGet, "/me", "")
	c.Set(middleware.KeyEmail, "alice@example.com")
	c.Set(middleware.KeyDeviceID, testDevice)

	if err := NewAuthHandler(stub).Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}

	_, c, _ = newJSONContext(http.MethodGet, "/me", "")
	c.Set(middleware.KeyEmail, "ghost@example.com")
	c.Set(middleware.KeyDeviceID, testDevice)
	if err := NewAuthHandler(stub).Me(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	// A token minted without a device claim cannot be tied to a session.
	_, c, _ = newJSONContext(http.MethodGet, "/me", "")
	c.Set(middleware.KeyEmail, "alice@example.com")
	err := NewAuthHandler(stub).Me(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
