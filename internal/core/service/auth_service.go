package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/foodexpress/delivery-api/internal/api/metrics"
	"github.com/foodexpress/delivery-api/internal/core/auth"
	"github.com/foodexpress/delivery-api/internal/core/domain"
	"github.com/foodexpress/delivery-api/internal/core/ports"
)

// AuthService runs each auth operation on a fresh auth.Machine bound to the
// caller's device session, and issues a token for authenticated states.
type AuthService struct {
	users     ports.UserRepository
	sessions  ports.SessionRegistry
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionRegistry, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, sessions: sessions, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *AuthService) machine(deviceID string) *auth.Machine {
	return auth.NewMachine(s.users, s.sessions.ForDevice(deviceID), s.log.With().Str("device_id", deviceID).Logger())
}

func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	m := s.machine(in.DeviceID)
	m.SetEmail(in.Email)
	m.SetPassword(in.Password)

	user, err := m.ValidateAndLogin(ctx)
	observe("login", err)
	if err != nil {
		return &ports.AuthResult{State: m.State()}, err
	}
	s.log.Info().Str("user_id", user.ID).Str("device_id", in.DeviceID).Msg("user signed in")
	return s.authenticated(m.State(), user, in.DeviceID)
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	// registration never touches the device session
	m := s.machine("")
	m.SetName(in.Name)
	m.SetEmail(in.Email)
	m.SetPassword(in.Password)
	m.SetConfirmPassword(in.ConfirmPassword)

	user, err := m.ValidateAndRegister(ctx)
	observe("register", err)
	if err != nil {
		return &ports.AuthResult{State: m.State()}, err
	}
	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return &ports.AuthResult{State: m.State()}, nil
}

func (s *AuthService) Logout(ctx context.Context, deviceID string) (*ports.AuthResult, error) {
	m := s.machine(deviceID)
	err := m.Logout(ctx)
	observe("logout", err)
	return &ports.AuthResult{State: m.State()}, err
}

func (s *AuthService) Restore(ctx context.Context, deviceID string) (*ports.AuthResult, error) {
	m := s.machine(deviceID)
	user, err := m.RestoreSession(ctx)
	if err != nil {
		observe("restore", err)
		return &ports.AuthResult{State: m.State()}, err
	}
	if user == nil {
		metrics.AuthOperationsTotal.WithLabelValues("restore", "none").Inc()
		return &ports.AuthResult{State: m.State()}, nil
	}
	observe("restore", nil)
	return s.authenticated(m.State(), user, deviceID)
}

// Profile returns the user behind a token issued to deviceID. The token is
// honoured only while that device's session still names email, so a logout
// revokes it.
func (s *AuthService) Profile(ctx context.Context, deviceID, email string) (*domain.User, error) {
	if deviceID == "" {
		return nil, fmt.Errorf("profile: token has no device: %w", domain.ErrInvalidCredentials)
	}
	id, found, err := s.sessions.ForDevice(deviceID).Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("profile: read session: %w: %w", domain.ErrUnavailable, err)
	}
	if !found || !strings.EqualFold(strings.TrimSpace(id), strings.TrimSpace(email)) {
		return nil, fmt.Errorf("profile: no active session for device: %w", domain.ErrInvalidCredentials)
	}
	return s.users.FindByEmail(ctx, email)
}

func (s *AuthService) authenticated(state domain.AuthState, user *domain.User, deviceID string) (*ports.AuthResult, error) {
	token, err := s.generateToken(user, deviceID)
	if err != nil {
		return &ports.AuthResult{State: state}, err
	}
	return &ports.AuthResult{State: state, Token: token}, nil
}

func (s *AuthService) generateToken(user *domain.User, deviceID string) (string, error) {
	claims := jwt.MapClaims{
		"sub":       user.ID,
		"email":     user.Email,
		"name":      user.Name,
		"device_id": deviceID,
		"exp":       time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func observe(op string, err error) {
	metrics.AuthOperationsTotal.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUserExists):
		return "rejected"
	default:
		return "unavailable"
	}
}
