package ports

import (
	"context"

	"github.com/foodexpress/delivery-api/internal/core/domain"
)

// LoginInput carries the sign-in form.
type LoginInput struct {
	DeviceID string
	Email    string
	Password string
}

// RegisterInput carries the sign-up form.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// AuthResult is the state reached by an auth operation. Token is set only
// when the state is authenticated.
type AuthResult struct {
	State domain.AuthState
	Token string
}

// AuthService runs the auth operations on behalf of one device. Operations
// return the resulting state even when they also return an error.
type AuthService interface {
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Logout(ctx context.Context, deviceID string) (*AuthResult, error)
	Restore(ctx context.Context, deviceID string) (*AuthResult, error)
	Profile(ctx context.Context, deviceID, email string) (*domain.User, error)
}
