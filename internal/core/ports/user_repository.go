package ports

import (
	"context"

	"github.com/foodexpress/delivery-api/internal/core/domain"
)

// UserRepository is the user-record store.
type UserRepository interface {
	// Insert stores a new user. It returns domain.ErrUserExists when the email is taken.
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail returns domain.ErrUserNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Exists(ctx context.Context, email string) (bool, error)
	// ValidateCredentials returns the user whose email and password match, or
	// domain.ErrInvalidCredentials.
	ValidateCredentials(ctx context.Context, email, password string) (*domain.User, error)
	Ping(ctx context.Context) error
}
