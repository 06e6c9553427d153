// Package auth holds the authentication form state machine: field
// validation, pure reducers over domain.AuthState and the Machine that drives
// sign-in, sign-up, sign-out and session restore against a user store and a
// device session store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/foodexpress/delivery-api/internal/core/domain"
	"github.com/foodexpress/delivery-api/internal/core/ports"
)

const (
	msgBadCredentials = "incorrect email or password"
	msgEmailTaken     = "this email is already registered"
	msgUnavailable    = "service unavailable, please try again later"
	msgRegistered     = "registration successful, you can now sign in"
	msgSignedOut      = "you have signed out"
	msgRestored       = "session restored"
)

// Machine owns a single AuthState. The state is replaced whole under the
// lock; calls to the user store and the session store run without it.
type Machine struct {
	users   ports.UserRepository
	session ports.SessionStore
	log     zerolog.Logger

	mu    sync.Mutex
	state domain.AuthState
}

func NewMachine(users ports.UserRepository, session ports.SessionStore, log zerolog.Logger) *Machine {
	return &Machine{users: users, session: session, log: log}
}

// State returns a copy of the current state.
func (m *Machine) State() domain.AuthState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) update(fn func(domain.AuthState) domain.AuthState) domain.AuthState {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = fn(m.state)
	return m.state
}

func (m *Machine) SetName(name string) {
	m.update(func(s domain.AuthState) domain.AuthState { return WithName(s, name) })
}

func (m *Machine) SetEmail(email string) {
	m.update(func(s domain.AuthState) domain.AuthState { return WithEmail(s, email) })
}

func (m *Machine) SetPassword(password string) {
	m.update(func(s domain.AuthState) domain.AuthState { return WithPassword(s, password) })
}

func (m *Machine) SetConfirmPassword(confirm string) {
	m.update(func(s domain.AuthState) domain.AuthState { return WithConfirmPassword(s, confirm) })
}

func (m *Machine) ClearMessage() {
	m.update(WithoutMessage)
}

// Reset discards the form and every message.
func (m *Machine) Reset() {
	m.update(func(domain.AuthState) domain.AuthState { return domain.AuthState{} })
}

// begin marks the state as loading and applies the field errors found by
// validate. It reports whether the form is valid.
func (m *Machine) begin(validate func(domain.AuthState) domain.FieldErrors) (domain.AuthState, bool) {
	s := m.update(func(s domain.AuthState) domain.AuthState {
		s.IsLoading = true
		s.Errors = validate(s)
		if s.Errors.HasFieldErrors() {
			s.IsLoading = false
		}
		return s
	})
	return s, !s.Errors.HasFieldErrors()
}

func (m *Machine) fail(msg string) {
	m.update(func(s domain.AuthState) domain.AuthState { return withGeneralError(s, msg) })
}

func (m *Machine) unavailable(op string, err error) error {
	m.log.Error().Err(err).Str("op", op).Msg("auth dependency failed")
	m.fail(msgUnavailable)
	return fmt.Errorf("%s: %w: %w", op, domain.ErrUnavailable, err)
}

// ValidateAndLogin validates the sign-in form, checks the credentials and, on
// success, persists the session pointer and marks the state authenticated.
func (m *Machine) ValidateAndLogin(ctx context.Context) (*domain.User, error) {
	s, ok := m.begin(func(s domain.AuthState) domain.FieldErrors {
		return ValidateLogin(s.User.Email, s.User.Password)
	})
	if !ok {
		return nil, domain.ErrValidation
	}

	email := strings.TrimSpace(s.User.Email)
	user, err := m.users.ValidateCredentials(ctx, email, s.User.Password)
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUserNotFound):
		m.fail(msgBadCredentials)
		return nil, domain.ErrInvalidCredentials
	case err != nil:
		return nil, m.unavailable("login", err)
	}

	if err := m.session.Save(ctx, user.Email); err != nil {
		return nil, m.unavailable("login: save session", err)
	}

	m.update(func(s domain.AuthState) domain.AuthState {
		return authenticated(s, user, fmt.Sprintf("welcome back, %s!", user.Name))
	})
	return user, nil
}

// ValidateAndRegister validates the sign-up form and creates the account
// unless the email is already registered. Registration does not sign in.
func (m *Machine) ValidateAndRegister(ctx context.Context) (*domain.User, error) {
	s, ok := m.begin(func(s domain.AuthState) domain.FieldErrors {
		return ValidateRegistration(s.User, s.ConfirmPassword)
	})
	if !ok {
		return nil, domain.ErrValidation
	}

	email := strings.TrimSpace(s.User.Email)
	exists, err := m.users.Exists(ctx, email)
	if err != nil {
		return nil, m.unavailable("register: exists", err)
	}
	if exists {
		m.fail(msgEmailTaken)
		return nil, domain.ErrUserExists
	}

	hash, err := HashPassword(s.User.Password)
	if err != nil {
		return nil, m.unavailable("register: hash", err)
	}

	now := time.Now().UTC()
	created, err := m.users.Insert(ctx, &domain.User{
		Name:         strings.TrimSpace(s.User.Name),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	switch {
	case errors.Is(err, domain.ErrUserExists):
		m.fail(msgEmailTaken)
		return nil, domain.ErrUserExists
	case err != nil:
		return nil, m.unavailable("register: insert", err)
	}

	m.update(func(domain.AuthState) domain.AuthState {
		return domain.AuthState{Message: msgRegistered}
	})
	return created, nil
}

// Logout clears the persisted session pointer and resets the state. It is
// safe to call when no session exists.
func (m *Machine) Logout(ctx context.Context) error {
	err := m.session.Clear(ctx)
	m.update(func(domain.AuthState) domain.AuthState {
		return domain.AuthState{Message: msgSignedOut}
	})
	if err != nil {
		return m.unavailable("logout", err)
	}
	return nil
}

// RestoreSession re-authenticates from the persisted session pointer. It
// returns a nil user and a nil error when there is nothing to restore.
func (m *Machine) RestoreSession(ctx context.Context) (*domain.User, error) {
	email, found, err := m.session.Read(ctx)
	if err != nil {
		return nil, m.unavailable("restore: read session", err)
	}
	if !found {
		return nil, nil
	}

	user, err := m.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		// the account is gone; drop the stale pointer
		if err := m.session.Clear(ctx); err != nil {
			m.log.Warn().Err(err).Msg("failed to clear stale session")
		}
		return nil, nil
	case err != nil:
		return nil, m.unavailable("restore: find user", err)
	}

	m.update(func(s domain.AuthState) domain.AuthState {
		return authenticated(s, user, msgRestored)
	})
	return user, nil
}

func authenticated(s domain.AuthState, user *domain.User, msg string) domain.AuthState {
	s.IsLoading = false
	s.IsAuthenticated = true
	s.User = domain.DraftUser{Name: user.Name, Email: user.Email}
	s.ConfirmPassword = ""
	s.Errors = domain.FieldErrors{}
	s.Message = msg
	return s
}
