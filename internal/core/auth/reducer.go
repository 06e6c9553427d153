package auth

import "github.com/foodexpress/delivery-api/internal/core/domain"

// The reducers below take a state by value and return the next one. Editing
// a field clears the error attached to it.

func WithName(s domain.AuthState, name string) domain.AuthState {
	s.User.Name = name
	s.Errors.Name = ""
	return s
}

func WithEmail(s domain.AuthState, email string) domain.AuthState {
	s.User.Email = email
	s.Errors.Email = ""
	return s
}

// WithPassword also clears the confirmation error, since the confirmation is
// compared against the password.
func WithPassword(s domain.AuthState, password string) domain.AuthState {
	s.User.Password = password
	s.Errors.Password = ""
	s.Errors.ConfirmPassword = ""
	return s
}

func WithConfirmPassword(s domain.AuthState, confirm string) domain.AuthState {
	s.ConfirmPassword = confirm
	s.Errors.ConfirmPassword = ""
	return s
}

func WithoutMessage(s domain.AuthState) domain.AuthState {
	s.Message = ""
	return s
}

func withGeneralError(s domain.AuthState, msg string) domain.AuthState {
	s.IsLoading = false
	s.Errors.General = msg
	return s
}
