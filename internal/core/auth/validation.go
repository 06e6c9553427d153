package auth

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/foodexpress/delivery-api/internal/core/domain"
)

const (
	msgNameInvalid        = "please enter your first and last name"
	msgEmailInvalid       = "please enter a valid email address"
	msgEmailRequired      = "email is required"
	msgPasswordWeak       = "password must have at least 8 characters, one uppercase letter and one number"
	msgPasswordRequired   = "password is required"
	msgPasswordTooLong    = "password must be at most 72 bytes"
	msgPasswordsDontMatch = "passwords do not match"
)

var (
	nameRegex  = regexp.MustCompile(`^[A-Za-zÁÉÍÓÚáéíóúÑñÜü]+(?: [A-Za-zÁÉÍÓÚáéíóúÑñÜü]+)+$`)
	emailRegex = regexp.MustCompile(`(?i)^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)
)

// ValidateName requires at least two words separated by single spaces.
func ValidateName(name string) string {
	if !nameRegex.MatchString(strings.TrimSpace(name)) {
		return msgNameInvalid
	}
	return ""
}

func ValidateEmail(email string) string {
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return msgEmailInvalid
	}
	return ""
}

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// ValidatePassword requires 8+ characters on a single line, an ASCII
// uppercase letter and an ASCII digit, within bcrypt's byte limit.
func ValidatePassword(password string) string {
	if len(password) > maxPasswordBytes {
		return msgPasswordTooLong
	}
	if utf8.RuneCountInString(password) < 8 || strings.ContainsAny(password, "\n\r") {
		return msgPasswordWeak
	}
	var upper, digit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	if !upper || !digit {
		return msgPasswordWeak
	}
	return ""
}

func ValidateConfirmation(password, confirm string) string {
	if password != confirm {
		return msgPasswordsDontMatch
	}
	return ""
}

// ValidateLogin checks the sign-in form. Only presence and email format are
// checked; password strength is a sign-up concern.
func ValidateLogin(email, password string) domain.FieldErrors {
	var errs domain.FieldErrors
	if strings.TrimSpace(email) == "" {
		errs.Email = msgEmailRequired
	} else {
		errs.Email = ValidateEmail(email)
	}
	if strings.TrimSpace(password) == "" {
		errs.Password = msgPasswordRequired
	}
	return errs
}

// ValidateRegistration checks every field of the sign-up form.
func ValidateRegistration(u domain.DraftUser, confirm string) domain.FieldErrors {
	return domain.FieldErrors{
		Name:            ValidateName(u.Name),
		Email:           ValidateEmail(u.Email),
		Password:        ValidatePassword(u.Password),
		ConfirmPassword: ValidateConfirmation(u.Password, confirm),
	}
}
