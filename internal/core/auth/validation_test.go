package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foodexpress/delivery-api/internal/core/domain"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"first and last", "Ana Pérez", true},
		{"three words", "María José Núñez", true},
		{"surrounding spaces trimmed", "  Ana Pérez  ", true},
		{"single word", "Ana", false},
		{"double space", "Ana  Pérez", false},
		{"digits", "Ana P3rez", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, ValidateName(tt.input) == "")
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.Empty(t, ValidateEmail("test@correo.com"))
	assert.Empty(t, ValidateEmail("TEST@Example.ORG"))
	assert.NotEmpty(t, ValidateEmail("correoSinArroba"))
	assert.NotEmpty(t, ValidateEmail("a@b.c"))
	assert.NotEmpty(t, ValidateEmail("a b@c.com"))
}

func TestValidatePassword(t *testing.T) {
	assert.Empty(t, ValidatePassword("Abc12345"))
	assert.NotEmpty(t, ValidatePassword("abc"), "too short")
	assert.NotEmpty(t, ValidatePassword("abcdefgh1"), "no uppercase")
	assert.NotEmpty(t, ValidatePassword("Abcdefghi"), "no digit")
	assert.NotEmpty(t, ValidatePassword("Abc1\n2345"), "multi-line")
	assert.Equal(t, msgPasswordTooLong, ValidatePassword("Abc12345"+strings.Repeat("x", 65)))
	assert.Empty(t, ValidatePassword("Abc12345"+strings.Repeat("x", 64)), "exactly 72 bytes")
}

func TestValidateConfirmation(t *testing.T) {
	assert.Empty(t, ValidateConfirmation("Abc12345", "Abc12345"))
	assert.NotEmpty(t, ValidateConfirmation("Abc12345", "Abc54321"))
}

func TestValidateLogin(t *testing.T) {
	errs := ValidateLogin("", " ")
	assert.Equal(t, msgEmailRequired, errs.Email)
	assert.Equal(t, msgPasswordRequired, errs.Password)

	errs = ValidateLogin("nope", "x")
	assert.Equal(t, msgEmailInvalid, errs.Email)
	assert.Empty(t, errs.Password, "login does not enforce password strength")

	assert.False(t, ValidateLogin("ana@example.com", "x").HasFieldErrors())
}

func TestValidateRegistration(t *testing.T) {
	errs := ValidateRegistration(domain.DraftUser{Name: "Ana Pérez", Email: "ana@example.com", Password: "Abc12345"}, "Abc12345")
	assert.False(t, errs.HasFieldErrors())

	errs = ValidateRegistration(domain.DraftUser{Name: "Ana", Email: "ana", Password: "abc"}, "abd")
	assert.NotEmpty(t, errs.Name)
	assert.NotEmpty(t, errs.Email)
	assert.NotEmpty(t, errs.Password)
	assert.NotEmpty(t, errs.ConfirmPassword)
}
