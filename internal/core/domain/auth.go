package domain

// DraftUser holds the account fields being typed into a sign-in or sign-up form.
type DraftUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

// FieldErrors carries one optional message per form field. An empty string
// means the field has no error.
type FieldErrors struct {
	Name            string `json:"name,omitempty"`
	Email           string `json:"email,omitempty"`
	Password        string `json:"password,omitempty"`
	ConfirmPassword string `json:"confirm_password,omitempty"`
	General         string `json:"general,omitempty"`
}

// HasFieldErrors reports whether any per-field message is set. General is
// not a field error.
func (e FieldErrors) HasFieldErrors() bool {
	return e.Name != "" || e.Email != "" || e.Password != "" || e.ConfirmPassword != ""
}

// AuthState is the complete state of one authentication form. It is a value
// type: every change produces a new AuthState.
type AuthState struct {
	User            DraftUser   `json:"user"`
	ConfirmPassword string      `json:"-"`
	IsLoading       bool        `json:"is_loading"`
	IsAuthenticated bool        `json:"is_authenticated"`
	Message         string      `json:"message,omitempty"`
	Errors          FieldErrors `json:"errors"`
}
