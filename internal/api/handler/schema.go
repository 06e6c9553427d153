package handler

import "github.com/foodexpress/delivery-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse always carries the full form state. Error is set on failures
// and Token only when the state is authenticated.
type authResponse struct {
	Error string           `json:"error,omitempty"`
	State domain.AuthState `json:"state"`
	Token string           `json:"token,omitempty"`
}

// --- Cart ---

type addItemRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
}

type cartResponse struct {
	Lines     []domain.CartLine `json:"lines"`
	Total     float64           `json:"total"`
	Count     int               `json:"count"`
	LastAdded string            `json:"last_added,omitempty"`
}

func toCartResponse(c domain.Cart) cartResponse {
	lines := c.Lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return cartResponse{
		Lines:     lines,
		Total:     c.Total(),
		Count:     c.Count(),
		LastAdded: c.LastAdded,
	}
}
