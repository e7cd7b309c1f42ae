package handler

import (
	"encoding/json"

	"github.com/letsfood/storefront/internal/bridge"
	"github.com/letsfood/storefront/internal/catalog"
	"github.com/letsfood/storefront/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// commandErrorResponse is returned when a form or cart command is rejected.
// View is the state after the rejected command, so the client can redraw.
type commandErrorResponse struct {
	Error   string      `json:"error"`
	Kind    string      `json:"kind"`
	Form    bridge.Form `json:"form"`
	Message string      `json:"message"`
	View    bridge.View `json:"view"`
}

// --- Request / Response types ---

type signUpRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// price accepts a JSON number or a displayed price string such as "$9.50".
// Anything else reads as 0.
type price float64

func (p *price) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*p = price(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = price(catalog.ParsePrice(s))
		return nil
	}
	*p = 0
	return nil
}

type addItemRequest struct {
	MenuID string `json:"menu_id"`
	ID     string `json:"id"     validate:"max=200"`
	Title  string `json:"title"  validate:"required_without=MenuID,max=200"`
	Price  price  `json:"price"`
}

type changeQuantityRequest struct {
	Delta int `json:"delta" validate:"min=-1000,max=1000"`
}

type deviceResponse struct {
	DeviceID string      `json:"device_id"`
	Token    string      `json:"token"`
	View     bridge.View `json:"view"`
}

type menuResponse struct {
	Items []catalog.Item `json:"items"`
}

type checkoutResponse struct {
	Receipt *domain.Receipt `json:"receipt"`
	View    bridge.View     `json:"view"`
}
