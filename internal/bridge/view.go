package bridge

import "github.com/letsfood/storefront/internal/core/domain"

// Form identifies the control a message belongs to.
type Form string

const (
	FormSignIn Form = "signin"
	FormSignUp Form = "signup"
	FormCart   Form = "cart"
)

// MessageKind is error or success.
type MessageKind string

const (
	MessageError   MessageKind = "error"
	MessageSuccess MessageKind = "success"
)

// Message is an inline notice shown next to Form.
type Message struct {
	Form Form        `json:"form"`
	Kind MessageKind `json:"kind"`
	Text string      `json:"text"`
}

// Header is the signed-in greeting or the sign-in prompt.
type Header struct {
	SignedIn bool   `json:"signed_in"`
	Label    string `json:"label"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

// CartLine is one rendered cart row.
type CartLine struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Qty      int     `json:"qty"`
	Subtotal float64 `json:"subtotal"`
}

// CartPanel is the badge count plus the panel contents.
type CartPanel struct {
	Badge int        `json:"badge"`
	Empty bool       `json:"empty"`
	Lines []CartLine `json:"lines"`
	Total float64    `json:"total"`
}

// View is everything a bridge draws, rebuilt from manager state every time.
type View struct {
	Header  Header          `json:"header"`
	Cart    CartPanel       `json:"cart"`
	Message *Message        `json:"message,omitempty"`
	Receipt *domain.Receipt `json:"receipt,omitempty"`
}
