package domain

import (
	"strings"
	"time"
)

// User is a registered account. The directory keys users by email.
type User struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Directory maps email, case-sensitive as entered, to its account.
type Directory map[string]User

// Session is the single signed-in identity for a device.
type Session struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// FirstName returns the first space-separated word of the session name.
func (s *Session) FirstName() string {
	if s == nil {
		return ""
	}
	name := strings.TrimSpace(s.Name)
	if i := strings.IndexByte(name, ' '); i >= 0 {
		return name[:i]
	}
	return name
}
