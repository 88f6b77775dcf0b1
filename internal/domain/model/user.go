package model

import (
	"time"

	"smart-ocr-client/internal/domain"
)

// User is the authenticated identity returned by the backend on login.
// Username is the case-sensitive key that partitions all per-user storage.
type User struct {
	Username string    `json:"username"`
	Email    string    `json:"email,omitempty"`
	Name     string    `json:"name,omitempty"`
	LoginAt  time.Time `json:"login_at"`
}

func NewUser(username, email, name string) (*User, error) {
	if username == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &User{
		Username: username,
		Email:    email,
		Name:     name,
		LoginAt:  time.Now(),
	}, nil
}

func (u *User) IsZero() bool { return u == nil || u.Username == "" }
