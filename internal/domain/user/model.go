package user

import (
	"fmt"
	"strings"
)

const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// User gates the write path (manual match entry, user management).
// PasswordHash is a bcrypt digest; the plaintext never reaches storage.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
	Name         string
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if u.PasswordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	switch u.Role {
	case RoleAdmin, RoleViewer:
	default:
		return fmt.Errorf("invalid role: %q", u.Role)
	}
	return nil
}
