package auth

import "strings"

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Identity is the verified caller, decoded once at the middleware boundary
// and passed by value into handlers.
type Identity struct {
	ID    int64
	Email string
	Role  Role
}

func ParseRole(role string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case string(RoleStudent):
		return RoleStudent, true
	case string(RoleAdmin):
		return RoleAdmin, true
	default:
		return "", false
	}
}
