package models

import "fmt"

// Role is the closed set of account roles. Keeping it a named type (rather
// than a free string) forces every entry point through ParseRole.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// ParseRole validates and normalizes a role value coming from the outside.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string { return string(r) }
