package authz

import "gymapi/internal/errors"

// Role is the closed set of account roles. Authorization and query scoping
// switch exhaustively on it so a new role forces review of every policy site.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTrainer Role = "trainer"
	RoleTrainee Role = "trainee"
)

// ParseRole converts a raw string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleTrainer, RoleTrainee:
		return Role(s), nil
	}
	return "", errors.ErrInvalidRole
}

// Valid reports whether the role is one of the known constants.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTrainer, RoleTrainee:
		return true
	}
	return false
}
