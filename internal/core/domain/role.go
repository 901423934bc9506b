package domain

import "errors"

var ErrRoleNotFound = errors.New("role not found")

// Role is a deployment-time constant record. The full set (admin, staff,
// customer) is seeded with the database and loaded once at startup.
type Role struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
