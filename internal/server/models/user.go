// Package models defines row-level structs shared by repositories and
// services. Optional columns use pointer fields so that absent values
// round-trip as JSON null.
package models

import "time"

// Role values stored in users.role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered account. Password always holds the bcrypt hash,
// except for legacy rows repaired by the startup bootstrap.
type User struct {
	ID        int64
	Email     string
	Password  string
	Name      *string
	Role      string
	CreatedAt time.Time
}
