// Package models holds the records stored by the pass directory.
package models

import "time"

// User is a directory account. Role is common.RoleAdmin or common.RoleGuard.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	Role         string
	Company      string
	CreatedAt    time.Time
}
