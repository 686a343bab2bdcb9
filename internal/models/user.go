package models

import "time"

// User is the database representation of an application user.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Username     string `json:"username"` // Unique
	PasswordHash string `json:"-"`
	Role         string `json:"role"` // "employee" or "manager"
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}
