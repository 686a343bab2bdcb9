package domain

import "time"

// UserRole gates which operations a user may perform.
// Employees submit expenses; managers additionally decide them and edit policies.
type UserRole string

const (
	RoleEmployee UserRole = "employee"
	RoleManager  UserRole = "manager"
)

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	return r == RoleEmployee || r == RoleManager
}

// User represents a user of the application in the domain.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Name         string   `json:"name"`
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}
