package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is an employee's authorization level.
type Role string

const (
	RoleStaff   Role = "staff"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Elevated reports whether the role may approve or reject payments and read
// other employees' queues.
func (r Role) Elevated() bool {
	return r == RoleManager || r == RoleAdmin
}

type Employee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `gorm:"uniqueIndex" json:"email"`
	Role      Role      `gorm:"index" json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
