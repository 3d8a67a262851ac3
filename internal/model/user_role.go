package model

import "time"

// UserRole mirrors the 'user_roles' table.
type UserRole struct {
	ID                  int       `json:"id"`
	UserRoleName        string    `json:"userRoleName"`
	UserRoleDescription *string   `json:"userRoleDescription"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// UserRoleData is the sanitized input for creating or updating a role.
type UserRoleData struct {
	UserRoleName        string
	UserRoleDescription *string
}
