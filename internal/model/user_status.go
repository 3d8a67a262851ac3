package model

import "time"

// UserStatus mirrors the 'user_statuses' table.
type UserStatus struct {
	ID                    int       `json:"id"`
	UserStatusName        string    `json:"userStatusName"`
	UserStatusDescription *string   `json:"userStatusDescription"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// UserStatusData is the sanitized input for creating or updating a status.
type UserStatusData struct {
	UserStatusName        string
	UserStatusDescription *string
}
