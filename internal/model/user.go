package model

import "time"

// User mirrors the 'users' table. The password hash is never serialized;
// every JSON surface relies on the "-" tag to keep it out of responses.
type User struct {
	ID           int         `json:"id"`
	UserRoleID   int         `json:"userRoleId"`
	UserStatusID int         `json:"userStatusId"`
	Username     string      `json:"username"`
	Password     string      `json:"-"`
	Name         string      `json:"name"`
	Photo        *string     `json:"photo"`
	Email        string      `json:"email"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
	UserRole     *UserRole   `json:"userRole,omitempty"`
	UserStatus   *UserStatus `json:"userStatus,omitempty"`
	Posts        []Post      `json:"posts,omitempty"`
}

// UserData carries the sanitized, coerced fields of a create/update request.
// Password holds the bcrypt hash, never the plaintext. On update an empty
// Password or a nil Photo means "leave unchanged".
type UserData struct {
	UserRoleID   int
	UserStatusID int
	Username     string
	Password     string
	Name         string
	Photo        *string
	Email        string
}
