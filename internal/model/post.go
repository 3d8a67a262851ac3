package model

import "time"

// Post mirrors the 'posts' table. UserID is always taken from the
// authenticated principal at creation, never from client input.
type Post struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	User      *User     `json:"user,omitempty"`
}

// PostData is the sanitized input for creating or updating a post.
type PostData struct {
	UserID int
	Title  string
	Body   string
}
