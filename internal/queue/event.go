// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names. The routing key equals the queue name on the default exchange.
const (
	UserCreatedQueue = "user.created"
	PostCreatedQueue = "post.created"
)

// UserCreatedEvent is published after a user row is committed. It carries
// enough for downstream consumers (welcome mail, analytics) without
// querying the primary database. The password hash is never part of it.
type UserCreatedEvent struct {
	UserID    int    `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// PostCreatedEvent is published after a post row is committed.
type PostCreatedEvent struct {
	PostID    int    `json:"post_id"`
	UserID    int    `json:"user_id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}
