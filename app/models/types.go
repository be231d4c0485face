package models

import "time"

// Category is a fixed classification tag for posts.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Post represents a single help request.
type Post struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	CategoryLabel string     `json:"categoryLabel"`
	Description   string     `json:"description"`
	Contact       string     `json:"contact"`
	Timestamp     time.Time  `json:"timestamp"`
	EditedAt      *time.Time `json:"editedAt,omitempty"`
	Closed        bool       `json:"closed,omitempty"`
	ClosedAt      *time.Time `json:"closedAt,omitempty"`
}

// PostFields holds the user-editable fields of a post as submitted by a form.
type PostFields struct {
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description" validate:"required"`
	Contact     string `json:"contact" validate:"required"`
}

// User is the registered user record, credential included.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionUser is the signed-in identity. It never carries the credential.
type SessionUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Registration is the sign-up form.
type Registration struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,loose_email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Counters are the process-wide close accumulators. They survive deletion
// of closed posts.
type Counters struct {
	Closed int `json:"closedCount"`
	Helped int `json:"helpCount"`
}
