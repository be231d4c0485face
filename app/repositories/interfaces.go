package repositories

import "helpboard/app/models"

// PostStore defines the post collection operations used by the services.
type PostStore interface {
	Load()
	Create(fields models.PostFields) (models.Post, error)
	Update(id int64, fields models.PostFields) (models.Post, error)
	Close(id int64) (models.Post, bool, error)
	Delete(id int64) error
	Get(id int64) (models.Post, error)
	List() []models.Post
	Counters() models.Counters
}

// UserStore defines the user table and session operations.
type UserStore interface {
	Add(user models.User) error
	FindByEmail(email string) (models.User, bool)
	SetSession(user models.SessionUser) bool
	Session() (models.SessionUser, bool)
	ClearSession() bool
}
