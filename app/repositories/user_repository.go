package repositories

import (
	"errors"
	"sync"

	"helpboard/app/models"
	"helpboard/app/storage"
)

// ErrNotSaved is returned when the user table could not be written.
var ErrNotSaved = errors.New("user table not saved")

// UserRepository keeps the registered users and the current session in the
// store. Nothing is cached; every call reads the store.
type UserRepository struct {
	store *storage.Store
	mutex sync.Mutex
}

func NewUserRepository(store *storage.Store) *UserRepository {
	return &UserRepository{store: store}
}

// List returns all registered users. An unreadable table reads as empty.
func (r *UserRepository) List() []models.User {
	var users []models.User
	if !r.store.Read(storage.KeyUsers, &users) {
		return []models.User{}
	}
	return users
}

// Add appends user to the table. Emails are compared exactly.
func (r *UserRepository) Add(user models.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	users := r.List()
	for _, u := range users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	users = append(users, user)
	if !r.store.Write(storage.KeyUsers, users) {
		return ErrNotSaved
	}
	return nil
}

// FindByEmail returns the user with exactly this email.
func (r *UserRepository) FindByEmail(email string) (models.User, bool) {
	for _, u := range r.List() {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

func (r *UserRepository) SetSession(user models.SessionUser) bool {
	return r.store.Write(storage.KeySession, user)
}

// Session returns the signed-in user, if any.
func (r *UserRepository) Session() (models.SessionUser, bool) {
	var user models.SessionUser
	if !r.store.Read(storage.KeySession, &user) {
		return models.SessionUser{}, false
	}
	return user, true
}

func (r *UserRepository) ClearSession() bool {
	return r.store.Remove(storage.KeySession)
}
