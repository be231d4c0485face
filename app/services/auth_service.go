package services

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"helpboard/app/models"
	"helpboard/app/repositories"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("login required")
	ErrAccountNotSaved    = errors.New("account not saved")
)

// AuthService handles registration, login and the current session.
type AuthService struct {
	users repositories.UserStore
	now   repositories.Clock
	newID func() string
}

// NewAuthService creates an AuthService. A nil clock uses the system clock.
func NewAuthService(users repositories.UserStore, now repositories.Clock) *AuthService {
	if now == nil {
		now = repositories.SystemClock
	}
	return &AuthService{
		users: users,
		now:   now,
		newID: func() string { return uuid.New().String() },
	}
}

// Register validates the sign-up form, stores the new user and signs them
// in.
func (s *AuthService) Register(name, email, password string) (models.SessionUser, error) {
	reg := models.Registration{Name: name, Email: email, Password: password}
	if err := reg.Validate(); err != nil {
		return models.SessionUser{}, err
	}
	reg = reg.Normalize()

	user := models.User{
		ID:        s.newID(),
		Name:      reg.Name,
		Email:     reg.Email,
		Password:  reg.Password,
		CreatedAt: s.now(),
	}
	if err := s.users.Add(user); err != nil {
		if errors.Is(err, repositories.ErrNotSaved) {
			return models.SessionUser{}, ErrAccountNotSaved
		}
		return models.SessionUser{}, err
	}

	session := user.Session()
	if !s.users.SetSession(session) {
		slog.Warn("session not saved after registration", "user", user.ID)
	}
	return session, nil
}

// Login signs in the user whose email and password both match exactly.
func (s *AuthService) Login(email, password string) (models.SessionUser, error) {
	creds := models.Credentials{Email: email, Password: password}
	if err := creds.Validate(); err != nil {
		return models.SessionUser{}, err
	}

	user, ok := s.users.FindByEmail(models.NormalizeEmail(email))
	if !ok || user.Password != password {
		return models.SessionUser{}, ErrInvalidCredentials
	}

	session := user.Session()
	if !s.users.SetSession(session) {
		slog.Warn("session not saved after login", "user", user.ID)
	}
	return session, nil
}

// CurrentUser returns the signed-in user, or nil.
func (s *AuthService) CurrentUser() *models.SessionUser {
	user, ok := s.users.Session()
	if !ok {
		return nil
	}
	return &user
}

// Logout clears the session. It reports false if the session could not be
// removed.
func (s *AuthService) Logout() bool {
	return s.users.ClearSession()
}

// RequireSession returns the signed-in user or ErrUnauthenticated. Protected
// views call it before rendering.
func (s *AuthService) RequireSession() (*models.SessionUser, error) {
	user := s.CurrentUser()
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}
