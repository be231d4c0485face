package services

import (
	"errors"

	"helpboard/app/models"
	"helpboard/app/repositories"
)

// UserMessage returns the inline text shown to the user for err.
func UserMessage(err error) string {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, repositories.ErrDuplicateEmail):
		return "Email already registered"
	case errors.Is(err, ErrAccountNotSaved):
		return "Error creating account. Please try again."
	case errors.Is(err, ErrUnauthenticated):
		return "Please log in first"
	case errors.Is(err, repositories.ErrNotFound):
		return "Request not found"
	case errors.Is(err, repositories.ErrPostClosed):
		return "This request is already closed"
	default:
		return "Something went wrong"
	}
}
