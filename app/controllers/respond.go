package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"helpboard/app/middleware"
	"helpboard/app/models"
	"helpboard/app/repositories"
	"helpboard/app/services"
)

// statusFor maps a core error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repositories.ErrDuplicateEmail), errors.Is(err, repositories.ErrPostClosed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func postID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// sendHTML writes a fully rendered page.
func sendHTML(w http.ResponseWriter, r *http.Request, status int, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write response", "path", r.URL.Path, "error", err)
	}
}

// sendError answers API calls with a JSON error body and pages with plain
// text.
func sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	if middleware.IsAPI(r) {
		sendJSON(w, status, map[string]string{"error": message})
		return
	}
	http.Error(w, message, status)
}

// fail reports err using the user-facing message and mapped status.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "path", r.URL.Path, "error", err)
	}
	sendError(w, r, services.UserMessage(err), status)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &models.ValidationError{Field: "body", Message: "Invalid JSON: " + err.Error()}
	}
	return nil
}
