package controllers

import (
	"bytes"
	"log/slog"
	"net/http"

	"helpboard/app/models"
	"helpboard/app/render"
	"helpboard/app/services"
)

// AuthController serves the login/sign-up page and the auth API.
type AuthController struct {
	auth     *services.AuthService
	renderer *render.Renderer
}

func NewAuthController(auth *services.AuthService, renderer *render.Renderer) *AuthController {
	return &AuthController{auth: auth, renderer: renderer}
}

// LoginPage shows the auth forms, or sends a logged-in user to the board.
func (ac *AuthController) LoginPage(w http.ResponseWriter, r *http.Request) {
	if ac.auth.CurrentUser() != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	var flash *render.Flash
	if r.URL.Query().Get("notice") == "logout" {
		flash = &render.Flash{Kind: "info", Message: "You have been logged out"}
	}
	ac.renderLogin(w, r, http.StatusOK, render.LoginPage{Flash: flash})
}

func (ac *AuthController) renderLogin(w http.ResponseWriter, r *http.Request, status int, page render.LoginPage) {
	var buf bytes.Buffer
	if err := ac.renderer.Login(&buf, page); err != nil {
		slog.Error("template error", "path", r.URL.Path, "error", err)
		sendError(w, r, "Template error", http.StatusInternalServerError)
		return
	}
	sendHTML(w, r, status, &buf)
}

func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		sendError(w, r, "Failed to parse form", http.StatusBadRequest)
		return
	}
	email := r.FormValue("email")
	if _, err := ac.auth.Login(email, r.FormValue("password")); err != nil {
		ac.renderLogin(w, r, statusFor(err), render.LoginPage{Email: email, LoginError: services.UserMessage(err)})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		sendError(w, r, "Failed to parse form", http.StatusBadRequest)
		return
	}
	name := r.FormValue("name")
	if _, err := ac.auth.Register(name, r.FormValue("email"), r.FormValue("password")); err != nil {
		ac.renderLogin(w, r, statusFor(err), render.LoginPage{Name: name, SignupError: services.UserMessage(err)})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	ac.auth.Logout()
	http.Redirect(w, r, "/login?notice=logout", http.StatusSeeOther)
}

func (ac *AuthController) APIRegister(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if err := decodeJSON(r, &reg); err != nil {
		fail(w, r, err)
		return
	}
	user, err := ac.auth.Register(reg.Name, reg.Email, reg.Password)
	if err != nil {
		fail(w, r, err)
		return
	}
	sendJSON(w, http.StatusCreated, user)
}

func (ac *AuthController) APILogin(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		fail(w, r, err)
		return
	}
	user, err := ac.auth.Login(creds.Email, creds.Password)
	if err != nil {
		fail(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, user)
}

func (ac *AuthController) APILogout(w http.ResponseWriter, r *http.Request) {
	if !ac.auth.Logout() {
		sendError(w, r, "Logout failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// APIMe returns the signed-in user.
func (ac *AuthController) APIMe(w http.ResponseWriter, r *http.Request) {
	user, err := ac.auth.RequireSession()
	if err != nil {
		fail(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, user)
}
