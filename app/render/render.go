// Package render turns dashboard data into HTML pages and terminal cards.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"helpboard/app/board"
	"helpboard/app/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Flash is a one-shot notification shown above the page.
type Flash struct {
	Kind    string // "success", "error" or "info"
	Message string
}

// DashboardPage is the data behind the main page.
type DashboardPage struct {
	User       *models.SessionUser
	Posts      []models.Post
	Stats      board.Stats
	Categories []models.Category
	Filter     string
	Search     string
	Form       models.PostFields
	Flash      *Flash
}

// EditPage is the data behind the edit form.
type EditPage struct {
	PostID int64
	Form   models.PostFields
	Flash  *Flash
}

// LoginPage is the data behind the login and sign-up forms.
type LoginPage struct {
	Email       string
	Name        string
	LoginError  string
	SignupError string
	Flash       *Flash
}

// Renderer executes the embedded templates. Relative timestamps are
// computed against its clock.
type Renderer struct {
	pages map[string]*template.Template
	now   func() time.Time
}

// New parses the embedded templates. A nil clock uses time.Now.
func New(now func() time.Time) (*Renderer, error) {
	if now == nil {
		now = time.Now
	}
	r := &Renderer{pages: make(map[string]*template.Template), now: now}
	funcs := template.FuncMap{
		"ago":        func(ts time.Time) string { return board.FormatTimestamp(ts, r.now()) },
		"categories": func() []models.Category { return models.Categories },
	}

	pages := map[string][]string{
		"dashboard": {"templates/layout.html", "templates/dashboard.html", "templates/form.html", "templates/cards.html"},
		"edit":      {"templates/layout.html", "templates/form.html", "templates/edit.html"},
		"login":     {"templates/layout.html", "templates/login.html"},
		"cards":     {"templates/cards.html"},
	}
	for name, files := range pages {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s templates: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Cards writes the post card fragment, or the "No posts yet." placeholder
// when posts is empty. Every user-supplied field is HTML-escaped.
func (r *Renderer) Cards(w io.Writer, posts []models.Post) error {
	return r.pages["cards"].ExecuteTemplate(w, "cards", struct{ Posts []models.Post }{posts})
}

func (r *Renderer) Dashboard(w io.Writer, page DashboardPage) error {
	return r.pages["dashboard"].ExecuteTemplate(w, "layout", page)
}

func (r *Renderer) Edit(w io.Writer, page EditPage) error {
	return r.pages["edit"].ExecuteTemplate(w, "layout", page)
}

func (r *Renderer) Login(w io.Writer, page LoginPage) error {
	return r.pages["login"].ExecuteTemplate(w, "layout", page)
}
