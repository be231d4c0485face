package controllers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"helpboard/app/middleware"
	"helpboard/app/models"
	"helpboard/app/render"
	"helpboard/app/services"
)

// notices are the flash messages carried across the post/redirect/get cycle.
var notices = map[string]string{
	"created": services.MsgCreated,
	"updated": services.MsgUpdated,
	"closed":  services.MsgClosed,
	"deleted": services.MsgDeleted,
}

// PostController serves the dashboard, its form actions and the posts API.
type PostController struct {
	posts    *services.PostService
	renderer *render.Renderer
}

func NewPostController(posts *services.PostService, renderer *render.Renderer) *PostController {
	return &PostController{posts: posts, renderer: renderer}
}

// Dashboard renders the board for ?category= and ?q=.
func (pc *PostController) Dashboard(w http.ResponseWriter, r *http.Request) {
	var flash *render.Flash
	if msg, ok := notices[r.URL.Query().Get("notice")]; ok {
		flash = &render.Flash{Kind: "success", Message: msg}
	}
	pc.renderDashboard(w, r, http.StatusOK, models.PostFields{}, flash)
}

func (pc *PostController) renderDashboard(w http.ResponseWriter, r *http.Request, status int, form models.PostFields, flash *render.Flash) {
	query := r.URL.Query()
	view := pc.posts.DisplayPosts(query.Get("category"), query.Get("q"))
	page := render.DashboardPage{
		User:       middleware.UserFromContext(r.Context()),
		Posts:      view.Posts,
		Stats:      view.Stats,
		Categories: view.Categories,
		Filter:     view.Filter,
		Search:     view.Search,
		Form:       form,
		Flash:      flash,
	}
	pc.writePage(w, r, status, func(buf *bytes.Buffer) error { return pc.renderer.Dashboard(buf, page) })
}

// writePage renders into a buffer first so a template error can still
// produce a clean 500.
func (pc *PostController) writePage(w http.ResponseWriter, r *http.Request, status int, draw func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := draw(&buf); err != nil {
		slog.Error("template error", "path", r.URL.Path, "error", err)
		sendError(w, r, "Template error", http.StatusInternalServerError)
		return
	}
	sendHTML(w, r, status, &buf)
}

func formFields(r *http.Request) models.PostFields {
	return models.PostFields{
		Name:        r.FormValue("name"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		Contact:     r.FormValue("contact"),
	}
}

// Create handles the request form on the dashboard.
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		sendError(w, r, "Failed to parse form", http.StatusBadRequest)
		return
	}
	fields := formFields(r)
	if _, err := pc.posts.SubmitPost(fields); err != nil {
		if errors.Is(err, models.ErrValidation) {
			pc.renderDashboard(w, r, http.StatusBadRequest, fields, &render.Flash{Kind: "error", Message: services.UserMessage(err)})
			return
		}
		fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/?notice=created", http.StatusSeeOther)
}

// EditForm shows the edit form for an open post.
func (pc *PostController) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}
	post, err := pc.posts.GetPost(id)
	if err != nil {
		fail(w, r, err)
		return
	}
	if post.Closed {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	pc.renderEdit(w, r, http.StatusOK, id, post.Fields(), nil)
}

func (pc *PostController) renderEdit(w http.ResponseWriter, r *http.Request, status int, id int64, form models.PostFields, flash *render.Flash) {
	page := render.EditPage{PostID: id, Form: form, Flash: flash}
	pc.writePage(w, r, status, func(buf *bytes.Buffer) error { return pc.renderer.Edit(buf, page) })
}

// Update saves the edit form.
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		sendError(w, r, "Failed to parse form", http.StatusBadRequest)
		return
	}
	fields := formFields(r)
	if _, err := pc.posts.EditPost(id, fields); err != nil {
		if errors.Is(err, models.ErrValidation) {
			pc.renderEdit(w, r, http.StatusBadRequest, id, fields, &render.Flash{Kind: "error", Message: services.UserMessage(err)})
			return
		}
		fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/?notice=updated", http.StatusSeeOther)
}

// Close handles "Offer Help". Closing a closed post just returns to the
// board.
func (pc *PostController) Close(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}
	_, changed, err := pc.posts.ClosePost(id)
	if err != nil {
		fail(w, r, err)
		return
	}
	target := "/"
	if changed {
		target = "/?notice=closed"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}
	if err := pc.posts.DeletePost(id); err != nil {
		fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/?notice=deleted", http.StatusSeeOther)
}

// APIIndex returns the filtered board as JSON.
func (pc *PostController) APIIndex(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sendJSON(w, http.StatusOK, pc.posts.DisplayPosts(query.Get("category"), query.Get("q")))
}

func (pc *PostController) APIShow(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}
	post, err := pc.posts.GetPost(id)
	if err != nil {
		fail(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

func (pc *PostController) APICreate(w http.ResponseWriter, r *http.Request) {
	var fields models.PostFields
	if err := decodeJSON(r, &fields); err != nil {
		fail(w, r, err)
		return
	}
	post, err := pc.posts.SubmitPost(fields)
	if err != nil {
		fail(w, r, err)
		return
	}
	sendJSON(w, http.StatusCreated, map[string]interface{}{"post": post, "message": services.MsgCreated})
}

func (pc *PostController) APIUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}
	var fields models.PostFields
	if err := decodeJSON(r, &fields); err != nil {
		fail(w, r, err)
		return
	}
	post, err := pc.posts.EditPost(id, fields)
	if err != nil {
		fail(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"post": post, "message": services.MsgUpdated})
}

// APIClose reports "closed": false when the post was already closed.
func (pc *PostController) APIClose(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}
	post, changed, err := pc.posts.ClosePost(id)
	if err != nil {
		fail(w, r, err)
		return
	}
	resp := map[string]interface{}{"post": post, "closed": changed}
	if changed {
		resp["message"] = services.MsgClosed
	}
	sendJSON(w, http.StatusOK, resp)
}

func (pc *PostController) APIDelete(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}
	if err := pc.posts.DeletePost(id); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (pc *PostController) APIStats(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, pc.posts.Stats())
}

func (pc *PostController) APICategories(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, models.Categories)
}
