package services

import (
	"log/slog"

	"helpboard/app/board"
	"helpboard/app/models"
	"helpboard/app/repositories"
)

// Notification texts shown after each successful action.
const (
	MsgCreated = "Request added successfully!"
	MsgUpdated = "Request updated successfully!"
	MsgClosed  = "Thank you for your service!"
	MsgDeleted = "Request deleted successfully!"
)

// Dashboard is everything a front end needs to draw the board.
type Dashboard struct {
	Posts      []models.Post     `json:"posts"`
	Stats      board.Stats       `json:"stats"`
	Categories []models.Category `json:"categories"`
	Filter     string            `json:"filter"`
	Search     string            `json:"search"`
}

// PostService exposes the board's command handlers.
type PostService struct {
	posts repositories.PostStore
}

// NewPostService creates a PostService over an already loaded repository.
func NewPostService(posts repositories.PostStore) *PostService {
	return &PostService{posts: posts}
}

// SubmitPost creates a new open request.
func (s *PostService) SubmitPost(fields models.PostFields) (models.Post, error) {
	post, err := s.posts.Create(fields)
	if err != nil {
		return models.Post{}, err
	}
	slog.Info("post created", "id", post.ID, "category", post.Category)
	return post, nil
}

// EditPost overwrites the fields of an open request.
func (s *PostService) EditPost(id int64, fields models.PostFields) (models.Post, error) {
	post, err := s.posts.Update(id, fields)
	if err != nil {
		slog.Debug("post edit rejected", "id", id, "error", err)
		return post, err
	}
	slog.Info("post updated", "id", id)
	return post, nil
}

// ClosePost marks a request as helped. The bool is false when the request
// was already closed and nothing changed.
func (s *PostService) ClosePost(id int64) (models.Post, bool, error) {
	post, changed, err := s.posts.Close(id)
	if err != nil {
		slog.Debug("post close rejected", "id", id, "error", err)
		return post, false, err
	}
	if changed {
		slog.Info("post closed", "id", id)
	}
	return post, changed, nil
}

// DeletePost removes a request, open or closed.
func (s *PostService) DeletePost(id int64) error {
	if err := s.posts.Delete(id); err != nil {
		slog.Debug("post delete rejected", "id", id, "error", err)
		return err
	}
	slog.Info("post deleted", "id", id)
	return nil
}

// GetPost returns a single request.
func (s *PostService) GetPost(id int64) (models.Post, error) {
	return s.posts.Get(id)
}

// DisplayPosts recomputes the visible posts for a category filter and search
// term, together with the stats.
func (s *PostService) DisplayPosts(filter, search string) Dashboard {
	if filter == "" {
		filter = models.AllCategories
	}
	all := s.posts.List()
	return Dashboard{
		Posts:      board.Filter(all, filter, search),
		Stats:      board.ComputeStats(all, s.posts.Counters()),
		Categories: models.Categories,
		Filter:     filter,
		Search:     search,
	}
}

// Stats returns the current counters.
func (s *PostService) Stats() board.Stats {
	return board.ComputeStats(s.posts.List(), s.posts.Counters())
}
