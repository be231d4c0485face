package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostFieldsValidation(t *testing.T) {
	tests := []struct {
		name    string
		fields  PostFields
		wantErr bool
	}{
		{
			name:    "valid fields",
			fields:  PostFields{Name: "Alice", Category: "home", Description: "need groceries", Contact: "555-1111"},
			wantErr: false,
		},
		{
			name:    "unknown category is accepted",
			fields:  PostFields{Name: "Alice", Category: "garden", Description: "weeding", Contact: "555-1111"},
			wantErr: false,
		},
		{
			name:    "blank name",
			fields:  PostFields{Name: "   ", Category: "home", Description: "need groceries", Contact: "555-1111"},
			wantErr: true,
		},
		{
			name:    "missing category",
			fields:  PostFields{Name: "Alice", Description: "need groceries", Contact: "555-1111"},
			wantErr: true,
		},
		{
			name:    "blank description",
			fields:  PostFields{Name: "Alice", Category: "home", Description: "\t\n", Contact: "555-1111"},
			wantErr: true,
		},
		{
			name:    "missing contact",
			fields:  PostFields{Name: "Alice", Category: "home", Description: "need groceries"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fields.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidation))
				var verr *ValidationError
				assert.True(t, errors.As(err, &verr))
				assert.Equal(t, "Please fill in all fields", verr.Message)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewPost(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	post := NewPost(42, PostFields{
		Name:        "  Alice ",
		Category:    "care",
		Description: " need a ride ",
		Contact:     " 555-1111",
	}, now)

	assert.Equal(t, int64(42), post.ID)
	assert.Equal(t, "Alice", post.Name)
	assert.Equal(t, "Care & Support", post.CategoryLabel)
	assert.Equal(t, "need a ride", post.Description)
	assert.Equal(t, "555-1111", post.Contact)
	assert.Equal(t, now, post.Timestamp)
	assert.False(t, post.Closed)
	assert.Nil(t, post.EditedAt)
	assert.Nil(t, post.ClosedAt)
}

func TestPostApply(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	edited := created.Add(time.Hour)
	post := NewPost(1, PostFields{Name: "Alice", Category: "home", Description: "groceries", Contact: "555"}, created)

	post.Apply(PostFields{Name: "Bob", Category: "mystery", Description: "lawn", Contact: "bob@example.com"}, edited)

	assert.Equal(t, "Bob", post.Name)
	assert.Equal(t, "mystery", post.Category)
	assert.Equal(t, "mystery", post.CategoryLabel)
	assert.Equal(t, created, post.Timestamp)
	if assert.NotNil(t, post.EditedAt) {
		assert.Equal(t, edited, *post.EditedAt)
	}
	assert.Equal(t, PostFields{Name: "Bob", Category: "mystery", Description: "lawn", Contact: "bob@example.com"}, post.Fields())
}

func TestPostMarkClosed(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	post := NewPost(1, PostFields{Name: "Alice", Category: "home", Description: "groceries", Contact: "555"}, now)

	t.Run("open post closes", func(t *testing.T) {
		assert.True(t, post.MarkClosed(now))
		assert.True(t, post.Closed)
		if assert.NotNil(t, post.ClosedAt) {
			assert.Equal(t, now, *post.ClosedAt)
		}
	})

	t.Run("closed post stays untouched", func(t *testing.T) {
		later := now.Add(time.Hour)
		assert.False(t, post.MarkClosed(later))
		assert.Equal(t, now, *post.ClosedAt)
	})
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Home & Errands", CategoryLabel("home"))
	assert.Equal(t, "Washing and Settings", CategoryLabel("washing"))
	assert.Equal(t, "unknown-id", CategoryLabel("unknown-id"))
	assert.True(t, IsKnownCategory("learning"))
	assert.False(t, IsKnownCategory(AllCategories))
}

func TestPostClone(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	post := NewPost(1, PostFields{Name: "Alice", Category: "home", Description: "groceries", Contact: "555"}, now)
	post.Apply(PostFields{Name: "Alice", Category: "care", Description: "ride", Contact: "555"}, now.Add(time.Minute))
	post.MarkClosed(now.Add(time.Hour))

	clone := post.Clone()
	assert.Equal(t, *post, clone)

	*clone.EditedAt = time.Time{}
	*clone.ClosedAt = time.Time{}
	assert.Equal(t, now.Add(time.Minute), *post.EditedAt)
	assert.Equal(t, now.Add(time.Hour), *post.ClosedAt)

	open := Post{ID: 2}.Clone()
	assert.Nil(t, open.EditedAt)
	assert.Nil(t, open.ClosedAt)
	assert.Equal(t, PostFields{}, Post{}.Fields())
}
