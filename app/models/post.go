package models

import (
	"strings"
	"time"
)

// Normalize returns the fields with surrounding whitespace removed.
func (f PostFields) Normalize() PostFields {
	return PostFields{
		Name:        strings.TrimSpace(f.Name),
		Category:    strings.TrimSpace(f.Category),
		Description: strings.TrimSpace(f.Description),
		Contact:     strings.TrimSpace(f.Contact),
	}
}

// Validate checks that every field is present once trimmed. Unknown
// categories are accepted; their label falls back to the raw id.
func (f PostFields) Validate() error {
	verrs, err := fieldErrors(f.Normalize())
	if err != nil {
		return err
	}
	if len(verrs) > 0 {
		return &ValidationError{Field: verrs[0].Field(), Message: "Please fill in all fields"}
	}
	return nil
}

// NewPost builds an open post from already validated fields.
func NewPost(id int64, f PostFields, now time.Time) *Post {
	f = f.Normalize()
	return &Post{
		ID:            id,
		Name:          f.Name,
		Category:      f.Category,
		CategoryLabel: CategoryLabel(f.Category),
		Description:   f.Description,
		Contact:       f.Contact,
		Timestamp:     now,
	}
}

// Apply overwrites the editable fields and stamps the edit time.
func (p *Post) Apply(f PostFields, now time.Time) {
	f = f.Normalize()
	p.Name = f.Name
	p.Category = f.Category
	p.CategoryLabel = CategoryLabel(f.Category)
	p.Description = f.Description
	p.Contact = f.Contact
	p.EditedAt = &now
}

// MarkClosed closes an open post. It reports false, changing nothing, when
// the post was already closed.
func (p *Post) MarkClosed(now time.Time) bool {
	if p.Closed {
		return false
	}
	p.Closed = true
	p.ClosedAt = &now
	return true
}

// Fields returns the editable fields of the post.
func (p Post) Fields() PostFields {
	return PostFields{
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Contact:     p.Contact,
	}
}

// Clone returns a copy of the post that shares no pointers with p.
func (p Post) Clone() Post {
	p.EditedAt = cloneTime(p.EditedAt)
	p.ClosedAt = cloneTime(p.ClosedAt)
	return p
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
