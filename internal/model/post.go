package model

import "time"

// Post is a blog entry. Slug is derived from the title at creation time,
// unique, and immutable afterwards — links keep working even if the title
// is edited later.
type Post struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Content     string    `json:"content"`
	Image       string    `json:"image"`
	Summary     string    `json:"summary"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

// PostPatch is the partial-update allow-list for posts. Slug is deliberately
// absent: it cannot be changed after creation.
type PostPatch struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	Image       *string `json:"image"`
	Summary     *string `json:"summary"`
	IsPublished *bool   `json:"is_published"`
}

// IsEmpty reports whether the patch names no fields at all.
func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Image == nil &&
		p.Summary == nil && p.IsPublished == nil
}
