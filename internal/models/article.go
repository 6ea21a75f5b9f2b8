// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Status is the lifecycle state of an article. The values are the
// Portuguese labels stored in the legacy artigo table; they appear in
// forms and the database as-is.
type Status string

const (
	StatusDraft     Status = "Rascunho"
	StatusPublished Status = "Publicado"
	StatusPaused    Status = "Pausado"
)

// ParseStatus maps a form value onto a Status. The second return is
// false for anything that is not one of the three known states.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusDraft, StatusPublished, StatusPaused:
		return Status(s), true
	default:
		return "", false
	}
}

// Article is a blog post in any lifecycle state. AuthorName and
// CategoryName are joined in at read time for display and are never
// written back.
type Article struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Summary      string     `json:"summary"`
	Content      string     `json:"content"`
	Status       Status     `json:"status"`
	AuthorID     int64      `json:"author_id"`
	AuthorName   string     `json:"author_name"`
	CategoryID   int64      `json:"category_id"`
	CategoryName string     `json:"category_name"`
	ViewCount    int        `json:"view_count"`
	PublishedAt  *time.Time `json:"published_at"` // Nullable; stamped on first publish
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsPublished reports whether the article is visible to readers.
func (a *Article) IsPublished() bool {
	return a.Status == StatusPublished
}
