// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"log/slog"

	"letterpress/internal/models"
	"letterpress/internal/policy"
)

// ArticleStore is the slice of the article store the workflows need.
type ArticleStore interface {
	Insert(a *models.Article) (*models.Article, error)
	Update(a *models.Article) (bool, error)
	Delete(id int64) (bool, error)
	GetByID(id int64) (*models.Article, error)
	GetByAuthor(authorID int64) ([]models.Article, error)
	GetPublished() ([]models.Article, error)
	SearchByTitle(term string) ([]models.Article, error)
	TitleExists(title string, excludeID int64) (bool, error)
	SetStatus(id int64, status models.Status) (bool, error)
	IncrementViews(id int64) error
}

// CategoryReader is the category lookup the article workflows need.
type CategoryReader interface {
	GetByID(id int64) (*models.Category, error)
}

// Articles implements the article lifecycle: create as draft, edit,
// publish, pause, delete, and the public read paths.
type Articles struct {
	articles   ArticleStore
	categories CategoryReader
}

// NewArticles wires the article workflows to their stores.
func NewArticles(articles ArticleStore, categories CategoryReader) *Articles {
	return &Articles{articles: articles, categories: categories}
}

// Create validates the input and inserts a new draft owned by the caller.
// The submitted status is ignored: every article starts as a draft.
func (s *Articles) Create(in ArticleInput, author models.Identity) (*models.Article, *Rejection) {
	in.normalize()
	in.Status = string(models.StatusDraft)

	if errs := in.validate(); len(errs) > 0 {
		return nil, invalid(errs...)
	}

	taken, err := s.articles.TitleExists(in.Title, 0)
	if err != nil {
		slog.Error("article create: title check failed", "error", err)
		return nil, failed()
	}
	if taken {
		return nil, invalid(FieldError{Field: "title", Reason: "is already used by another article"})
	}

	cat, err := s.categories.GetByID(in.CategoryID)
	if err != nil {
		slog.Error("article create: category lookup failed", "error", err)
		return nil, failed()
	}
	if cat == nil {
		return nil, invalid(FieldError{Field: "category", Reason: "does not exist"})
	}

	created, err := s.articles.Insert(&models.Article{
		Title:      in.Title,
		Summary:    in.Summary,
		Content:    in.Content,
		Status:     models.StatusDraft,
		AuthorID:   author.ID,
		CategoryID: in.CategoryID,
	})
	if err != nil {
		slog.Error("article create: insert failed", "error", err)
		return nil, failed()
	}
	return created, nil
}

// Update rewrites an article's fields, including a direct status change.
// Existence is checked before permission so a missing article reads as
// not found, not forbidden.
func (s *Articles) Update(id int64, in ArticleInput, user models.Identity) (*models.Article, *Rejection) {
	in.normalize()

	current, err := s.articles.GetByID(id)
	if err != nil {
		slog.Error("article update: fetch failed", "error", err, "id", id)
		return nil, failed()
	}
	if current == nil {
		return nil, notFound()
	}
	if !policy.CanModify(current, user) {
		return nil, forbidden()
	}

	if errs := in.validate(); len(errs) > 0 {
		return nil, invalid(errs...)
	}

	// Excluding our own id lets a no-op rename pass.
	taken, err := s.articles.TitleExists(in.Title, id)
	if err != nil {
		slog.Error("article update: title check failed", "error", err, "id", id)
		return nil, failed()
	}
	if taken {
		return nil, invalid(FieldError{Field: "title", Reason: "is already used by another article"})
	}

	cat, err := s.categories.GetByID(in.CategoryID)
	if err != nil {
		slog.Error("article update: category lookup failed", "error", err, "id", id)
		return nil, failed()
	}
	if cat == nil {
		return nil, invalid(FieldError{Field: "category", Reason: "does not exist"})
	}

	status, _ := models.ParseStatus(in.Status)
	updated := *current
	updated.Title = in.Title
	updated.Summary = in.Summary
	updated.Content = in.Content
	updated.Status = status
	updated.CategoryID = in.CategoryID

	ok, err := s.articles.Update(&updated)
	if err != nil {
		slog.Error("article update: store update failed", "error", err, "id", id)
		return nil, failed()
	}
	if !ok {
		return nil, notFound()
	}
	return &updated, nil
}

// Delete removes an article from any status. Hard delete, no tombstone.
func (s *Articles) Delete(id int64, user models.Identity) *Rejection {
	current, err := s.articles.GetByID(id)
	if err != nil {
		slog.Error("article delete: fetch failed", "error", err, "id", id)
		return failed()
	}
	if current == nil {
		return notFound()
	}
	if !policy.CanModify(current, user) {
		return forbidden()
	}

	ok, err := s.articles.Delete(id)
	if err != nil {
		slog.Error("article delete: store delete failed", "error", err, "id", id)
		return failed()
	}
	if !ok {
		return notFound()
	}
	return nil
}

// Publish moves an article to Publicado, stamping the publication date on
// the first transition.
func (s *Articles) Publish(id int64, user models.Identity) *Rejection {
	return s.transition(id, models.StatusPublished, user)
}

// Pause hides a published article without losing its publication date.
func (s *Articles) Pause(id int64, user models.Identity) *Rejection {
	return s.transition(id, models.StatusPaused, user)
}

func (s *Articles) transition(id int64, status models.Status, user models.Identity) *Rejection {
	current, err := s.articles.GetByID(id)
	if err != nil {
		slog.Error("article transition: fetch failed", "error", err, "id", id, "status", status)
		return failed()
	}
	if current == nil {
		return notFound()
	}
	if !policy.CanModify(current, user) {
		return forbidden()
	}

	ok, err := s.articles.SetStatus(id, status)
	if err != nil {
		slog.Error("article transition: set status failed", "error", err, "id", id, "status", status)
		return failed()
	}
	if !ok {
		return notFound()
	}
	return nil
}

// Read is the public read path. Only published articles are visible; a
// successful read counts one view. Drafts and paused articles read as not
// found so their existence is not leaked.
func (s *Articles) Read(id int64) (*models.Article, *Rejection) {
	a, err := s.articles.GetByID(id)
	if err != nil {
		slog.Error("article read: fetch failed", "error", err, "id", id)
		return nil, failed()
	}
	if a == nil || !a.IsPublished() {
		return nil, notFound()
	}

	if err := s.articles.IncrementViews(id); err != nil {
		// The reader still gets the article; only the counter is lost.
		slog.Error("article read: view count failed", "error", err, "id", id)
	} else {
		a.ViewCount++
	}
	return a, nil
}

// GetForEdit fetches an article for the edit form, enforcing ownership.
func (s *Articles) GetForEdit(id int64, user models.Identity) (*models.Article, *Rejection) {
	a, err := s.articles.GetByID(id)
	if err != nil {
		slog.Error("article fetch failed", "error", err, "id", id)
		return nil, failed()
	}
	if a == nil {
		return nil, notFound()
	}
	if !policy.CanModify(a, user) {
		return nil, forbidden()
	}
	return a, nil
}

// ListByAuthor returns the author's own articles in every status.
func (s *Articles) ListByAuthor(authorID int64) ([]models.Article, *Rejection) {
	items, err := s.articles.GetByAuthor(authorID)
	if err != nil {
		slog.Error("article list by author failed", "error", err, "author", authorID)
		return nil, failed()
	}
	return items, nil
}

// ListPublished returns the public article feed.
func (s *Articles) ListPublished() ([]models.Article, *Rejection) {
	items, err := s.articles.GetPublished()
	if err != nil {
		slog.Error("published article list failed", "error", err)
		return nil, failed()
	}
	return items, nil
}

// Search finds published articles whose titles contain the term.
func (s *Articles) Search(term string) ([]models.Article, *Rejection) {
	items, err := s.articles.SearchByTitle(term)
	if err != nil {
		slog.Error("article search failed", "error", err, "term", term)
		return nil, failed()
	}
	return items, nil
}
