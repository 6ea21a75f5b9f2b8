// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"log/slog"

	"letterpress/internal/models"
)

// CategoryStore is the slice of the category store the workflows need.
type CategoryStore interface {
	Create(c *models.Category) (*models.Category, error)
	Update(c *models.Category) (bool, error)
	Delete(id int64) (bool, error)
	GetByID(id int64) (*models.Category, error)
	GetByName(name string) (*models.Category, error)
	GetAll() ([]models.Category, error)
}

// ArticleCounter reports how many articles reference a category.
type ArticleCounter interface {
	CountByCategory(categoryID int64) (int, error)
}

// Categories implements the admin-only category management workflows.
// Role gating happens in the router; these methods assume an admin caller.
type Categories struct {
	categories CategoryStore
	articles   ArticleCounter
}

// NewCategories wires the category workflows to their stores.
func NewCategories(categories CategoryStore, articles ArticleCounter) *Categories {
	return &Categories{categories: categories, articles: articles}
}

// Create validates and inserts a category. Name uniqueness is a
// lookup-before-insert, the same check the rest of the system relies on.
func (s *Categories) Create(in CategoryInput) (*models.Category, *Rejection) {
	in.normalize()

	if errs := in.validate(); len(errs) > 0 {
		return nil, invalid(errs...)
	}

	existing, err := s.categories.GetByName(in.Name)
	if err != nil {
		slog.Error("category create: name check failed", "error", err)
		return nil, failed()
	}
	if existing != nil {
		return nil, invalid(FieldError{Field: "name", Reason: "is already used by another category"})
	}

	created, err := s.categories.Create(&models.Category{Name: in.Name, Description: in.Description})
	if err != nil {
		slog.Error("category create: insert failed", "error", err)
		return nil, failed()
	}
	return created, nil
}

// Update renames or re-describes a category. A no-op rename passes the
// uniqueness check because the match is the category itself.
func (s *Categories) Update(id int64, in CategoryInput) (*models.Category, *Rejection) {
	in.normalize()

	current, err := s.categories.GetByID(id)
	if err != nil {
		slog.Error("category update: fetch failed", "error", err, "id", id)
		return nil, failed()
	}
	if current == nil {
		return nil, notFound()
	}

	if errs := in.validate(); len(errs) > 0 {
		return nil, invalid(errs...)
	}

	existing, err := s.categories.GetByName(in.Name)
	if err != nil {
		slog.Error("category update: name check failed", "error", err, "id", id)
		return nil, failed()
	}
	if existing != nil && existing.ID != id {
		return nil, invalid(FieldError{Field: "name", Reason: "is already used by another category"})
	}

	updated := *current
	updated.Name = in.Name
	updated.Description = in.Description

	ok, err := s.categories.Update(&updated)
	if err != nil {
		slog.Error("category update: store update failed", "error", err, "id", id)
		return nil, failed()
	}
	if !ok {
		return nil, notFound()
	}
	return &updated, nil
}

// Delete removes a category. There is no foreign key, so articles that
// referenced it keep a dangling categoria_id; the count is logged so the
// gap is at least visible.
func (s *Categories) Delete(id int64) *Rejection {
	current, err := s.categories.GetByID(id)
	if err != nil {
		slog.Error("category delete: fetch failed", "error", err, "id", id)
		return failed()
	}
	if current == nil {
		return notFound()
	}

	if n, err := s.articles.CountByCategory(id); err != nil {
		slog.Error("category delete: article count failed", "error", err, "id", id)
	} else if n > 0 {
		slog.Warn("deleting category still referenced by articles",
			"category", current.Name, "id", id, "articles", n)
	}

	ok, err := s.categories.Delete(id)
	if err != nil {
		slog.Error("category delete: store delete failed", "error", err, "id", id)
		return failed()
	}
	if !ok {
		return notFound()
	}
	return nil
}

// Get fetches one category for the edit form.
func (s *Categories) Get(id int64) (*models.Category, *Rejection) {
	c, err := s.categories.GetByID(id)
	if err != nil {
		slog.Error("category fetch failed", "error", err, "id", id)
		return nil, failed()
	}
	if c == nil {
		return nil, notFound()
	}
	return c, nil
}

// List returns every category with its article count.
func (s *Categories) List() ([]models.Category, *Rejection) {
	items, err := s.categories.GetAll()
	if err != nil {
		slog.Error("category list failed", "error", err)
		return nil, failed()
	}
	return items, nil
}
