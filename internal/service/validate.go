// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"strings"
	"unicode/utf8"

	"letterpress/internal/models"
)

// ArticleInput is the raw form input for creating or editing an article.
// Title and Summary are trimmed before validation and storage.
type ArticleInput struct {
	Title      string
	Summary    string
	Content    string
	Status     string
	CategoryID int64
}

// normalize trims the free-text fields in place.
func (in *ArticleInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Summary = strings.TrimSpace(in.Summary)
}

// validate checks field-level constraints. It never touches the database;
// uniqueness and category existence are the caller's job.
func (in *ArticleInput) validate() []FieldError {
	var errs []FieldError

	if n := utf8.RuneCountInString(in.Title); n < 3 || n > 100 {
		errs = append(errs, FieldError{Field: "title", Reason: "must be between 3 and 100 characters"})
	}
	if utf8.RuneCountInString(in.Summary) > 300 {
		errs = append(errs, FieldError{Field: "summary", Reason: "must be at most 300 characters"})
	}
	if strings.TrimSpace(in.Content) == "" {
		errs = append(errs, FieldError{Field: "content", Reason: "must not be empty"})
	}
	if in.CategoryID <= 0 {
		errs = append(errs, FieldError{Field: "category", Reason: "must be selected"})
	}
	if _, ok := models.ParseStatus(in.Status); !ok {
		errs = append(errs, FieldError{Field: "status", Reason: "is not a valid status"})
	}

	return errs
}

// CategoryInput is the raw form input for creating or editing a category.
type CategoryInput struct {
	Name        string
	Description string
}

func (in *CategoryInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
}

func (in *CategoryInput) validate() []FieldError {
	var errs []FieldError
	if in.Name == "" {
		errs = append(errs, FieldError{Field: "name", Reason: "must not be empty"})
	}
	return errs
}
