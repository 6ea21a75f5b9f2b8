// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"letterpress/internal/models"
	"letterpress/internal/session"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return r
}

func TestNewParsesAllTemplates(t *testing.T) {
	r := newRenderer(t)

	expected := []string{
		"login", "2fa_setup", "2fa_verify",
		"public_list", "article_read", "articles_mine", "article_form",
		"categories_list", "category_form", "users_list",
	}
	for _, name := range expected {
		if _, ok := r.templates[name]; !ok {
			t.Errorf("template %q not parsed", name)
		}
	}
}

func TestPagePublicList(t *testing.T) {
	r := newRenderer(t)

	now := time.Now()
	req := httptest.NewRequest("GET", "/artigos", nil)
	rr := httptest.NewRecorder()

	r.Page(rr, req, "public_list", &PageData{
		Title:   "Articles",
		Section: "public",
		Data: map[string]any{
			"query": "",
			"articles": []models.Article{
				{
					ID: 1, Title: "Hello World", Summary: "First post.",
					Status: models.StatusPublished, AuthorName: "Ana",
					CategoryName: "General", PublishedAt: &now,
				},
			},
		},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"Hello World", "First post.", "/artigos/ler/1", "Ana"} {
		if !strings.Contains(body, want) {
			t.Errorf("rendered page should contain %q", want)
		}
	}
}

func TestPageStandaloneLogin(t *testing.T) {
	r := newRenderer(t)

	req := httptest.NewRequest("GET", "/login", nil)
	rr := httptest.NewRecorder()

	r.Page(rr, req, "login", &PageData{Title: "Sign in"})

	body := rr.Body.String()
	if !strings.Contains(body, "<form method=\"post\" action=\"/login\"") {
		t.Error("login page should contain the login form")
	}
	// Standalone pages carry their own document, not the shared nav.
	if !strings.Contains(body, "<!DOCTYPE html>") {
		t.Error("standalone page should be a full document")
	}
}

func TestPageShowsFlashes(t *testing.T) {
	r := newRenderer(t)

	req := httptest.NewRequest("GET", "/artigos", nil)
	rr := httptest.NewRecorder()

	r.Page(rr, req, "public_list", &PageData{
		Title:   "Articles",
		Flashes: []session.Flash{{Type: "error", Message: "Too many requests."}},
		Data:    map[string]any{"query": "", "articles": nil},
	})

	if !strings.Contains(rr.Body.String(), "Too many requests.") {
		t.Error("flash message should be rendered")
	}
}

func TestPageUnknownTemplate(t *testing.T) {
	r := newRenderer(t)

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()

	r.Page(rr, req, "does_not_exist", &PageData{})

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("got status %d, want 500", rr.Code)
	}
}

func TestArticleBodyRenderedRaw(t *testing.T) {
	r := newRenderer(t)

	now := time.Now()
	req := httptest.NewRequest("GET", "/artigos/ler/1", nil)
	rr := httptest.NewRecorder()

	r.Page(rr, req, "article_read", &PageData{
		Title: "Post",
		Data: map[string]any{
			"article": &models.Article{
				ID: 1, Title: "Post", Status: models.StatusPublished,
				AuthorName: "Ana", CategoryName: "General", PublishedAt: &now,
			},
			"html": "<h2 id=\"hello\">Hello</h2>",
		},
	})

	if !strings.Contains(rr.Body.String(), "<h2 id=\"hello\">Hello</h2>") {
		t.Error("markdown HTML should pass through unescaped")
	}
}
