// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"letterpress/internal/markdown"
	"letterpress/internal/render"
	"letterpress/internal/service"
	"letterpress/internal/session"
)

// Public serves the reader-facing pages: the published feed, search, and
// the article view.
type Public struct {
	renderer *render.Renderer
	articles *service.Articles
}

// NewPublic creates the public handler group.
func NewPublic(renderer *render.Renderer, articles *service.Articles) *Public {
	return &Public{renderer: renderer, articles: articles}
}

// Home redirects the root to the article feed.
func (h *Public) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/artigos", http.StatusSeeOther)
}

// List shows the published feed, or search results when ?q= is present.
func (h *Public) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	var (
		articles any
		rej      *service.Rejection
	)
	if query != "" {
		articles, rej = h.articles.Search(query)
	} else {
		articles, rej = h.articles.ListPublished()
	}
	if rej != nil {
		session.AddFlash(w, r, "error", rej.Message())
	}

	h.renderer.Page(w, r, "public_list", &render.PageData{
		Title:   "Articles",
		Section: "public",
		Data: map[string]any{
			"query":    query,
			"articles": articles,
		},
	})
}

// Read shows one published article and counts the view. Drafts and
// paused articles are indistinguishable from missing ones here.
func (h *Public) Read(w http.ResponseWriter, r *http.Request) {
	article, rej := h.articles.Read(parseID(r))
	if rej != nil {
		if rej.Kind == service.Failed {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		http.NotFound(w, r)
		return
	}

	body, err := markdown.ToHTML(article.Content)
	if err != nil {
		slog.Error("article markdown render failed", "error", err, "id", article.ID)
		body = ""
	}

	h.renderer.Page(w, r, "article_read", &render.PageData{
		Title:   article.Title,
		Section: "public",
		Data: map[string]any{
			"article": article,
			"html":    body,
		},
	})
}
