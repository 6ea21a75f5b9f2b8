// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"letterpress/internal/middleware"
	"letterpress/internal/models"
	"letterpress/internal/ratelimit"
	"letterpress/internal/render"
	"letterpress/internal/service"
	"letterpress/internal/session"
)

// Articles groups the authoring HTTP handlers: the "my articles" view,
// the create/edit forms and the lifecycle actions.
type Articles struct {
	renderer   *render.Renderer
	articles   *service.Articles
	categories *service.Categories
	limiter    *ratelimit.Limiter
}

// NewArticles creates the authoring handler group. The limiter throttles
// every mutating article action per client.
func NewArticles(renderer *render.Renderer, articles *service.Articles, categories *service.Categories, limiter *ratelimit.Limiter) *Articles {
	return &Articles{
		renderer:   renderer,
		articles:   articles,
		categories: categories,
		limiter:    limiter,
	}
}

// parseID reads the {id} route parameter. Returns 0 for garbage, which no
// row ever matches, so the service reports not found.
func parseID(r *http.Request) int64 {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// throttle runs the rate limit gate for a mutating action. When the
// client is over the limit it flashes a notice, redirects, and reports
// false so the caller stops.
func (h *Articles) throttle(w http.ResponseWriter, r *http.Request, backTo string) bool {
	if h.limiter.Check(ratelimit.ClientKey(r)) {
		return true
	}
	session.AddFlash(w, r, "error", "Too many requests. Wait a moment and try again.")
	http.Redirect(w, r, backTo, http.StatusSeeOther)
	return false
}

// articleInput reads the article form fields.
func articleInput(r *http.Request) service.ArticleInput {
	categoryID, _ := strconv.ParseInt(r.FormValue("category_id"), 10, 64)
	return service.ArticleInput{
		Title:      r.FormValue("title"),
		Summary:    r.FormValue("summary"),
		Content:    r.FormValue("content"),
		Status:     r.FormValue("status"),
		CategoryID: categoryID,
	}
}

// Mine lists the signed-in author's articles in every status.
func (h *Articles) Mine(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromCtx(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	items, rej := h.articles.ListByAuthor(ident.ID)
	if rej != nil {
		session.AddFlash(w, r, "error", rej.Message())
	}

	h.renderer.Page(w, r, "articles_mine", &render.PageData{
		Title:   "My articles",
		Section: "articles",
		Data:    map[string]any{"articles": items},
	})
}

// NewForm renders the empty article form.
func (h *Articles) NewForm(w http.ResponseWriter, r *http.Request) {
	cats, rej := h.categories.List()
	if rej != nil {
		session.AddFlash(w, r, "error", rej.Message())
	}

	h.renderer.Page(w, r, "article_form", &render.PageData{
		Title:   "New article",
		Section: "articles",
		Data: map[string]any{
			"action":     "/artigos/cadastrar",
			"categories": cats,
		},
	})
}

// Create handles the new-article submission.
func (h *Articles) Create(w http.ResponseWriter, r *http.Request) {
	if !h.throttle(w, r, "/artigos/cadastrar") {
		return
	}

	ident, ok := middleware.IdentityFromCtx(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if _, rej := h.articles.Create(articleInput(r), ident); rej != nil {
		session.AddFlash(w, r, "error", rej.Message())
		http.Redirect(w, r, "/artigos/cadastrar", http.StatusSeeOther)
		return
	}

	session.AddFlash(w, r, "success", "Draft saved.")
	http.Redirect(w, r, "/artigos/meus", http.StatusSeeOther)
}

// EditForm renders the form pre-filled with the article being edited.
func (h *Articles) EditForm(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromCtx(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id := parseID(r)
	article, rej := h.articles.GetForEdit(id, ident)
	if rej != nil {
		session.AddFlash(w, r, "error", rej.Message())
		http.Redirect(w, r, "/artigos/meus", http.StatusSeeOther)
		return
	}

	cats, rej := h.categories.List()
	if rej != nil {
		session.AddFlash(w, r, "error", rej.Message())
	}

	h.renderer.Page(w, r, "article_form", &render.PageData{
		Title:   "Edit article",
		Section: "articles",
		Data: map[string]any{
			"action":     "/artigos/editar/" + strconv.FormatInt(id, 10),
			"article":    article,
			"categories": cats,
		},
	})
}

// Update handles the edit submission, including a direct status change.
func (h *Articles) Update(w http.ResponseWriter, r *http.Request) {
	id := parseID(r)
	backTo := "/artigos/editar/" + strconv.FormatInt(id, 10)
	if !h.throttle(w, r, backTo) {
		return
	}

	ident, ok := middleware.IdentityFromCtx(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if _, rej := h.articles.Update(id, articleInput(r), ident); rej != nil {
		session.AddFlash(w, r, "error", rej.Message())
		http.Redirect(w, r, backTo, http.StatusSeeOther)
		return
	}

	session.AddFlash(w, r, "success", "Article updated.")
	http.Redirect(w, r, "/artigos/meus", http.StatusSeeOther)
}

// Delete removes an article permanently.
func (h *Articles) Delete(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, "Article deleted.", h.articles.Delete)
}

// Publish makes an article publicly visible.
func (h *Articles) Publish(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, "Article published.", h.articles.Publish)
}

// Pause hides a published article from the public site.
func (h *Articles) Pause(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, "Article paused.", h.articles.Pause)
}

// action is the shared shape of delete/publish/pause: throttle, resolve
// identity, run the operation, flash the outcome, return to the list.
func (h *Articles) action(w http.ResponseWriter, r *http.Request, success string, op func(int64, models.Identity) *service.Rejection) {
	if !h.throttle(w, r, "/artigos/meus") {
		return
	}

	ident, ok := middleware.IdentityFromCtx(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if rej := op(parseID(r), ident); rej != nil {
		session.AddFlash(w, r, "error", rej.Message())
	} else {
		session.AddFlash(w, r, "success", success)
	}
	http.Redirect(w, r, "/artigos/meus", http.StatusSeeOther)
}
