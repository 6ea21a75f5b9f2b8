// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"

	"letterpress/internal/ratelimit"
	"letterpress/internal/render"
	"letterpress/internal/service"
	"letterpress/internal/session"
)

// Categories groups the admin-only category management handlers. Role
// gating happens in the router; the rate limiter throttles mutations.
type Categories struct {
	renderer   *render.Renderer
	categories *service.Categories
	limiter    *ratelimit.Limiter
}

// NewCategories creates the category handler group.
func NewCategories(renderer *render.Renderer, categories *service.Categories, limiter *ratelimit.Limiter) *Categories {
	return &Categories{
		renderer:   renderer,
		categories: categories,
		limiter:    limiter,
	}
}

func categoryInput(r *http.Request) service.CategoryInput {
	return service.CategoryInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
	}
}

func (h *Categories) throttle(w http.ResponseWriter, r *http.Request, backTo string) bool {
	if h.limiter.Check(ratelimit.ClientKey(r)) {
		return true
	}
	session.AddFlash(w, r, "error", "Too many requests. Wait a moment and try again.")
	http.Redirect(w, r, backTo, http.StatusSeeOther)
	return false
}

// List shows every category with its article count.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	items, rej := h.categories.List()
	if rej != nil {
		session.AddFlash(w, r, "error", rej.Message())
	}

	h.renderer.Page(w, r, "categories_list", &render.PageData{
		Title:   "Categories",
		Section: "categories",
		Data:    map[string]any{"categories": items},
	})
}

// NewForm renders the empty category form.
func (h *Categories) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Page(w, r, "category_form", &render.PageData{
		Title:   "New category",
		Section: "categories",
		Data:    map[string]any{"action": "/admin/categorias/cadastrar"},
	})
}

// Create handles the new-category submission.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	if !h.throttle(w, r, "/admin/categorias/cadastrar") {
		return
	}

	if _, rej := h.categories.Create(categoryInput(r)); rej != nil {
		session.AddFlash(w, r, "error", rej.Message())
		http.Redirect(w, r, "/admin/categorias/cadastrar", http.StatusSeeOther)
		return
	}

	session.AddFlash(w, r, "success", "Category created.")
	http.Redirect(w, r, "/admin/categorias/listar", http.StatusSeeOther)
}

// EditForm renders the form pre-filled with the category being edited.
func (h *Categories) EditForm(w http.ResponseWriter, r *http.Request) {
	id := parseID(r)
	category, rej := h.categories.Get(id)
	if rej != nil {
		session.AddFlash(w, r, "error", rej.Message())
		http.Redirect(w, r, "/admin/categorias/listar", http.StatusSeeOther)
		return
	}

	h.renderer.Page(w, r, "category_form", &render.PageData{
		Title:   "Edit category",
		Section: "categories",
		Data: map[string]any{
			"action":   "/admin/categorias/editar/" + strconv.FormatInt(id, 10),
			"category": category,
		},
	})
}

// Update handles the edit submission.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id := parseID(r)
	backTo := "/admin/categorias/editar/" + strconv.FormatInt(id, 10)
	if !h.throttle(w, r, backTo) {
		return
	}

	if _, rej := h.categories.Update(id, categoryInput(r)); rej != nil {
		session.AddFlash(w, r, "error", rej.Message())
		http.Redirect(w, r, backTo, http.StatusSeeOther)
		return
	}

	session.AddFlash(w, r, "success", "Category updated.")
	http.Redirect(w, r, "/admin/categorias/listar", http.StatusSeeOther)
}

// Delete removes a category. Articles that referenced it keep their
// category id; the service logs how many went dangling.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.throttle(w, r, "/admin/categorias/listar") {
		return
	}

	if rej := h.categories.Delete(parseID(r)); rej != nil {
		session.AddFlash(w, r, "error", rej.Message())
	} else {
		session.AddFlash(w, r, "success", "Category deleted.")
	}
	http.Redirect(w, r, "/admin/categorias/listar", http.StatusSeeOther)
}
