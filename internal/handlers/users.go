package handlers

import (
	"log/slog"
	"net/http"

	"letterpress/internal/render"
	"letterpress/internal/session"
	"letterpress/internal/store"
)

// Users groups the admin-only account management handlers.
type Users struct {
	renderer *render.Renderer
	users    *store.UserStore
}

// NewUsers creates the user handler group.
func NewUsers(renderer *render.Renderer, users *store.UserStore) *Users {
	return &Users{renderer: renderer, users: users}
}

// List shows every account with its 2FA state.
func (h *Users) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List()
	if err != nil {
		slog.Error("user list failed", "error", err)
		session.AddFlash(w, r, "error", "Could not load users.")
	}

	h.renderer.Page(w, r, "users_list", &render.PageData{
		Title:   "Users",
		Section: "users",
		Data:    map[string]any{"users": users},
	})
}

// Reset2FA clears a user's TOTP enrollment so they re-enroll on next
// login. The escape hatch for a lost authenticator device.
func (h *Users) Reset2FA(w http.ResponseWriter, r *http.Request) {
	id := parseID(r)
	if err := h.users.ResetTOTP(id); err != nil {
		slog.Error("totp reset failed", "error", err, "user", id)
		session.AddFlash(w, r, "error", "Could not reset 2FA.")
	} else {
		session.AddFlash(w, r, "success", "2FA reset. The user will re-enroll on next sign-in.")
	}
	http.Redirect(w, r, "/admin/usuarios", http.StatusSeeOther)
}
