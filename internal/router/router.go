// Package router sets up all HTTP routes and middleware chains for the
// letterpress blog. It organizes routes into public, authoring and admin
// groups with appropriate middleware stacks.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"letterpress/internal/handlers"
	"letterpress/internal/middleware"
	"letterpress/internal/models"
	"letterpress/internal/session"
	"letterpress/web"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, auth *handlers.Auth, articles *handlers.Articles, categories *handlers.Categories, public *handlers.Public, users *handlers.Users) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check, no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Embedded static assets.
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS()))))

	// Public reader routes.
	r.Get("/", public.Home)

	// Auth pages, accessible without a session.
	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRF)

		r.Get("/login", auth.LoginPage)
		r.Post("/login", auth.LoginSubmit)
		r.Post("/logout", auth.Logout)

		// 2FA requires auth but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/2fa/setup", auth.TwoFASetupPage)
			r.Post("/2fa/setup", auth.TwoFASetupSubmit)
			r.Get("/2fa/verify", auth.TwoFAVerifyPage)
			r.Post("/2fa/verify", auth.TwoFAVerifySubmit)
		})
	})

	r.Route("/artigos", func(r chi.Router) {
		// Reader-facing feed, search and article view.
		r.Get("/", public.List)
		r.Get("/ler/{id}", public.Read)

		// Authoring area: authors and admins, signed in with 2FA complete.
		r.Group(func(r chi.Router) {
			r.Use(middleware.CSRF)
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)
			r.Use(middleware.RequireRole(models.RoleAuthor, models.RoleAdmin))

			r.Get("/meus", articles.Mine)
			r.Get("/cadastrar", articles.NewForm)
			r.Post("/cadastrar", articles.Create)
			r.Get("/editar/{id}", articles.EditForm)
			r.Post("/editar/{id}", articles.Update)
			r.Post("/excluir/{id}", articles.Delete)
			r.Post("/publicar/{id}", articles.Publish)
			r.Post("/pausar/{id}", articles.Pause)
		})
	})

	// Admin area.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.CSRF)
		r.Use(middleware.RequireAuth)
		r.Use(middleware.Require2FA)
		r.Use(middleware.RequireRole(models.RoleAdmin))

		r.Route("/categorias", func(r chi.Router) {
			r.Get("/listar", categories.List)
			r.Get("/cadastrar", categories.NewForm)
			r.Post("/cadastrar", categories.Create)
			r.Get("/editar/{id}", categories.EditForm)
			r.Post("/editar/{id}", categories.Update)
			r.Post("/excluir/{id}", categories.Delete)
		})

		r.Route("/usuarios", func(r chi.Router) {
			r.Get("/", users.List)
			r.Post("/2fa-reset/{id}", users.Reset2FA)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// staticFS roots the embedded assets at web/static so URLs map directly
// to file names.
func staticFS() fs.FS {
	sub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
