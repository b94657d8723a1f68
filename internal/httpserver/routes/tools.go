package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/mw"
)

func init() { Register("tools", registerTools) }

func registerTools(r chi.Router, d deps.Deps) {
	r.Route("/api/tools", func(r chi.Router) {
		r.Use(mw.WriteLimit(d.WriteLimit))

		r.Get("/", handlers.ListTools(d))
		r.Post("/", handlers.CreateTool(d))
		r.Get("/{id}", handlers.GetTool(d))
		r.Put("/{id}", handlers.UpdateTool(d))
		r.Delete("/{id}", handlers.DeleteTool(d))
	})
	r.Get("/api/options", handlers.Options())
}
