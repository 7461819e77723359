package api

import (
	"net/http"

	"reviewers/pkg/config"
	"reviewers/pkg/sheets"

	"github.com/go-chi/chi/v5"
)

// GetRouter initialises a new http router and applies all routes
func GetRouter(cfg *config.Config, auth sheets.Authorizer, alloc Allocator) http.Handler {
	r := chi.NewRouter()
	return applyRoutes(r, &handler{cfg: cfg, auth: auth, alloc: alloc})
}

func applyRoutes(r chi.Router, h *handler) chi.Router {
	r.Route("/", func(r chi.Router) {
		r.Get("/", h.getIndex)
		r.Post("/allocate", h.postAllocate)
	})

	return r
}
