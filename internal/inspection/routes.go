package inspection

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the inspection endpoints under /inspections.
func RegisterRoutes(r chi.Router) {
	r.Route("/inspections", func(r chi.Router) {
		r.Post("/evaluate", Evaluate)
	})
}
