package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix.
func RegisterRoutes(r chi.Router) {
	r.Route("/calculator", func(r chi.Router) {
		r.Post("/anchors", Anchors)
		r.Post("/runout", Runout)
		r.Post("/wall-height", WallHeight)
		r.Post("/user-capacity", UserCapacityHandler)
	})
}
