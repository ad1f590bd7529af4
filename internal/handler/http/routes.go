package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MKhiriev/escrow-api/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.RealIP,
		h.withTraceID,
		h.withLogging,
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins:   h.allowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", traceIDHeader},
			ExposedHeaders:   []string{traceIDHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		middleware.Compress(5, "application/json"),
	)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", h.health)
		r.Post("/support/chat", h.supportChat)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.signup)
			r.Post("/signin", h.signin)
			r.With(h.auth, h.updateUserStatus).Post("/logout", h.logout)
		})

		// the caller's own resources
		r.Route("/user", func(r chi.Router) {
			r.Use(h.auth, h.updateUserStatus)
			r.Get("/profile", h.getProfile)
			r.Put("/profile", h.updateProfile)
			r.Get("/jobs", h.getMyJobs)
		})

		r.Get("/users/freelancers", h.listFreelancers)
		r.Get("/users/freelancers/{id}", h.getFreelancer)

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", h.listJobs)
			r.Get("/categories", h.listCategories)
			r.Get("/{id}", h.getJob)

			r.Group(func(r chi.Router) {
				r.Use(h.auth, h.updateUserStatus)
				r.With(h.requireUserType(models.UserTypeClient)).Post("/", h.createJob)
				r.Put("/{id}", h.updateJob)
				r.Delete("/{id}", h.deleteJob)
				r.With(h.requireUserType(models.UserTypeFreelancer)).Post("/{id}/proposals", h.applyToJob)
				r.Get("/{id}/proposals", h.listProposals)
			})
		})
	})

	router.NotFound(routeNotFound)
	router.MethodNotAllowed(routeNotFound)

	return router
}
