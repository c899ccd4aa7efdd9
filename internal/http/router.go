package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/AnkitS-21/campus-connect-hub/internal/domain/user"
	"github.com/AnkitS-21/campus-connect-hub/internal/http/handlers"
	httpmw "github.com/AnkitS-21/campus-connect-hub/internal/http/middleware"
)

type RouterDependencies struct {
	ProfileHandler     *handlers.ProfileHandler
	ListingHandler     *handlers.ListingHandler
	ApplicationHandler *handlers.ApplicationHandler
	ReportHandler      *handlers.ReportHandler
	ExportHandler      *handlers.ExportHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	Logger             *slog.Logger
	RequestTimeout     time.Duration
}

func NewRouter(deps RouterDependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(httpmw.Logging(deps.Logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(deps.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(deps.AuthMiddleware.Authenticate)

		r.Route("/students/profile", func(r chi.Router) {
			r.Use(httpmw.RequireRole(user.RoleStudent))
			r.Get("/", deps.ProfileHandler.Get)
			r.Put("/", deps.ProfileHandler.Upsert)
		})

		r.Route("/listings", func(r chi.Router) {
			r.Get("/", deps.ListingHandler.List)
			r.Get("/{id}", deps.ListingHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(httpmw.RequireRole(user.RoleAdmin))
				r.Post("/", deps.ListingHandler.Create)
				r.Patch("/{id}", deps.ListingHandler.Update)
				r.Delete("/{id}", deps.ListingHandler.Delete)
				r.Get("/{id}/applicants", deps.ApplicationHandler.ListApplicants)
				r.Get("/{id}/applicants/export", deps.ExportHandler.Applicants)
				r.Get("/{id}/report", deps.ReportHandler.Listing)
			})
		})

		r.Route("/applications", func(r chi.Router) {
			r.With(httpmw.RequireRole(user.RoleStudent)).Post("/", deps.ApplicationHandler.Apply)
			r.With(httpmw.RequireRole(user.RoleStudent)).Get("/", deps.ApplicationHandler.ListMine)
			r.With(httpmw.RequireRole(user.RoleAdmin)).Patch("/{id}/status", deps.ApplicationHandler.UpdateStatus)
		})

		r.With(httpmw.RequireRole(user.RoleAdmin)).Get("/reports", deps.ReportHandler.Portal)
	})

	return r
}
