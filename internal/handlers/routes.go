package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crucial707/feedback-board/internal/middleware"
)

// Routes assembles the middleware chain and the full HTTP surface.
// hsts enables the Strict-Transport-Security header when serving HTTPS.
func (s *Server) Routes(hsts bool) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(hsts))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", s.Home)

	r.Get("/register", s.ShowRegister)
	r.Post("/register", s.HandleRegister)
	r.Get("/login", s.ShowLogin)
	r.Post("/login", s.HandleLogin)
	r.Get("/logout", s.Logout)

	r.Get("/users/{username}", s.ShowUser)
	r.Post("/users/{username}/delete", s.DeleteUser)
	r.Get("/users/{username}/feedback/new", s.ShowNewFeedback)
	r.Post("/users/{username}/feedback/new", s.HandleNewFeedback)

	r.Get("/feedback/{id}/update", s.ShowUpdateFeedback)
	r.Post("/feedback/{id}/update", s.HandleUpdateFeedback)
	r.Post("/feedback/{id}/delete", s.HandleDeleteFeedback)

	return r
}
