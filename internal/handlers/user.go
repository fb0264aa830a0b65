package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/crucial707/feedback-board/internal/authz"
	"github.com/crucial707/feedback-board/internal/forms"
	"github.com/crucial707/feedback-board/internal/metrics"
	"github.com/crucial707/feedback-board/internal/repo"
)

// ==========================
// Homepage
// ==========================
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/register", http.StatusFound)
}

// ==========================
// Register
// ==========================
func (s *Server) ShowRegister(w http.ResponseWriter, r *http.Request) {
	if current, ok := s.Sessions.Current(r); ok {
		http.Redirect(w, r, "/users/"+current, http.StatusFound)
		return
	}

	render(w, http.StatusOK, "register.html", map[string]interface{}{
		"Form": forms.RegisterForm{},
	})
}

func (s *Server) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if current, ok := s.Sessions.Current(r); ok {
		http.Redirect(w, r, "/users/"+current, http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	form := forms.ParseRegister(r)
	if fields := form.Validate(); fields != nil {
		render(w, http.StatusOK, "register.html", map[string]interface{}{
			"Form":   form,
			"Fields": fields,
		})
		return
	}

	user, err := s.Credentials.Register(r.Context(), form.Username, form.Password, form.FirstName, form.LastName, form.Email)
	if errors.Is(err, repo.ErrDuplicateUsername) {
		render(w, http.StatusOK, "register.html", map[string]interface{}{
			"Form":   form,
			"Fields": map[string]string{"username": "Username already taken."},
		})
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}

	metrics.IncRegistrations()

	if err := s.Sessions.Establish(w, user.Username); err != nil {
		serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/users/"+user.Username, http.StatusFound)
}

// ==========================
// Login
// ==========================
func (s *Server) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if current, ok := s.Sessions.Current(r); ok {
		http.Redirect(w, r, "/users/"+current, http.StatusFound)
		return
	}

	render(w, http.StatusOK, "login.html", map[string]interface{}{
		"Form": forms.LoginForm{},
	})
}

func (s *Server) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if current, ok := s.Sessions.Current(r); ok {
		http.Redirect(w, r, "/users/"+current, http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	form := forms.ParseLogin(r)
	if fields := form.Validate(); fields != nil {
		render(w, http.StatusOK, "login.html", map[string]interface{}{
			"Form":   form,
			"Fields": fields,
		})
		return
	}

	user, err := s.Credentials.Authenticate(r.Context(), form.Username, form.Password)
	if err != nil {
		serverError(w, r, err)
		return
	}
	if user == nil {
		// Same message whichever part was wrong, so usernames cannot be probed.
		metrics.IncLogins("failure")
		render(w, http.StatusOK, "login.html", map[string]interface{}{
			"Form":  form,
			"Error": "Invalid username/password.",
		})
		return
	}

	metrics.IncLogins("success")

	if err := s.Sessions.Establish(w, user.Username); err != nil {
		serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/users/"+user.Username, http.StatusFound)
}

// ==========================
// Logout
// ==========================
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	s.Sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

// ==========================
// Show User Page
// ==========================
func (s *Server) ShowUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	current, _ := s.Sessions.Current(r)

	if !authz.Allowed(current, username) {
		unauthorized(w)
		return
	}

	user, err := s.Users.GetByUsername(r.Context(), username)
	if errors.Is(err, repo.ErrNotFound) {
		notFound(w)
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}

	items, err := s.Feedback.ListByUsername(r.Context(), username)
	if err != nil {
		serverError(w, r, err)
		return
	}

	render(w, http.StatusOK, "user.html", map[string]interface{}{
		"User":     user,
		"Feedback": items,
	})
}

// ==========================
// Delete User (cascades feedback)
// ==========================
func (s *Server) DeleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	current, _ := s.Sessions.Current(r)

	if !authz.Allowed(current, username) {
		unauthorized(w)
		return
	}

	s.Sessions.Clear(w)

	err := s.Users.Delete(r.Context(), username)
	if errors.Is(err, repo.ErrNotFound) {
		notFound(w)
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/login", http.StatusFound)
}
