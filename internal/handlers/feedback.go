package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/crucial707/feedback-board/internal/authz"
	"github.com/crucial707/feedback-board/internal/forms"
	"github.com/crucial707/feedback-board/internal/metrics"
	"github.com/crucial707/feedback-board/internal/models"
	"github.com/crucial707/feedback-board/internal/repo"
)

// ==========================
// New Feedback
// ==========================
func (s *Server) ShowNewFeedback(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	current, _ := s.Sessions.Current(r)

	if !authz.Allowed(current, username) {
		unauthorized(w)
		return
	}

	render(w, http.StatusOK, "feedback_form.html", map[string]interface{}{
		"Form":        forms.FeedbackForm{},
		"FormAction":  "/users/" + username + "/feedback/new",
		"Heading":     "Add Feedback",
		"SubmitLabel": "Add",
	})
}

func (s *Server) HandleNewFeedback(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	current, _ := s.Sessions.Current(r)

	if !authz.Allowed(current, username) {
		unauthorized(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	form := forms.ParseFeedback(r)
	if fields := form.Validate(); fields != nil {
		render(w, http.StatusOK, "feedback_form.html", map[string]interface{}{
			"Form":        form,
			"Fields":      fields,
			"FormAction":  "/users/" + username + "/feedback/new",
			"Heading":     "Add Feedback",
			"SubmitLabel": "Add",
		})
		return
	}

	fb, err := s.Feedback.Create(r.Context(), form.Title, form.Content, username)
	if errors.Is(err, repo.ErrNotFound) {
		// Session cookie outlived the account; the owning user row is gone.
		notFound(w)
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}

	metrics.IncFeedbackWrites("create")
	http.Redirect(w, r, "/users/"+fb.Username, http.StatusFound)
}

// lookupOwnedFeedback resolves the {id} route param, confirms the record
// exists (404) before checking ownership (401), and returns it. The bool
// reports whether the caller may proceed; on false the response is written.
func (s *Server) lookupOwnedFeedback(w http.ResponseWriter, r *http.Request) (*models.Feedback, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		notFound(w)
		return nil, false
	}

	fb, err := s.Feedback.GetByID(r.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		notFound(w)
		return nil, false
	}
	if err != nil {
		serverError(w, r, err)
		return nil, false
	}

	current, _ := s.Sessions.Current(r)
	if !authz.Allowed(current, fb.Username) {
		unauthorized(w)
		return nil, false
	}

	return fb, true
}

// ==========================
// Update Feedback
// ==========================
func (s *Server) ShowUpdateFeedback(w http.ResponseWriter, r *http.Request) {
	fb, ok := s.lookupOwnedFeedback(w, r)
	if !ok {
		return
	}

	render(w, http.StatusOK, "feedback_form.html", map[string]interface{}{
		"Form":        forms.FeedbackForm{Title: fb.Title, Content: fb.Content},
		"FormAction":  "/feedback/" + strconv.Itoa(fb.ID) + "/update",
		"Heading":     "Edit Feedback",
		"SubmitLabel": "Save",
	})
}

func (s *Server) HandleUpdateFeedback(w http.ResponseWriter, r *http.Request) {
	fb, ok := s.lookupOwnedFeedback(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	form := forms.ParseFeedback(r)
	if fields := form.Validate(); fields != nil {
		render(w, http.StatusOK, "feedback_form.html", map[string]interface{}{
			"Form":        form,
			"Fields":      fields,
			"FormAction":  "/feedback/" + strconv.Itoa(fb.ID) + "/update",
			"Heading":     "Edit Feedback",
			"SubmitLabel": "Save",
		})
		return
	}

	updated, err := s.Feedback.Update(r.Context(), fb.ID, form.Title, form.Content)
	if errors.Is(err, repo.ErrNotFound) {
		notFound(w)
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}

	metrics.IncFeedbackWrites("update")
	http.Redirect(w, r, "/users/"+updated.Username, http.StatusFound)
}

// ==========================
// Delete Feedback
// ==========================
func (s *Server) HandleDeleteFeedback(w http.ResponseWriter, r *http.Request) {
	fb, ok := s.lookupOwnedFeedback(w, r)
	if !ok {
		return
	}

	err := s.Feedback.Delete(r.Context(), fb.ID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		serverError(w, r, err)
		return
	}

	metrics.IncFeedbackWrites("delete")
	http.Redirect(w, r, "/users/"+fb.Username, http.StatusFound)
}
