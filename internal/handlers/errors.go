package handlers

import (
	"log/slog"
	"net/http"
)

// renderError writes a terminal error page. Internal details never reach the
// client; they are logged by the caller.
func renderError(w http.ResponseWriter, status int, message string) {
	render(w, status, "error.html", map[string]interface{}{
		"Status":  status,
		"Message": message,
	})
}

// unauthorized ends the request with a 401 page. No partial data is returned.
func unauthorized(w http.ResponseWriter) {
	renderError(w, http.StatusUnauthorized, "You are not authorized to view this page.")
}

// notFound ends the request with a 404 page.
func notFound(w http.ResponseWriter) {
	renderError(w, http.StatusNotFound, "The requested record does not exist.")
}

// serverError logs the storage or rendering failure and ends the request with a 500 page.
func serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err)
	renderError(w, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}
