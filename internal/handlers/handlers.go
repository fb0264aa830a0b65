package handlers

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/crucial707/feedback-board/internal/auth"
	"github.com/crucial707/feedback-board/internal/repo"
	"github.com/crucial707/feedback-board/internal/session"
)

//go:embed templates
var templatesFS embed.FS

// ==========================
// Server
// ==========================
// Server composes the credential store, record stores, and session manager
// into the request handlers. All dependencies are injected; nothing is global.
type Server struct {
	Credentials *auth.Credentials
	Users       *repo.UserRepo
	Feedback    *repo.FeedbackRepo
	Sessions    *session.Manager
}

func NewServer(credentials *auth.Credentials, users *repo.UserRepo, feedback *repo.FeedbackRepo, sessions *session.Manager) *Server {
	return &Server{
		Credentials: credentials,
		Users:       users,
		Feedback:    feedback,
		Sessions:    sessions,
	}
}

// render writes an HTML page composed of the layout plus the named page
// template. data is the page payload; pages read keys like Form, Fields,
// Error from it.
func render(w http.ResponseWriter, status int, name string, data interface{}) {
	// Pages dereference .Fields.<name>; default it so renders without
	// validation errors do not fail mid-execute.
	if m, ok := data.(map[string]interface{}); ok {
		if _, present := m["Fields"]; !present {
			m["Fields"] = map[string]string{}
		}
	}

	content, err := templatesFS.ReadFile("templates/" + name)
	if err != nil {
		slog.Error("template not found", "name", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	layout, err := templatesFS.ReadFile("templates/layout.html")
	if err != nil {
		slog.Error("layout template missing", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	t := template.Must(template.New("").Parse(string(layout)))
	t = template.Must(t.New("").Parse(string(content)))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("template execute", "name", name, "error", err)
	}
}
