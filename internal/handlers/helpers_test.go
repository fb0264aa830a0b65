package handlers

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/crucial707/feedback-board/internal/auth"
	"github.com/crucial707/feedback-board/internal/repo"
	"github.com/crucial707/feedback-board/internal/session"
)

func newTestServer(db *sql.DB) *Server {
	users := repo.NewUserRepo(db)
	feedback := repo.NewFeedbackRepo(db)
	sessions := session.NewManager([]byte("test-secret"), time.Hour, false)
	return NewServer(auth.NewCredentials(users), users, feedback, sessions)
}

// requestWithChiURLParams returns a request with chi route context and URL params set.
func requestWithChiURLParams(method, path string, body io.Reader, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, body)
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// formRequest builds a form POST with chi URL params.
func formRequest(method, path string, values url.Values, params map[string]string) *http.Request {
	req := requestWithChiURLParams(method, path, strings.NewReader(values.Encode()), params)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// loginAs returns a valid session cookie for username.
func loginAs(t *testing.T, s *Server, username string) *http.Cookie {
	t.Helper()
	rr := httptest.NewRecorder()
	if err := s.Sessions.Establish(rr, username); err != nil {
		t.Fatalf("Establish: %v", err)
	}
	for _, c := range rr.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}
