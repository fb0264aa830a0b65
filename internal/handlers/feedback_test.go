package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func feedbackRow(id int, title, content, username string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "content", "username", "created_at"}).
		AddRow(id, title, content, username, time.Now())
}

func TestHandleNewFeedback_Unauthenticated(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := newTestServer(db)
	req := formRequest("POST", "/users/alice/feedback/new",
		url.Values{"title": {"T"}, "content": {"C"}},
		map[string]string{"username": "alice"})
	rr := httptest.NewRecorder()
	s.HandleNewFeedback(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rr.Code)
	}
	// No insert may reach the database.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestHandleNewFeedback_WrongOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := newTestServer(db)
	req := formRequest("POST", "/users/alice/feedback/new",
		url.Values{"title": {"T"}, "content": {"C"}},
		map[string]string{"username": "alice"})
	req.AddCookie(loginAs(t, s, "bob"))
	rr := httptest.NewRecorder()
	s.HandleNewFeedback(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestHandleNewFeedback_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO feedback`).
		WithArgs("T", "C", "alice").
		WillReturnRows(feedbackRow(1, "T", "C", "alice"))

	s := newTestServer(db)
	req := formRequest("POST", "/users/alice/feedback/new",
		url.Values{"title": {"T"}, "content": {"C"}},
		map[string]string{"username": "alice"})
	req.AddCookie(loginAs(t, s, "alice"))
	rr := httptest.NewRecorder()
	s.HandleNewFeedback(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("status: got %d, want 302", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/users/alice" {
		t.Errorf("redirect: got %q, want /users/alice", loc)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestHandleNewFeedback_ValidationErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := newTestServer(db)
	req := formRequest("POST", "/users/alice/feedback/new",
		url.Values{"title": {""}, "content": {""}},
		map[string]string{"username": "alice"})
	req.AddCookie(loginAs(t, s, "alice"))
	rr := httptest.NewRecorder()
	s.HandleNewFeedback(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 re-render", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "This field is required.") {
		t.Error("expected field errors in the re-rendered form")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUpdateFeedback_MissingRecordBeforeOwnership(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, title, content, username`).
		WithArgs(999).
		WillReturnError(sql.ErrNoRows)

	s := newTestServer(db)
	// No session at all: a missing record must still surface as 404, not a panic
	// or an ownership failure against a nil record.
	req := requestWithChiURLParams("GET", "/feedback/999/update", nil, map[string]string{"id": "999"})
	rr := httptest.NewRecorder()
	s.ShowUpdateFeedback(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
}

func TestUpdateFeedback_InvalidID(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := newTestServer(db)
	req := requestWithChiURLParams("GET", "/feedback/abc/update", nil, map[string]string{"id": "abc"})
	rr := httptest.NewRecorder()
	s.ShowUpdateFeedback(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
}

func TestUpdateFeedback_WrongOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, title, content, username`).
		WithArgs(1).
		WillReturnRows(feedbackRow(1, "T", "C", "alice"))

	s := newTestServer(db)
	req := formRequest("POST", "/feedback/1/update",
		url.Values{"title": {"X"}, "content": {"Y"}},
		map[string]string{"id": "1"})
	req.AddCookie(loginAs(t, s, "bob"))
	rr := httptest.NewRecorder()
	s.HandleUpdateFeedback(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestShowUpdateFeedback_Prefills(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, title, content, username`).
		WithArgs(1).
		WillReturnRows(feedbackRow(1, "Old title", "Old content", "alice"))

	s := newTestServer(db)
	req := requestWithChiURLParams("GET", "/feedback/1/update", nil, map[string]string{"id": "1"})
	req.AddCookie(loginAs(t, s, "alice"))
	rr := httptest.NewRecorder()
	s.ShowUpdateFeedback(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Old title") || !strings.Contains(body, "Old content") {
		t.Error("expected the edit form to be prefilled")
	}
}

func TestHandleUpdateFeedback_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, title, content, username`).
		WithArgs(1).
		WillReturnRows(feedbackRow(1, "Old", "Old", "alice"))
	mock.ExpectQuery(`UPDATE feedback`).
		WithArgs("New title", "New content", 1).
		WillReturnRows(feedbackRow(1, "New title", "New content", "alice"))

	s := newTestServer(db)
	req := formRequest("POST", "/feedback/1/update",
		url.Values{"title": {"New title"}, "content": {"New content"}},
		map[string]string{"id": "1"})
	req.AddCookie(loginAs(t, s, "alice"))
	rr := httptest.NewRecorder()
	s.HandleUpdateFeedback(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("status: got %d, want 302", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/users/alice" {
		t.Errorf("redirect: got %q, want /users/alice", loc)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestHandleDeleteFeedback_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, title, content, username`).
		WithArgs(1).
		WillReturnRows(feedbackRow(1, "T", "C", "alice"))
	mock.ExpectExec(`DELETE FROM feedback WHERE id = \$1`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := newTestServer(db)
	req := requestWithChiURLParams("POST", "/feedback/1/delete", nil, map[string]string{"id": "1"})
	req.AddCookie(loginAs(t, s, "alice"))
	rr := httptest.NewRecorder()
	s.HandleDeleteFeedback(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("status: got %d, want 302", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/users/alice" {
		t.Errorf("redirect: got %q, want /users/alice", loc)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestHandleDeleteFeedback_WrongOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, title, content, username`).
		WithArgs(1).
		WillReturnRows(feedbackRow(1, "T", "C", "alice"))

	s := newTestServer(db)
	req := requestWithChiURLParams("POST", "/feedback/1/delete", nil, map[string]string{"id": "1"})
	req.AddCookie(loginAs(t, s, "bob"))
	rr := httptest.NewRecorder()
	s.HandleDeleteFeedback(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
