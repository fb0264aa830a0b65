package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func feedbackColumns() []string {
	return []string{"id", "title", "content", "username", "created_at"}
}

func TestFeedbackRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO feedback`).
		WithArgs("T", "C", "alice").
		WillReturnRows(sqlmock.NewRows(feedbackColumns()).AddRow(1, "T", "C", "alice", time.Now()))

	fb, err := NewFeedbackRepo(db).Create(context.Background(), "T", "C", "alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if fb.ID != 1 || fb.Username != "alice" {
		t.Errorf("unexpected feedback: %+v", fb)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestFeedbackRepo_Create_OwnerGone(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO feedback`).
		WithArgs("T", "C", "ghost").
		WillReturnError(&pq.Error{Code: "23503"})

	_, err = NewFeedbackRepo(db).Create(context.Background(), "T", "C", "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestFeedbackRepo_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, title, content, username`).
		WithArgs(999).
		WillReturnError(sql.ErrNoRows)

	_, err = NewFeedbackRepo(db).GetByID(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestFeedbackRepo_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`UPDATE feedback`).
		WithArgs("T2", "C2", 1).
		WillReturnRows(sqlmock.NewRows(feedbackColumns()).AddRow(1, "T2", "C2", "alice", time.Now()))

	fb, err := NewFeedbackRepo(db).Update(context.Background(), 1, "T2", "C2")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if fb.Title != "T2" || fb.Content != "C2" {
		t.Errorf("unexpected feedback: %+v", fb)
	}
}

func TestFeedbackRepo_ListByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, title, content, username`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(feedbackColumns()).
			AddRow(1, "A", "a", "alice", time.Now()).
			AddRow(2, "B", "b", "alice", time.Now()))

	items, err := NewFeedbackRepo(db).ListByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListByUsername: %v", err)
	}
	if len(items) != 2 || items[0].Title != "A" || items[1].Title != "B" {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestFeedbackRepo_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM feedback WHERE id = \$1`).
		WithArgs(999).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewFeedbackRepo(db).Delete(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
