package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/crucial707/feedback-board/internal/models"
)

// pq error code for foreign_key_violation
const pqForeignKeyViolation = "23503"

// ==========================
// FeedbackRepo
// ==========================
type FeedbackRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewFeedbackRepo(db *sql.DB) *FeedbackRepo {
	return &FeedbackRepo{DB: db}
}

// ==========================
// Create Feedback
// ==========================
func (r *FeedbackRepo) Create(ctx context.Context, title, content, username string) (*models.Feedback, error) {
	query := `
		INSERT INTO feedback (title, content, username)
		VALUES ($1, $2, $3)
		RETURNING id, title, content, username, created_at
	`

	fb := &models.Feedback{}

	err := r.DB.QueryRowContext(ctx, query, title, content, username).
		Scan(&fb.ID, &fb.Title, &fb.Content, &fb.Username, &fb.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			// The referenced user no longer exists.
			return nil, ErrNotFound
		}
		return nil, err
	}

	return fb, nil
}

// ==========================
// Get By ID
// ==========================
func (r *FeedbackRepo) GetByID(ctx context.Context, id int) (*models.Feedback, error) {
	query := `
		SELECT id, title, content, username, created_at
		FROM feedback
		WHERE id = $1
	`

	fb := &models.Feedback{}

	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&fb.ID, &fb.Title, &fb.Content, &fb.Username, &fb.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return fb, nil
}

// ==========================
// List By Username
// ==========================
func (r *FeedbackRepo) ListByUsername(ctx context.Context, username string) ([]models.Feedback, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, title, content, username, created_at
		FROM feedback
		WHERE username = $1
		ORDER BY id
	`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Feedback
	for rows.Next() {
		var fb models.Feedback
		if err := rows.Scan(&fb.ID, &fb.Title, &fb.Content, &fb.Username, &fb.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, fb)
	}

	return items, rows.Err()
}

// ==========================
// List All
// ==========================
func (r *FeedbackRepo) List(ctx context.Context) ([]models.Feedback, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, title, content, username, created_at
		FROM feedback
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Feedback
	for rows.Next() {
		var fb models.Feedback
		if err := rows.Scan(&fb.ID, &fb.Title, &fb.Content, &fb.Username, &fb.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, fb)
	}

	return items, rows.Err()
}

// ==========================
// Update Feedback
// ==========================
func (r *FeedbackRepo) Update(ctx context.Context, id int, title, content string) (*models.Feedback, error) {
	query := `
		UPDATE feedback
		SET title = $1, content = $2
		WHERE id = $3
		RETURNING id, title, content, username, created_at
	`

	fb := &models.Feedback{}

	err := r.DB.QueryRowContext(ctx, query, title, content, id).
		Scan(&fb.ID, &fb.Title, &fb.Content, &fb.Username, &fb.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return fb, nil
}

// ==========================
// Delete Feedback
// ==========================
func (r *FeedbackRepo) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
