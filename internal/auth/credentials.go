package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/crucial707/feedback-board/internal/models"
	"github.com/crucial707/feedback-board/internal/repo"
)

// dummyHash is a bcrypt hash of an unguessable value, compared against when the
// username does not exist so both failure paths cost one bcrypt verification.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// ==========================
// Credentials
// ==========================
// Credentials is the credential store: it owns password hashing and
// verification on top of the user repository.
type Credentials struct {
	Users *repo.UserRepo
}

func NewCredentials(users *repo.UserRepo) *Credentials {
	return &Credentials{Users: users}
}

// ==========================
// Register
// ==========================
// Register hashes the password and creates the user. A taken username surfaces
// as repo.ErrDuplicateUsername.
func (c *Credentials) Register(ctx context.Context, username, password, firstName, lastName, email string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return c.Users.Create(ctx, username, string(hash), firstName, lastName, email)
}

// ==========================
// Authenticate
// ==========================
// Authenticate returns the user when the password matches its stored hash, and
// (nil, nil) on any mismatch. Unknown username and wrong password are
// indistinguishable to the caller; both paths perform one bcrypt comparison.
func (c *Credentials) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := c.Users.GetByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil
	}

	return user, nil
}
