// Package user holds the account owner of imported expenses.
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/FACorreiaa/statement-importer/pkg/db"
)

// ErrNotFound is returned when no user has the requested id.
var ErrNotFound = errors.New("user not found")

// User is the stored account, including its credential hash.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// PublicUser is the only representation of a user sent to clients.
type PublicUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Public projects the user onto the fields that are safe to expose.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username}
}

// UserRepo reads users.
type UserRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
}

// PostgresUserRepo implements UserRepo using PostgreSQL
type PostgresUserRepo struct {
	db db.DBTX
}

// NewPostgresUserRepo creates a new PostgreSQL-backed user repository
func NewPostgresUserRepo(conn db.DBTX) *PostgresUserRepo {
	return &PostgresUserRepo{db: conn}
}

// FindByID loads a user by id.
func (r *PostgresUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM app_user
		WHERE id = $1
	`

	var u User
	err := r.db.QueryRow(ctx, query, id).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}
