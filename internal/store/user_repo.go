package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// LocalUserID is the profile used when no one is signed in. Practice is
// always recorded; sign-in just attributes it to a real identity.
const LocalUserID = "local"

// UserRepo persists learner profiles.
type UserRepo struct {
	db *sqlx.DB
}

// Upsert inserts the user or refreshes email, display name, and
// last-active on conflict.
func (r *UserRepo) Upsert(ctx context.Context, u *User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.LastActive = now

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO users (id, email, display_name, created_at, last_active)
		VALUES (:id, :email, :display_name, :created_at, :last_active)
		ON CONFLICT (id) DO UPDATE SET
			email = excluded.email,
			display_name = excluded.display_name,
			last_active = excluded.last_active`, u)
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", u.ID, err)
	}
	return nil
}

// Get returns the user by id, or nil if unknown.
func (r *UserRepo) Get(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return &u, nil
}

// EnsureLocal guarantees the signed-out profile exists and returns it.
func (r *UserRepo) EnsureLocal(ctx context.Context) (*User, error) {
	u := &User{ID: LocalUserID, DisplayName: "Local Player"}
	if err := r.Upsert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
