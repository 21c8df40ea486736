package store

import (
	"context"
	"time"

	"folio-go/internal/model"
)

const userColumns = "id, username, email, password_hash, created_at"

// CreateUserParams holds the fields required to create a user.
type CreateUserParams struct {
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// CreateUser inserts a new user and returns the stored record.
// Duplicate usernames or emails fail the unique constraints; callers
// can detect that with IsUniqueViolation.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		arg.Username, arg.Email, arg.PasswordHash, arg.CreatedAt,
	)
	if err != nil {
		return model.User{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}

	return model.User{
		ID:           id,
		Username:     arg.Username,
		Email:        arg.Email,
		PasswordHash: arg.PasswordHash,
		CreatedAt:    arg.CreatedAt,
	}, nil
}

// GetUserByID returns the user with the given id.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

// GetUserByUsername returns the user with the given username.
// Lookups are case-sensitive, exact match only.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

// CountUsers returns the number of user records.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
