package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"toronto_stays/internal/adapters/observability"
	"toronto_stays/internal/domain"
)

type userRow struct {
	ID           int64          `db:"id"`
	Username     string         `db:"username"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	Phone        sql.NullString `db:"phone"`
	CreatedAt    time.Time      `db:"created_at"`
}

// CreateUser inserts u; a unique-key collision on username or email becomes
// ErrAlreadyExists.
func (r *Repo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	defer observability.ObserveDB("create_user", time.Now())
	res, err := r.db.ExecContext(ctx, insertUserSQL, u.Username, u.Email, u.PasswordHash, valStr(u.Phone))
	if err != nil {
		if isDuplicate(err) {
			return 0, domain.ErrAlreadyExists
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) UserExists(ctx context.Context, username, email string) (bool, error) {
	defer observability.ObserveDB("user_exists", time.Now())
	var exists bool
	if err := r.db.GetContext(ctx, &exists, userExistsSQL, email, username); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *Repo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	defer observability.ObserveDB("get_user", time.Now())
	var row userRow
	if err := r.db.GetContext(ctx, &row, getUserByUsernameSQL, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return domain.User{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Phone:        nullStr(row.Phone),
		CreatedAt:    row.CreatedAt,
	}, nil
}
