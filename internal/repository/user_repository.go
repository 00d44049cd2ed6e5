package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/storefront/internal/auth"
	"github.com/iliyamo/storefront/internal/model"
)

const userColumns = "id,email,name,password_hash,permissions,reset_token,reset_token_expiry,created_at,updated_at"

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// UserRepo mirrors the 'users' table.  It implements auth.UserLoader and
// auth.ResetStore; lookups that match nothing return auth.ErrUserNotFound.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*model.User, error) {
	var (
		u      model.User
		token  sql.NullString
		expiry sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Permissions, &token, &expiry, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	if token.Valid {
		u.ResetToken = &token.String
	}
	if expiry.Valid {
		t := expiry.Time.UTC()
		u.ResetTokenExpiry = &t
	}
	return &u, nil
}

// Create inserts u and fills in its ID and timestamps.  The email is
// stored lower-cased; a duplicate returns auth.ErrEmailTaken.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, name, password_hash, permissions) VALUES (?,?,?,?)",
		u.Email, u.Name, u.PasswordHash, u.Permissions)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return auth.ErrEmailTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM users WHERE id=?", u.ID).Scan(&u.CreatedAt, &u.UpdatedAt)
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// List returns every user ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]*model.User, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdatePermissions replaces the permission set of user id and returns
// the updated record.
func (r *UserRepo) UpdatePermissions(ctx context.Context, id uint64, perms model.PermissionSet) (*model.User, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET permissions=?, updated_at=CURRENT_TIMESTAMP WHERE id=?", perms, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// MySQL reports 0 for an unchanged row too; tell the two apart.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// SetResetToken stores a reset token and its absolute expiry, replacing
// any pending one.
func (r *UserRepo) SetResetToken(ctx context.Context, userID uint64, token string, expiry time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET reset_token=?, reset_token_expiry=? WHERE id=?",
		token, expiry.UTC(), userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

// GetByResetToken fetches the user holding token, whatever its expiry.
func (r *UserRepo) GetByResetToken(ctx context.Context, token string) (*model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE reset_token=? LIMIT 1", token))
}

// ConsumeReset sets the new password hash and clears the reset columns in
// one statement, guarded by the token and its expiry.
func (r *UserRepo) ConsumeReset(ctx context.Context, userID uint64, token, passwordHash string, now time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users
		 SET password_hash=?, reset_token=NULL, reset_token_expiry=NULL, updated_at=CURRENT_TIMESTAMP
		 WHERE id=? AND reset_token=? AND reset_token_expiry >= ?`,
		passwordHash, userID, token, now.UTC())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return auth.ErrTokenExpiredOrInvalid
	}
	return nil
}
