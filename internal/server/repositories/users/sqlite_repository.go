package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userstore/internal/common"
	"github.com/dmitrijs2005/userstore/internal/dbx"
	"github.com/dmitrijs2005/userstore/internal/server/models"
)

// SQLiteRepository stores timestamps as RFC3339Nano UTC text.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (id, user_name, normalized_user_name, email, normalized_email,
		   email_confirmed, password_hash, security_stamp, concurrency_stamp, phone_number,
		   phone_number_confirmed, two_factor_enabled, lockout_end, lockout_enabled,
		   access_failed_count, first_name, last_name, full_name, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING numeric_id
		 `

	args := []any{user.Identity.ID}
	args = append(args, identityArgs(&user.Identity, timeText(user.Identity.LockoutEnd))...)
	args = append(args, profileArgs(user)...)
	args = append(args, formatTime(user.CreatedAt))

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&user.NumericID); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+selectColumns+` FROM users WHERE id = ?`, id)
}

func (r *SQLiteRepository) GetByNumericID(ctx context.Context, numericID int64) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+selectColumns+` FROM users WHERE numeric_id = ?`, numericID)
}

func (r *SQLiteRepository) GetByNormalizedUserName(ctx context.Context, normalizedUserName string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+selectColumns+` FROM users WHERE normalized_user_name = ?`, normalizedUserName)
}

func (r *SQLiteRepository) GetByNormalizedEmail(ctx context.Context, normalizedEmail string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+selectColumns+` FROM users WHERE normalized_email = ?`, normalizedEmail)
}

func (r *SQLiteRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	query := `SELECT ` + selectColumns + ` FROM users ORDER BY numeric_id LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanSQLiteUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, user *models.User, expectedStamp string) error {
	query :=
		`UPDATE users SET user_name = ?, normalized_user_name = ?, email = ?, normalized_email = ?,
		   email_confirmed = ?, password_hash = ?, security_stamp = ?, concurrency_stamp = ?,
		   phone_number = ?, phone_number_confirmed = ?, two_factor_enabled = ?, lockout_end = ?,
		   lockout_enabled = ?, access_failed_count = ?, first_name = ?, last_name = ?, full_name = ?
		 WHERE id = ? AND concurrency_stamp = ?
		 `

	args := identityArgs(&user.Identity, timeText(user.Identity.LockoutEnd))
	args = append(args, profileArgs(user)...)
	args = append(args, user.Identity.ID, expectedStamp)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	var one int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, user.Identity.ID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	if err != nil {
		return err
	}

	return common.ErrVersionConflict
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *SQLiteRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	u, err := scanSQLiteUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return u, nil
}

func scanSQLiteUser(s rowScanner) (*models.User, error) {
	var row userRow
	var lockoutEnd sql.NullString
	var createdAt string

	if err := s.Scan(row.dest(&lockoutEnd, &createdAt)...); err != nil {
		return nil, err
	}

	u := row.model()

	t, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}
	u.CreatedAt = t

	if lockoutEnd.Valid {
		t, err := parseTime(lockoutEnd.String)
		if err != nil {
			return nil, fmt.Errorf("lockout_end: %w", err)
		}
		u.Identity.LockoutEnd = &t
	}

	return u, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func timeText(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}
