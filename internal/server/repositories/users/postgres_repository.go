package users

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/userstore/internal/common"
	"github.com/dmitrijs2005/userstore/internal/dbx"
	"github.com/dmitrijs2005/userstore/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (id, user_name, normalized_user_name, email, normalized_email,
		   email_confirmed, password_hash, security_stamp, concurrency_stamp, phone_number,
		   phone_number_confirmed, two_factor_enabled, lockout_end, lockout_enabled,
		   access_failed_count, first_name, last_name, full_name, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		 RETURNING numeric_id
		 `

	args := []any{user.Identity.ID}
	args = append(args, identityArgs(&user.Identity, nullTime(user.Identity.LockoutEnd))...)
	args = append(args, profileArgs(user)...)
	args = append(args, user.CreatedAt)

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&user.NumericID); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+selectColumns+` FROM users WHERE id = $1`, id)
}

func (r *PostgresRepository) GetByNumericID(ctx context.Context, numericID int64) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+selectColumns+` FROM users WHERE numeric_id = $1`, numericID)
}

func (r *PostgresRepository) GetByNormalizedUserName(ctx context.Context, normalizedUserName string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+selectColumns+` FROM users WHERE normalized_user_name = $1`, normalizedUserName)
}

func (r *PostgresRepository) GetByNormalizedEmail(ctx context.Context, normalizedEmail string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+selectColumns+` FROM users WHERE normalized_email = $1`, normalizedEmail)
}

func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	query := `SELECT ` + selectColumns + ` FROM users ORDER BY numeric_id LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanPostgresUser(rows)
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

func (r *PostgresRepository) Update(ctx context.Context, user *models.User, expectedStamp string) error {
	query :=
		`UPDATE users SET user_name = $1, normalized_user_name = $2, email = $3, normalized_email = $4,
		   email_confirmed = $5, password_hash = $6, security_stamp = $7, concurrency_stamp = $8,
		   phone_number = $9, phone_number_confirmed = $10, two_factor_enabled = $11, lockout_end = $12,
		   lockout_enabled = $13, access_failed_count = $14, first_name = $15, last_name = $16, full_name = $17
		 WHERE id = $18 AND concurrency_stamp = $19
		 `

	args := identityArgs(&user.Identity, nullTime(user.Identity.LockoutEnd))
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
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = $1`, user.Identity.ID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	if err != nil {
		return err
	}

	return common.ErrVersionConflict
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
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

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	u, err := scanPostgresUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return u, nil
}

func scanPostgresUser(s rowScanner) (*models.User, error) {
	var row userRow
	var lockoutEnd sql.NullTime

	if err := s.Scan(row.dest(&lockoutEnd, &row.user.CreatedAt)...); err != nil {
		return nil, err
	}

	u := row.model()
	if lockoutEnd.Valid {
		t := lockoutEnd.Time
		u.Identity.LockoutEnd = &t
	}
	return u, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
