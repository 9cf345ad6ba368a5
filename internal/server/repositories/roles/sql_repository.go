package roles

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/userstore/internal/common"
	"github.com/dmitrijs2005/userstore/internal/dbx"
	"github.com/dmitrijs2005/userstore/internal/server/models"
)

// SQLRepository is shared by PostgreSQL and SQLite; queries are written
// with '?' and rebound for the dialect.
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Create(ctx context.Context, role *models.Role) error {
	query := r.dialect.Rebind(
		`INSERT INTO roles (id, name, normalized_name, concurrency_stamp)
		 VALUES (?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query, role.ID, role.Name, role.NormalizedName, role.ConcurrencyStamp)
	return err
}

func (r *SQLRepository) GetByID(ctx context.Context, id string) (*models.Role, error) {
	return r.getOne(ctx, `SELECT id, name, normalized_name, concurrency_stamp FROM roles WHERE id = ?`, id)
}

func (r *SQLRepository) GetByNormalizedName(ctx context.Context, normalizedName string) (*models.Role, error) {
	return r.getOne(ctx, `SELECT id, name, normalized_name, concurrency_stamp FROM roles WHERE normalized_name = ?`, normalizedName)
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM user_roles WHERE role_id = ?`), id); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM roles WHERE id = ?`), id)
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

func (r *SQLRepository) AddUser(ctx context.Context, userID, roleID string) error {
	query := r.dialect.Rebind(
		`INSERT INTO user_roles (user_id, role_id) VALUES (?, ?)
		 ON CONFLICT (user_id, role_id) DO NOTHING`)

	_, err := r.db.ExecContext(ctx, query, userID, roleID)
	return err
}

func (r *SQLRepository) RemoveUser(ctx context.Context, userID, roleID string) error {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM user_roles WHERE user_id = ? AND role_id = ?`), userID, roleID)
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

func (r *SQLRepository) ListForUser(ctx context.Context, userID string) ([]*models.Role, error) {
	query := r.dialect.Rebind(
		`SELECT r.id, r.name, r.normalized_name, r.concurrency_stamp
		 FROM roles r JOIN user_roles ur ON ur.role_id = r.id
		 WHERE ur.user_id = ?
		 ORDER BY r.normalized_name`)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*models.Role, 0)
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.NormalizedName, &role.ConcurrencyStamp); err != nil {
			return nil, err
		}
		result = append(result, &role)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *SQLRepository) ListUserIDs(ctx context.Context, roleID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(`SELECT user_id FROM user_roles WHERE role_id = ? ORDER BY user_id`), roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result = append(result, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *SQLRepository) DeleteForUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM user_roles WHERE user_id = ?`), userID)
	return err
}

func (r *SQLRepository) getOne(ctx context.Context, query string, arg any) (*models.Role, error) {
	var role models.Role

	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query), arg).
		Scan(&role.ID, &role.Name, &role.NormalizedName, &role.ConcurrencyStamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}

	return &role, nil
}
