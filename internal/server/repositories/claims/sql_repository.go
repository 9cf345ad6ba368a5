package claims

import (
	"context"

	"github.com/dmitrijs2005/userstore/internal/common"
	"github.com/dmitrijs2005/userstore/internal/dbx"
	"github.com/dmitrijs2005/userstore/internal/server/models"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

// Add inserts the claim and sets its generated ID.
func (r *SQLRepository) Add(ctx context.Context, claim *models.UserClaim) error {
	query := r.dialect.Rebind(
		`INSERT INTO user_claims (user_id, claim_type, claim_value)
		 VALUES (?, ?, ?)
		 RETURNING id`)

	return r.db.QueryRowContext(ctx, query, claim.UserID, claim.ClaimType, claim.ClaimValue).Scan(&claim.ID)
}

func (r *SQLRepository) ListForUser(ctx context.Context, userID string) ([]*models.UserClaim, error) {
	query := r.dialect.Rebind(
		`SELECT id, user_id, claim_type, claim_value FROM user_claims
		 WHERE user_id = ?
		 ORDER BY id`)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*models.UserClaim, 0)
	for rows.Next() {
		var c models.UserClaim
		if err := rows.Scan(&c.ID, &c.UserID, &c.ClaimType, &c.ClaimValue); err != nil {
			return nil, err
		}
		result = append(result, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *SQLRepository) Remove(ctx context.Context, userID, claimType, claimValue string) error {
	query := r.dialect.Rebind(`DELETE FROM user_claims WHERE user_id = ? AND claim_type = ? AND claim_value = ?`)

	res, err := r.db.ExecContext(ctx, query, userID, claimType, claimValue)
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

func (r *SQLRepository) DeleteForUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM user_claims WHERE user_id = ?`), userID)
	return err
}
