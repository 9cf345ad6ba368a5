// Package claims persists the type/value claims attached to users.
package claims

import (
	"context"

	"github.com/dmitrijs2005/userstore/internal/server/models"
)

type Repository interface {
	Add(ctx context.Context, claim *models.UserClaim) error
	ListForUser(ctx context.Context, userID string) ([]*models.UserClaim, error)
	// Remove deletes every claim of the user matching type and value.
	Remove(ctx context.Context, userID, claimType, claimValue string) error
	DeleteForUser(ctx context.Context, userID string) error
}
