// Package roles persists roles and the user_roles membership table.
package roles

import (
	"context"

	"github.com/dmitrijs2005/userstore/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, role *models.Role) error
	GetByID(ctx context.Context, id string) (*models.Role, error)
	GetByNormalizedName(ctx context.Context, normalizedName string) (*models.Role, error)
	// Delete removes the role together with its memberships.
	Delete(ctx context.Context, id string) error

	// AddUser is idempotent: adding an existing membership is not an error.
	AddUser(ctx context.Context, userID, roleID string) error
	RemoveUser(ctx context.Context, userID, roleID string) error
	ListForUser(ctx context.Context, userID string) ([]*models.Role, error)
	ListUserIDs(ctx context.Context, roleID string) ([]string, error)
	DeleteForUser(ctx context.Context, userID string) error
}
