package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/userstore/internal/common"
	"github.com/dmitrijs2005/userstore/internal/dbx"
	"github.com/dmitrijs2005/userstore/internal/logging"
	"github.com/dmitrijs2005/userstore/internal/server/identity"
	"github.com/dmitrijs2005/userstore/internal/server/models"
	"github.com/dmitrijs2005/userstore/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

var _ identity.RoleStore[models.Role] = (*RoleService)(nil)

type RoleService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	observer    Observer
}

func NewRoleService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger, observer Observer) *RoleService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &RoleService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "roles"),
		observer:    observerOrNop(observer),
	}
}

func (s *RoleService) observe(op string, start time.Time, err *error) {
	s.observer.Observe(op, *err, start)
}

func (s *RoleService) Create(ctx context.Context, role *models.Role) (_ *models.Role, err error) {
	defer s.observe("role_create", time.Now(), &err)

	if role == nil || identity.Normalize(role.Name) == "" {
		return nil, common.ErrorIncorrectInput
	}

	if role.ID == "" {
		role.ID = uuid.NewString()
	}
	if role.ConcurrencyStamp == "" {
		role.ConcurrencyStamp = identity.NewStamp()
	}
	role.NormalizedName = identity.Normalize(role.Name)

	if err := s.repomanager.Roles(s.db).Create(ctx, role); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "role created", "role_id", role.ID, "name", role.Name)
	return role, nil
}

func (s *RoleService) FindByID(ctx context.Context, id string) (_ *models.Role, err error) {
	defer s.observe("role_find_by_id", time.Now(), &err)
	return s.repomanager.Roles(s.db).GetByID(ctx, id)
}

func (s *RoleService) FindByName(ctx context.Context, name string) (_ *models.Role, err error) {
	defer s.observe("role_find_by_name", time.Now(), &err)
	return s.repomanager.Roles(s.db).GetByNormalizedName(ctx, identity.Normalize(name))
}

// Delete removes the role and every membership in it.
func (s *RoleService) Delete(ctx context.Context, id string) (err error) {
	defer s.observe("role_delete", time.Now(), &err)

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Roles(tx).Delete(ctx, id)
	})
}

// UsersInRole loads the members of the named role. Memberships whose user
// row is gone are skipped.
func (s *RoleService) UsersInRole(ctx context.Context, roleName string) (_ []*models.User, err error) {
	defer s.observe("role_list_users", time.Now(), &err)

	role, err := s.repomanager.Roles(s.db).GetByNormalizedName(ctx, identity.Normalize(roleName))
	if err != nil {
		return nil, err
	}

	ids, err := s.repomanager.Roles(s.db).ListUserIDs(ctx, role.ID)
	if err != nil {
		return nil, err
	}

	usersRepo := s.repomanager.Users(s.db)
	result := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		u, err := usersRepo.GetByID(ctx, id)
		if errors.Is(err, common.ErrorNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		result = append(result, u)
	}

	return result, nil
}
