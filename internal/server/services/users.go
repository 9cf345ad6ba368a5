// Package services implements the user and role stores on top of the
// repositories. Errors coming from the persistence layer are returned to
// the caller unchanged.
package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/userstore/internal/common"
	"github.com/dmitrijs2005/userstore/internal/dbx"
	"github.com/dmitrijs2005/userstore/internal/logging"
	"github.com/dmitrijs2005/userstore/internal/server/identity"
	"github.com/dmitrijs2005/userstore/internal/server/models"
	"github.com/dmitrijs2005/userstore/internal/server/repositories/repomanager"
)

var _ identity.UserStore[models.User] = (*UserService)(nil)

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	observer    Observer
	now         func() time.Time
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger, observer Observer) *UserService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &UserService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "users"),
		observer:    observerOrNop(observer),
		now:         time.Now,
	}
}

func (s *UserService) observe(op string, start time.Time, err *error) {
	s.observer.Observe(op, *err, start)
}

// Create fills in missing identity keys, normalises the lookup fields and
// inserts the record. NumericID is set from the database.
func (s *UserService) Create(ctx context.Context, user *models.User) (_ *models.User, err error) {
	defer s.observe("user_create", time.Now(), &err)

	if user == nil || user.Identity.UserName == "" {
		return nil, common.ErrorIncorrectInput
	}

	user.Identity.EnsureKeys()
	user.Identity.Normalize()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now().UTC()
	}

	created, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		s.logger.Warn(ctx, "create user failed", "user_name", user.Identity.UserName, "error", err)
		return nil, err
	}

	s.logger.Info(ctx, "user created", "user_id", created.Identity.ID, "numeric_id", created.NumericID)
	return created, nil
}

func (s *UserService) FindByID(ctx context.Context, id string) (_ *models.User, err error) {
	defer s.observe("user_find_by_id", time.Now(), &err)
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

func (s *UserService) FindByNumericID(ctx context.Context, numericID int64) (_ *models.User, err error) {
	defer s.observe("user_find_by_numeric_id", time.Now(), &err)
	return s.repomanager.Users(s.db).GetByNumericID(ctx, numericID)
}

func (s *UserService) FindByName(ctx context.Context, userName string) (_ *models.User, err error) {
	defer s.observe("user_find_by_name", time.Now(), &err)

	key := identity.Normalize(userName)
	if key == "" {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Users(s.db).GetByNormalizedUserName(ctx, key)
}

// FindByEmail never matches users that have no email.
func (s *UserService) FindByEmail(ctx context.Context, email string) (_ *models.User, err error) {
	defer s.observe("user_find_by_email", time.Now(), &err)

	key := identity.Normalize(email)
	if key == "" {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Users(s.db).GetByNormalizedEmail(ctx, key)
}

// List returns users in numeric id order. A non-positive limit means
// common.DefaultListLimit.
func (s *UserService) List(ctx context.Context, limit, offset int) (_ []*models.User, err error) {
	defer s.observe("user_list", time.Now(), &err)

	if limit <= 0 {
		limit = common.DefaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repomanager.Users(s.db).List(ctx, limit, offset)
}

// Update writes user if its ConcurrencyStamp still matches the stored one
// and rotates the stamp. On a lost race it returns common.ErrVersionConflict
// and leaves user unchanged.
func (s *UserService) Update(ctx context.Context, user *models.User) (_ *models.User, err error) {
	defer s.observe("user_update", time.Now(), &err)

	if user == nil || user.Identity.ID == "" {
		return nil, common.ErrorIncorrectInput
	}

	expected := user.Identity.ConcurrencyStamp
	user.Identity.Normalize()
	user.Identity.ConcurrencyStamp = identity.NewStamp()

	if err := s.repomanager.Users(s.db).Update(ctx, user, expected); err != nil {
		user.Identity.ConcurrencyStamp = expected
		s.logger.Warn(ctx, "update user failed", "user_id", user.Identity.ID, "error", err)
		return nil, err
	}

	return user, nil
}

// SetProfile replaces the application-owned name fields of a user.
func (s *UserService) SetProfile(ctx context.Context, id string, firstName, lastName *string) (*models.User, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.FirstName = firstName
	user.LastName = lastName

	return s.Update(ctx, user)
}

// Delete removes the user with its claims and role memberships in one
// transaction.
func (s *UserService) Delete(ctx context.Context, id string) (err error) {
	defer s.observe("user_delete", time.Now(), &err)

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Claims(tx).DeleteForUser(ctx, id); err != nil {
			return err
		}
		if err := s.repomanager.Roles(tx).DeleteForUser(ctx, id); err != nil {
			return err
		}
		return s.repomanager.Users(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "user deleted", "user_id", id)
	return nil
}

func (s *UserService) AddClaim(ctx context.Context, userID, claimType, claimValue string) (_ *models.UserClaim, err error) {
	defer s.observe("claim_add", time.Now(), &err)

	if claimType == "" {
		return nil, common.ErrorIncorrectInput
	}
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, userID); err != nil {
		return nil, err
	}

	claim := &models.UserClaim{UserID: userID, ClaimType: claimType, ClaimValue: claimValue}
	if err := s.repomanager.Claims(s.db).Add(ctx, claim); err != nil {
		return nil, err
	}
	return claim, nil
}

func (s *UserService) GetClaims(ctx context.Context, userID string) (_ []*models.UserClaim, err error) {
	defer s.observe("claim_list", time.Now(), &err)
	return s.repomanager.Claims(s.db).ListForUser(ctx, userID)
}

func (s *UserService) RemoveClaim(ctx context.Context, userID, claimType, claimValue string) (err error) {
	defer s.observe("claim_remove", time.Now(), &err)
	return s.repomanager.Claims(s.db).Remove(ctx, userID, claimType, claimValue)
}

func (s *UserService) AddToRole(ctx context.Context, userID, roleName string) (err error) {
	defer s.observe("role_add_user", time.Now(), &err)

	role, err := s.repomanager.Roles(s.db).GetByNormalizedName(ctx, identity.Normalize(roleName))
	if err != nil {
		return err
	}
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, userID); err != nil {
		return err
	}
	return s.repomanager.Roles(s.db).AddUser(ctx, userID, role.ID)
}

func (s *UserService) RemoveFromRole(ctx context.Context, userID, roleName string) (err error) {
	defer s.observe("role_remove_user", time.Now(), &err)

	role, err := s.repomanager.Roles(s.db).GetByNormalizedName(ctx, identity.Normalize(roleName))
	if err != nil {
		return err
	}
	return s.repomanager.Roles(s.db).RemoveUser(ctx, userID, role.ID)
}

// GetRoles returns the display names of the user's roles.
func (s *UserService) GetRoles(ctx context.Context, userID string) (_ []string, err error) {
	defer s.observe("role_list_for_user", time.Now(), &err)

	roles, err := s.repomanager.Roles(s.db).ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	return names, nil
}

func (s *UserService) IsInRole(ctx context.Context, userID, roleName string) (bool, error) {
	key := identity.Normalize(roleName)

	roles, err := s.repomanager.Roles(s.db).ListForUser(ctx, userID)
	if err != nil {
		return false, err
	}

	for _, r := range roles {
		if r.NormalizedName == key {
			return true, nil
		}
	}
	return false, nil
}
