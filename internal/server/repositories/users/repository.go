// Package users is the persistence layer of the user collection. It exposes
// the users table as a Repository with a PostgreSQL and a SQLite
// implementation, both bound to a dbx.DBTX.
//
// Driver errors are returned unchanged so callers can classify them (see
// dbx.IsUniqueViolation); only a missing row is translated to
// common.ErrorNotFound.
package users

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/userstore/internal/server/identity"
	"github.com/dmitrijs2005/userstore/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByNumericID(ctx context.Context, numericID int64) (*models.User, error)
	GetByNormalizedUserName(ctx context.Context, normalizedUserName string) (*models.User, error)
	GetByNormalizedEmail(ctx context.Context, normalizedEmail string) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
	// Update rewrites a user whose stored concurrency stamp equals
	// expectedStamp. numeric_id and created_at are never touched.
	Update(ctx context.Context, user *models.User, expectedStamp string) error
	Delete(ctx context.Context, id string) error
}

// selectColumns is the column order scanned by both implementations.
// full_name is write-only: it mirrors models.User.FullName.
var selectColumns = strings.Join([]string{
	"id", "numeric_id", "user_name", "normalized_user_name", "email", "normalized_email",
	"email_confirmed", "password_hash", "security_stamp", "concurrency_stamp",
	"phone_number", "phone_number_confirmed", "two_factor_enabled", "lockout_end",
	"lockout_enabled", "access_failed_count", "first_name", "last_name", "created_at",
}, ", ")

type rowScanner interface {
	Scan(dest ...any) error
}

// userRow holds the dialect-independent part of a scanned user.
type userRow struct {
	user          models.User
	email         sql.NullString
	normEmail     sql.NullString
	passwordHash  sql.NullString
	securityStamp sql.NullString
	phoneNumber   sql.NullString
	firstName     sql.NullString
	lastName      sql.NullString
}

// dest returns scan targets in selectColumns order; lockoutEnd and
// createdAt are supplied by the dialect.
func (r *userRow) dest(lockoutEnd, createdAt any) []any {
	id := &r.user.Identity
	return []any{
		&id.ID, &r.user.NumericID, &id.UserName, &id.NormalizedUserName, &r.email, &r.normEmail,
		&id.EmailConfirmed, &r.passwordHash, &r.securityStamp, &id.ConcurrencyStamp,
		&r.phoneNumber, &id.PhoneNumberConfirmed, &id.TwoFactorEnabled, lockoutEnd,
		&id.LockoutEnabled, &id.AccessFailedCount, &r.firstName, &r.lastName, createdAt,
	}
}

func (r *userRow) model() *models.User {
	u := r.user
	u.Identity.Email = r.email.String
	u.Identity.NormalizedEmail = r.normEmail.String
	u.Identity.PasswordHash = r.passwordHash.String
	u.Identity.SecurityStamp = r.securityStamp.String
	u.Identity.PhoneNumber = r.phoneNumber.String
	u.FirstName = stringPtr(r.firstName)
	u.LastName = stringPtr(r.lastName)
	return &u
}

// identityArgs lists the writable identity columns from user_name through
// access_failed_count, with lockout_end encoded by the dialect.
func identityArgs(id *identity.Identity, lockoutEnd any) []any {
	return []any{
		id.UserName, id.NormalizedUserName, nullString(id.Email), nullString(id.NormalizedEmail),
		id.EmailConfirmed, nullString(id.PasswordHash), nullString(id.SecurityStamp), id.ConcurrencyStamp,
		nullString(id.PhoneNumber), id.PhoneNumberConfirmed, id.TwoFactorEnabled, lockoutEnd,
		id.LockoutEnabled, id.AccessFailedCount,
	}
}

// profileArgs lists first_name, last_name and the derived full_name.
func profileArgs(u *models.User) []any {
	return []any{nullablePtr(u.FirstName), nullablePtr(u.LastName), u.FullName()}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullablePtr(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
