package models

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/userstore/internal/server/identity"
)

// User is the application's user record: the provider identity plus the
// profile fields owned by the application.
//
// NumericID is assigned by the database on insert and never rewritten. It
// coexists with Identity.ID, the provider key.
type User struct {
	Identity  identity.Identity
	NumericID int64
	FirstName *string
	LastName  *string
	CreatedAt time.Time
}

// FullName joins the non-empty first and last names with a single space.
// It is computed on every call; the stored full_name column only mirrors it.
func (u *User) FullName() string {
	parts := make([]string, 0, 2)
	for _, p := range []*string{u.FirstName, u.LastName} {
		if p == nil {
			continue
		}
		if v := strings.TrimSpace(*p); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// ID returns the provider key of the user.
func (u *User) ID() string {
	return u.Identity.ID
}
