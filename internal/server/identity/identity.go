// Package identity holds the identity provider's part of a user record. The
// store persists these fields but does not interpret them: credential hashing,
// stamps and lockout bookkeeping belong to the provider.
package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Identity is the provider-owned identity of a user.
type Identity struct {
	ID                   string
	UserName             string
	NormalizedUserName   string
	Email                string
	NormalizedEmail      string
	EmailConfirmed       bool
	PasswordHash         string
	SecurityStamp        string
	ConcurrencyStamp     string
	PhoneNumber          string
	PhoneNumberConfirmed bool
	TwoFactorEnabled     bool
	LockoutEnd           *time.Time
	LockoutEnabled       bool
	AccessFailedCount    int
}

// New returns an identity with a fresh key and stamps for the given login.
func New(userName, email string) Identity {
	id := Identity{UserName: userName, Email: email}
	id.EnsureKeys()
	id.Normalize()
	return id
}

// EnsureKeys assigns a key, security stamp and concurrency stamp where
// they are missing.
func (i *Identity) EnsureKeys() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.SecurityStamp == "" {
		i.SecurityStamp = NewStamp()
	}
	if i.ConcurrencyStamp == "" {
		i.ConcurrencyStamp = NewStamp()
	}
}

// Normalize refreshes the lookup keys from UserName and Email.
func (i *Identity) Normalize() {
	i.NormalizedUserName = Normalize(i.UserName)
	i.NormalizedEmail = Normalize(i.Email)
}

// NewStamp returns a random stamp value.
func NewStamp() string {
	return uuid.NewString()
}

// Normalize is the lookup normaliser for user names, emails and role names.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return cases.Upper(language.Und).String(s)
}
