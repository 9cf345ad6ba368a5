package models

// UserClaim is a type/value statement attached to a user.
type UserClaim struct {
	ID         int64
	UserID     string
	ClaimType  string
	ClaimValue string
}
