package models

// Role is a named group a user can belong to.
type Role struct {
	ID               string
	Name             string
	NormalizedName   string
	ConcurrencyStamp string
}
