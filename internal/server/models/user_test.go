package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestUser_FullName(t *testing.T) {
	tests := []struct {
		name  string
		first *string
		last  *string
		want  string
	}{
		{name: "both", first: ptr("Ada"), last: ptr("Lovelace"), want: "Ada Lovelace"},
		{name: "first only", first: ptr("Ada"), want: "Ada"},
		{name: "last only", last: ptr("Lovelace"), want: "Lovelace"},
		{name: "neither", want: ""},
		{name: "empty strings", first: ptr(""), last: ptr(""), want: ""},
		{name: "padded", first: ptr("  Grace "), last: ptr(" Hopper"), want: "Grace Hopper"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{FirstName: tt.first, LastName: tt.last}
			assert.Equal(t, tt.want, u.FullName())
		})
	}
}

func TestUser_FullNameFollowsEachRecord(t *testing.T) {
	ada := &User{FirstName: ptr("Ada"), LastName: ptr("Lovelace")}
	grace := &User{FirstName: ptr("Grace"), LastName: ptr("Hopper")}

	assert.NotEqual(t, ada.FullName(), grace.FullName())

	ada.LastName = ptr("King")
	assert.Equal(t, "Ada King", ada.FullName())
}
