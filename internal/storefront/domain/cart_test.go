package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCart(t *testing.T) {
	c := NewCart([]CartItem{
		{ProductPriceCents: 1999, Quantity: 2},
		{ProductPriceCents: 500, Quantity: 1},
	})
	require.Equal(t, int64(4498), c.TotalCents)
	require.Len(t, c.Items, 2)

	empty := NewCart(nil)
	require.NotNil(t, empty.Items)
	require.Zero(t, empty.TotalCents)
}

func TestUserPublic(t *testing.T) {
	u := User{ID: 1, Username: "alice", PasswordHash: "$argon2id$..."}
	p := u.Public()
	require.Equal(t, int64(1), p.ID)
	require.Equal(t, "alice", p.Username)
}

func TestSessionActionString(t *testing.T) {
	require.Equal(t, "issue", SessionIssue.String())
	require.Equal(t, "challenge", SessionChallenge.String())
	require.Equal(t, "keep", SessionKeep.String())
}
