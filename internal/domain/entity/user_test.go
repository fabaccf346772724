package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_IdentityDropsPasswordHash(t *testing.T) {
	user := &User{
		ID:           uuid.New(),
		Email:        "a@x.com",
		PasswordHash: "$2a$10$secret",
		CreatedAt:    time.Now(),
	}

	identity := user.Identity()
	require.NotNil(t, identity)
	assert.Equal(t, user.ID, identity.ID)
	assert.Equal(t, user.Email, identity.Email)

	raw, err := json.Marshal(identity)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), user.PasswordHash)
	assert.NotContains(t, string(raw), "password")
}

func TestUser_IdentityOfNil(t *testing.T) {
	var user *User
	assert.Nil(t, user.Identity())
}

func TestNewPrincipal(t *testing.T) {
	id := uuid.New()
	principal := NewPrincipal(&TokenClaims{Subject: id, Email: "a@x.com"})

	assert.Equal(t, id.String(), principal.UserID)

	raw, err := json.Marshal(principal)
	require.NoError(t, err)
	assert.JSONEq(t, `{"userId":"`+id.String()+`"}`, string(raw))
}
