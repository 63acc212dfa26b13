package tokenutil

import (
	"testing"

	"github.com/nsvip/anidex-backend/domain/domain_auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	user := &domain_auth.User{ID: primitive.NewObjectID(), Name: "admin"}

	token, err := CreateAccessToken(user, "secret", 2)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	authorized, err := IsAuthorized(token, "secret")
	require.NoError(t, err)
	assert.True(t, authorized)

	id, err := ExtractIDFromToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), id)
}

func TestWrongSecretRejected(t *testing.T) {
	user := &domain_auth.User{ID: primitive.NewObjectID(), Name: "admin"}

	token, err := CreateAccessToken(user, "secret", 2)
	require.NoError(t, err)

	authorized, err := IsAuthorized(token, "other-secret")
	assert.Error(t, err)
	assert.False(t, authorized)

	_, err = ExtractIDFromToken(token, "other-secret")
	assert.Error(t, err)
}

func TestRefreshTokenCarriesID(t *testing.T) {
	user := &domain_auth.User{ID: primitive.NewObjectID()}

	token, err := CreateRefreshToken(user, "secret", 168)
	require.NoError(t, err)

	id, err := ExtractIDFromToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), id)
}
