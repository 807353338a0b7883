package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bordamax/tienda-api/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	user := &models.UserProfile{ID: "u-1", IsSales: true}

	token, err := IssueToken("secret", user, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.True(t, claims.IsSales)
	assert.False(t, claims.IsAdmin)
	assert.True(t, claims.IsStaff())
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := IssueToken("secret", &models.UserProfile{ID: "u-1"}, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	token, err := IssueToken("secret", &models.UserProfile{ID: "u-1"}, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2!")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "hunter2!"))
	assert.False(t, CheckPassword(hash, "hunter3!"))
}
