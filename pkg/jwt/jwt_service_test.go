package jwt

import (
	"testing"
	"time"

	"Aahar-Backend/domain"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndReadToken(t *testing.T) {
	service := NewJWTService("secret")

	token, err := service.GenerateTokenUser("user-1", domain.RoleVolunteer)
	require.NoError(t, err)

	id, role, err := service.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
	assert.Equal(t, domain.RoleVolunteer, role)
}

func TestExpiredToken(t *testing.T) {
	service := &jwtService{
		secretKey: "secret",
		issuer:    "AAHAR",
		now:       func() time.Time { return time.Now().Add(-3 * time.Hour) },
	}

	token, err := service.GenerateTokenUser("user-1", domain.RoleDonor)
	require.NoError(t, err)

	_, _, err = service.GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestTokenSignedWithOtherKey(t *testing.T) {
	token, err := NewJWTService("other").GenerateTokenUser("user-1", domain.RoleDonor)
	require.NoError(t, err)

	_, _, err = NewJWTService("secret").GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenWithForeignIssuer(t *testing.T) {
	claims := jwtUserClaim{
		UserID: "user-1",
		Role:   domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    "SOMEONE-ELSE",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, _, err = NewJWTService("secret").GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
