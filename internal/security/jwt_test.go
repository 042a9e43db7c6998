package security_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/siitecch/learn-api/internal/security"
)

func TestAccessRoundTrip(t *testing.T) {
	tok, err := security.MakeAccess("secret-a", "u1", "admin")
	require.NoError(t, err)

	c, err := security.Parse("secret-a", tok)
	require.NoError(t, err)
	require.Equal(t, "u1", c.UID)
	require.Equal(t, "admin", c.Role)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := security.MakeAccess("secret-a", "u1", "student")
	require.NoError(t, err)

	_, err = security.Parse("secret-b", tok)
	require.ErrorIs(t, err, security.ErrTokenInvalid)
}

func TestRefreshSecretIsolation(t *testing.T) {
	// a refresh token must not verify under the access secret
	tok, err := security.MakeRefresh("secret-b", "u1")
	require.NoError(t, err)

	_, err = security.Parse("secret-a", tok)
	require.ErrorIs(t, err, security.ErrTokenInvalid)

	c, err := security.Parse("secret-b", tok)
	require.NoError(t, err)
	require.Equal(t, "u1", c.UID)
}

func TestParse_Expired(t *testing.T) {
	c := security.Claims{
		UID: "u1", Role: "student",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			Subject:   "u1",
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("secret-a"))
	require.NoError(t, err)

	_, err = security.Parse("secret-a", tok)
	require.ErrorIs(t, err, security.ErrTokenExpired)
}

func TestParse_Malformed(t *testing.T) {
	_, err := security.Parse("secret-a", "not.a.jwt")
	require.ErrorIs(t, err, security.ErrTokenInvalid)
}

func TestParse_DefaultsMissingRole(t *testing.T) {
	// early signup tokens carried only the user id
	c := security.Claims{
		UID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			Subject:   "u1",
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("secret-a"))
	require.NoError(t, err)

	parsed, err := security.Parse("secret-a", tok)
	require.NoError(t, err)
	require.Equal(t, "student", parsed.Role)
}
