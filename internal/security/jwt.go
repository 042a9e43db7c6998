package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTTL  = time.Hour
	RefreshTTL = 7 * 24 * time.Hour
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims is the payload of both token kinds. Refresh tokens carry only the
// user id; access tokens carry id and role. Older access tokens minted on
// signup had no role claim, so parsers default an empty role to "student".
type Claims struct {
	UID  string `json:"id"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// MakeAccess mints a short-lived access token signed with the access secret.
func MakeAccess(secret, uid, role string) (string, error) {
	return sign(secret, Claims{
		UID: uid, Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(AccessTTL)),
			Subject:   uid,
		},
	})
}

// MakeRefresh mints a long-lived refresh token. It must be signed with a
// secret distinct from the access secret: leaking the access secret must not
// allow forging refresh tokens.
func MakeRefresh(secret, uid string) (string, error) {
	return sign(secret, Claims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(RefreshTTL)),
			Subject:   uid,
		},
	})
}

func sign(secret string, c Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString([]byte(secret))
}

// Parse verifies signature and expiry and returns the decoded claims.
// Returns ErrTokenExpired past expiry, ErrTokenInvalid for anything else.
func Parse(secret, token string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, ErrTokenInvalid
	}
	if c.UID == "" && c.Subject != "" {
		c.UID = c.Subject
	}
	if c.Role == "" {
		c.Role = "student"
	}
	return c, nil
}
