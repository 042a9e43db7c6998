package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

type sessionBody struct {
	User struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

func TestSignup_Login_Protected(t *testing.T) {
	env := newTestEnv(t)
	defer env.Close()

	// signup
	w := env.do("POST", "/api/auth/signup",
		`{"name":"A","email":"a@x.com","password":"p1"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var s sessionBody
	decode(t, w, &s)
	require.Equal(t, "student", s.User.Role)
	require.Equal(t, "a@x.com", s.User.Email)
	require.NotEmpty(t, s.Token)
	require.NotEmpty(t, s.RefreshToken)

	// refresh cookie set
	cookies := w.Result().Cookies()
	var found bool
	for _, ck := range cookies {
		if ck.Name == "refreshToken" {
			found = true
			require.True(t, ck.HttpOnly)
			require.Equal(t, http.SameSiteStrictMode, ck.SameSite)
			require.False(t, ck.Secure) // not production in tests
		}
	}
	require.True(t, found, "refreshToken cookie missing")

	// duplicate email
	w = env.do("POST", "/api/auth/signup",
		`{"name":"A2","email":"a@x.com","password":"p2"}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"message":"Email already exists"}`, w.Body.String())

	// login
	w = env.do("POST", "/api/auth/login", `{"email":"a@x.com","password":"p1"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var l sessionBody
	decode(t, w, &l)
	require.Equal(t, "student", l.User.Role)

	// protected echoes the claims of the presented token
	w = env.do("GET", "/api/auth/protected", "", map[string]string{
		"Authorization": "Bearer " + l.Token,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var echo struct {
		User struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	decode(t, w, &echo)
	require.NotEmpty(t, echo.User.ID)
	require.Equal(t, "student", echo.User.Role)

	// profile hides password and refresh token
	w = env.do("GET", "/api/auth/profile", "", map[string]string{
		"Authorization": "Bearer " + l.Token,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotContains(t, w.Body.String(), "password")
	require.NotContains(t, w.Body.String(), "refresh")
}

func TestLogin_EnumerationResistant(t *testing.T) {
	env := newTestEnv(t)
	defer env.Close()

	_ = env.do("POST", "/api/auth/signup",
		`{"name":"B","email":"b@x.com","password":"right"}`, nil)

	wrongPw := env.do("POST", "/api/auth/login", `{"email":"b@x.com","password":"wrong"}`, nil)
	unknown := env.do("POST", "/api/auth/login", `{"email":"nobody@x.com","password":"wrong"}`, nil)

	require.Equal(t, http.StatusBadRequest, wrongPw.Code)
	require.Equal(t, http.StatusBadRequest, unknown.Code)
	// byte-identical bodies: the response must not reveal which check failed
	require.Equal(t, wrongPw.Body.String(), unknown.Body.String())
}

func TestAuthMiddleware(t *testing.T) {
	env := newTestEnv(t)
	defer env.Close()

	// no header
	w := env.do("GET", "/api/auth/protected", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// not a bearer header
	w = env.do("GET", "/api/auth/protected", "", map[string]string{"Authorization": "Basic abc"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// garbage token
	w = env.do("GET", "/api/auth/protected", "", map[string]string{"Authorization": "Bearer junk"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoute_ForbiddenForStudents(t *testing.T) {
	env := newTestEnv(t)
	defer env.Close()

	_ = env.do("POST", "/api/auth/signup",
		`{"name":"C","email":"c@x.com","password":"p1"}`, nil)
	w := env.do("POST", "/api/auth/login", `{"email":"c@x.com","password":"p1"}`, nil)
	var l sessionBody
	decode(t, w, &l)

	w = env.do("GET", "/api/auth/admin", "", map[string]string{
		"Authorization": "Bearer " + l.Token,
	})
	require.Equal(t, http.StatusForbidden, w.Code)
	require.JSONEq(t, `{"message":"Access denied. Admins only."}`, w.Body.String())
}

func TestRefreshToken_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	defer env.Close()

	_ = env.do("POST", "/api/auth/signup",
		`{"name":"D","email":"d@x.com","password":"p1"}`, nil)

	// missing token
	w := env.do("POST", "/api/auth/refresh-token", `{}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"message":"Refresh token required"}`, w.Body.String())

	// forged token
	w = env.do("POST", "/api/auth/refresh-token", `{"refreshToken":"junk"}`, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// first login
	w = env.do("POST", "/api/auth/login", `{"email":"d@x.com","password":"p1"}`, nil)
	var first sessionBody
	decode(t, w, &first)

	// refresh with the current token yields a fresh access token
	w = env.do("POST", "/api/auth/refresh-token",
		`{"refreshToken":"`+first.RefreshToken+`"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var r struct {
		Token string `json:"token"`
	}
	decode(t, w, &r)
	require.NotEmpty(t, r.Token)

	// the new access token works
	w = env.do("GET", "/api/auth/protected", "", map[string]string{
		"Authorization": "Bearer " + r.Token,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// a second login rotates the stored refresh token; the first session's
	// token stops matching and is rejected
	w = env.do("POST", "/api/auth/login", `{"email":"d@x.com","password":"p1"}`, nil)
	var second sessionBody
	decode(t, w, &second)

	w = env.do("POST", "/api/auth/refresh-token",
		`{"refreshToken":"`+first.RefreshToken+`"}`, nil)
	require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	// the second session's token still refreshes
	w = env.do("POST", "/api/auth/refresh-token",
		`{"refreshToken":"`+second.RefreshToken+`"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestUserCountAndListing(t *testing.T) {
	env := newTestEnv(t)
	defer env.Close()

	_ = env.do("POST", "/api/auth/signup",
		`{"name":"E","email":"e@x.com","password":"p1"}`, nil)
	_ = env.do("POST", "/api/auth/signup",
		`{"name":"F","email":"f@x.com","password":"p1"}`, nil)

	w := env.do("GET", "/api/auth/count", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"totalUsers":2}`, w.Body.String())

	w = env.do("GET", "/api/auth/users", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var users []struct {
		Name               string `json:"name"`
		FormattedCreatedAt string `json:"formattedCreatedAt"`
	}
	decode(t, w, &users)
	require.Len(t, users, 2)
	require.NotEmpty(t, users[0].FormattedCreatedAt)
	require.NotContains(t, w.Body.String(), "password")
}

func TestSignup_Validation(t *testing.T) {
	env := newTestEnv(t)
	defer env.Close()

	w := env.do("POST", "/api/auth/signup", `{"email":"g@x.com"}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do("POST", "/api/auth/signup", `not json`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
