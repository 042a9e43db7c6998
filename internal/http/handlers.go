package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/siitecch/learn-api/internal/domain"
	"github.com/siitecch/learn-api/internal/log"
	"github.com/siitecch/learn-api/internal/queue"
	"github.com/siitecch/learn-api/internal/repo"
	"github.com/siitecch/learn-api/internal/security"
)

type Handler struct {
	Store           *repo.Store
	JWTSecret       string
	RefreshSecret   string
	Production      bool
	Redis           *repo.Redis
	RateLimitPerMin int
	Events          queue.Publisher
}

func NewHandler(store *repo.Store, jwtSecret, refreshSecret string, production bool,
	rds *repo.Redis, rlPerMin int, pub queue.Publisher) *Handler {
	return &Handler{
		Store:           store,
		JWTSecret:       jwtSecret,
		RefreshSecret:   refreshSecret,
		Production:      production,
		Redis:           rds,
		RateLimitPerMin: rlPerMin,
		Events:          pub,
	}
}

type signupReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResp struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type sessionResp struct {
	User         userResp `json:"user"`
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
}

// setRefreshCookie stores the refresh token in an HTTP-only cookie; Secure is
// tied to the production flag so local HTTP development still works.
func (h *Handler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("refreshToken", token, int(security.RefreshTTL.Seconds()), "/", "", h.Production, true)
}

// Signup godoc
// @Summary Register a new student account
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body signupReq true "name, email, password"
// @Success 201 {object} sessionResp
// @Failure 400 {object} map[string]string
// @Router /api/auth/signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var in signupReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	in.Name = strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" || email == "" || in.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email, and password are required"})
		return
	}

	if u, _ := h.Store.FindUserByEmail(c.Request.Context(), email); u != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
		return
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		log.L.Error("hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Signup failed"})
		return
	}

	u := &domain.User{Name: in.Name, Email: email, PasswordHash: hash, Role: domain.RoleStudent}
	if err := h.Store.CreateUser(c.Request.Context(), u); err != nil {
		// the unique index is the real duplicate guard; the pre-check above
		// only makes the common case friendlier
		if err == repo.ErrEmailExists {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
			return
		}
		log.L.Error("create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Signup failed"})
		return
	}

	token, refresh, err := h.issueTokens(c, u)
	if err != nil {
		return
	}

	reqID := c.GetString(requestIDKey)
	go h.Events.Publish(c.Request.Context(), "learn.events", "user.registered",
		queue.UserRegistered{UserID: u.ID, Email: u.Email, Name: u.Name}, reqID)

	h.setRefreshCookie(c, refresh)
	c.JSON(http.StatusCreated, sessionResp{
		User:         userResp{Name: u.Name, Email: u.Email, Role: u.Role},
		Token:        token,
		RefreshToken: refresh,
	})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginReq true "email, password"
// @Success 200 {object} sessionResp
// @Failure 400 {object} map[string]string
// @Router /api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var in loginReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	// unknown email and wrong password produce byte-identical responses so
	// the endpoint cannot be used to enumerate accounts
	u, err := h.Store.FindUserByEmail(c.Request.Context(), email)
	if err != nil || u == nil || !security.CheckPassword(u.PasswordHash, in.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}

	token, refresh, err := h.issueTokens(c, u)
	if err != nil {
		return
	}

	h.setRefreshCookie(c, refresh)
	c.JSON(http.StatusOK, sessionResp{
		User:         userResp{Name: u.Name, Email: u.Email, Role: u.Role},
		Token:        token,
		RefreshToken: refresh,
	})
}

// issueTokens mints both tokens and persists the refresh token on the user
// document, displacing any previous session. Writes the error response itself
// and returns a non-nil error to signal the caller to bail.
func (h *Handler) issueTokens(c *gin.Context, u *domain.User) (token, refresh string, err error) {
	token, err = security.MakeAccess(h.JWTSecret, u.ID.Hex(), u.Role)
	if err == nil {
		refresh, err = security.MakeRefresh(h.RefreshSecret, u.ID.Hex())
	}
	if err == nil {
		err = h.Store.SetRefreshToken(c.Request.Context(), u.ID, refresh)
	}
	if err != nil {
		log.L.Error("issue tokens", zap.Error(err), zap.String("uid", u.ID.Hex()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create session"})
	}
	return token, refresh, err
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken exchanges a valid refresh token for a new access token. The
// presented token must match the one stored on the user document exactly —
// a rotated-out token from an older session is rejected.
func (h *Handler) RefreshToken(c *gin.Context) {
	var in refreshReq
	if err := c.ShouldBindJSON(&in); err != nil || in.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Refresh token required"})
		return
	}

	claims, err := security.Parse(h.RefreshSecret, in.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid refresh token"})
		return
	}

	uid, err := primitive.ObjectIDFromHex(claims.UID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid refresh token"})
		return
	}
	u, err := h.Store.FindUserByID(c.Request.Context(), uid)
	if err != nil || u == nil || u.RefreshToken != in.RefreshToken {
		c.JSON(http.StatusForbidden, gin.H{"message": "Invalid refresh token"})
		return
	}

	token, err := security.MakeAccess(h.JWTSecret, u.ID.Hex(), u.Role)
	if err != nil {
		log.L.Error("issue access token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Profile godoc
// @Summary Current user profile
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.User
// @Failure 404 {object} map[string]string
// @Router /api/auth/profile [get]
func (h *Handler) Profile(c *gin.Context) {
	uid, err := primitive.ObjectIDFromHex(c.GetString("uid"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token. Authorization denied."})
		return
	}
	u, err := h.Store.FindUserByID(c.Request.Context(), uid)
	if err != nil || u == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	// password and refresh token never serialize (json:"-")
	c.JSON(http.StatusOK, u)
}

func (h *Handler) Protected(c *gin.Context) {
	claims, _ := c.Get(claimsKey)
	c.JSON(http.StatusOK, gin.H{
		"message": "You have accessed a protected route",
		"user":    claims,
	})
}

func (h *Handler) Admin(c *gin.Context) {
	claims, _ := c.Get(claimsKey)
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome, Admin!",
		"user":    claims,
	})
}

func (h *Handler) CountUsers(c *gin.Context) {
	n, err := h.Store.CountUsers(c.Request.Context())
	if err != nil {
		log.L.Error("count users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch user count"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalUsers": n})
}

type listedUser struct {
	domain.User
	FormattedCreatedAt string `json:"formattedCreatedAt"`
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Store.ListUsers(c.Request.Context())
	if err != nil {
		log.L.Error("list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching users"})
		return
	}
	out := make([]listedUser, 0, len(users))
	for _, u := range users {
		out = append(out, listedUser{User: u, FormattedCreatedAt: u.FormattedCreatedAt()})
	}
	c.JSON(http.StatusOK, out)
}
