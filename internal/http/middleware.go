package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/siitecch/learn-api/internal/metrics"
	"github.com/siitecch/learn-api/internal/security"
)

const (
	requestIDKey = "X-Request-ID"
	claimsKey    = "auth_claims"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDKey)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDKey, id)
		c.Next()
	}
}

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.InFlight.Inc()
		start := time.Now()
		c.Next()
		metrics.InFlight.Dec()
		metrics.ReqDuration.WithLabelValues(route, c.Request.Method).
			Observe(time.Since(start).Seconds())
		metrics.RequestsTotal.WithLabelValues(route, c.Request.Method,
			strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// AuthJWT gates a route on a valid access token. It trusts the signature and
// never hits the store, so claims can be stale relative to the user record
// until the token expires — accepted tradeoff.
func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"message": "No token provided. Authorization denied."})
			return
		}
		tok := strings.TrimSpace(h[len("Bearer "):])
		claims, err := security.Parse(secret, tok)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"message": "Invalid token. Authorization denied."})
			return
		}
		c.Set(claimsKey, claims)
		c.Set("uid", claims.UID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden,
				gin.H{"message": "Access denied. Admins only."})
			return
		}
		c.Next()
	}
}

// RateLimit caps hits per client IP per minute on the auth endpoints. With no
// Redis or a zero limit it is a pass-through.
func (h *Handler) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.Redis == nil || h.RateLimitPerMin <= 0 {
			c.Next()
			return
		}
		key := "rl:" + c.FullPath() + ":" + c.ClientIP()
		if !h.Redis.Allow(c.Request.Context(), key, h.RateLimitPerMin, time.Minute) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				gin.H{"message": "Too many requests"})
			return
		}
		c.Next()
	}
}
