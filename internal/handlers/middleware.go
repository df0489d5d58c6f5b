package handlers

import (
	"net/http"
	"strings"
	"time"

	"lab_dashboard/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	sessionKey = "session"

	// limiterIdleTTL is how long a client's bucket is kept after its last
	// request. An idle bucket has refilled long before this.
	limiterIdleTTL = 10 * time.Minute
)

// sessionMiddleware resolves the Authorization bearer token into a
// models.Session and puts it on the gin context.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	h.authenticate(c, false)
}

// wsSessionMiddleware is sessionMiddleware for the WebSocket handshake.
// Browsers cannot set headers there, so ?token= is accepted when the header
// is absent.
func (h *Handler) wsSessionMiddleware(c *gin.Context) {
	h.authenticate(c, true)
}

func (h *Handler) authenticate(c *gin.Context, allowQuery bool) {
	token, msg := bearerToken(c, allowQuery)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": msg,
		})
		return
	}

	sess, err := h.services.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(sessionKey, sess)
	c.Next()
}

func bearerToken(c *gin.Context, allowQuery bool) (string, string) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if allowQuery {
			if t := c.Query("token"); t != "" {
				return t, ""
			}
		}
		return "", "missing Authorization header"
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", "invalid Authorization header format"
	}
	return parts[1], ""
}

// sessionFrom returns the session injected by sessionMiddleware.
func sessionFrom(c *gin.Context) (models.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return models.Session{}, false
	}
	sess, ok := v.(models.Session)
	return sess, ok
}

// ipRateLimiter keeps one token bucket per client IP. Buckets unused for
// idle are evicted.
type ipRateLimiter struct {
	ips *cache.Cache
	r   rate.Limit
	b   int
}

func newIPRateLimiter(r rate.Limit, b int, idle time.Duration) *ipRateLimiter {
	return &ipRateLimiter{ips: cache.New(idle, idle), r: r, b: b}
}

func (i *ipRateLimiter) limiter(ip string) *rate.Limiter {
	if v, ok := i.ips.Get(ip); ok {
		// touch to push the expiry back
		i.ips.SetDefault(ip, v)
		return v.(*rate.Limiter)
	}

	l := rate.NewLimiter(i.r, i.b)
	if err := i.ips.Add(ip, l, cache.DefaultExpiration); err != nil {
		// another request for ip won the race
		if v, ok := i.ips.Get(ip); ok {
			return v.(*rate.Limiter)
		}
	}
	return l
}

func rateLimiter(r rate.Limit, b int) gin.HandlerFunc {
	limiter := newIPRateLimiter(r, b, limiterIdleTTL)
	return func(c *gin.Context) {
		if !limiter.limiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
