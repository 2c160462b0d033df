package shared

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// AccountLoader loads the account behind a token.
type AccountLoader interface {
	GetAccount(ctx context.Context, id string) (types.Account, error)
}

// RequestID tags every request with an id, reusing the caller's when sent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		principal := PrincipalFrom(c)
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("requestId", c.GetString(ContextKeyRequestID)),
			zap.String("clientIp", c.ClientIP()),
		}
		if principal.UserID != "" {
			fields = append(fields, zap.String("userId", principal.UserID))
		}
		if cid := CommunityFrom(c); cid != "" {
			fields = append(fields, zap.String("communityId", cid))
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			utils.Zlog.Error("Request completed", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			utils.Zlog.Warn("Request completed", fields...)
		default:
			utils.Zlog.Info("Request completed", fields...)
		}
	}
}

// CORS answers preflight requests and sets the allow headers for listed
// origins. A "*" entry allows every origin.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAll := false
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowAll || allowed[origin]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Community-ID, X-Request-ID")
			c.Header("Access-Control-Max-Age", "600")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Metrics records request counts and latency by route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Authenticate requires a valid access token and an active account. The
// account is reloaded on every request so suspensions apply at once.
func Authenticate(tokens *TokenManager, accounts AccountLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			utils.RespondError(c, utils.Unauthorized("missing bearer token"))
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(raw), TokenAccess)
		if err != nil {
			utils.RespondError(c, utils.Unauthorized("invalid or expired token"))
			return
		}

		account, err := accounts.GetAccount(c.Request.Context(), claims.Subject)
		if errors.Is(err, queries.ErrNotFound) {
			utils.RespondError(c, utils.Unauthorized("account no longer exists"))
			return
		}
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		switch account.Status {
		case types.AccountActive:
		case types.AccountPending:
			utils.RespondError(c, utils.Forbidden("account pending approval"))
			return
		default:
			utils.RespondError(c, utils.Forbidden("account suspended"))
			return
		}
		if account.Role != types.RoleSuperAdmin {
			if account.CommunityStatus == nil || *account.CommunityStatus != types.CommunityActive {
				utils.RespondError(c, utils.Forbidden("community is inactive"))
				return
			}
		}

		principal := types.Principal{
			UserID: account.ID,
			Email:  account.Email,
			Role:   account.Role,
		}
		if account.CommunityID != nil {
			principal.CommunityID = *account.CommunityID
		}
		if account.SubjectID != nil {
			principal.SubjectID = *account.SubjectID
		}
		c.Set(ContextKeyPrincipal, principal)
		c.Next()
	}
}

// RequireRoles lets the request through only for the listed roles.
func RequireRoles(roles ...types.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := PrincipalFrom(c).Role
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		utils.RespondError(c, utils.Forbidden("insufficient permissions"))
	}
}

// TenantScope fixes the community every query of the request runs against.
// Super admins pick one with the X-Community-ID header.
func TenantScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := PrincipalFrom(c)
		communityID := principal.CommunityID
		if principal.Role == types.RoleSuperAdmin {
			communityID = strings.TrimSpace(c.GetHeader(HeaderCommunityID))
			if communityID == "" {
				utils.RespondError(c, utils.BadRequest("%s header is required", HeaderCommunityID))
				return
			}
		}
		if communityID == "" {
			utils.RespondError(c, utils.Forbidden("account is not attached to a community"))
			return
		}
		c.Set(ContextKeyCommunityID, communityID)
		c.Next()
	}
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*visitor
	rate     rate.Limit
	burst    int
	idle     time.Duration
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*visitor),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		idle:     10 * time.Minute,
	}
}

func (rl *RateLimiter) allow(key string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.limiters[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = v
	}
	v.lastSeen = now
	rl.cleanupLocked(now)
	return v.limiter.AllowN(now, 1)
}

// cleanupLocked drops buckets of clients that have gone quiet.
func (rl *RateLimiter) cleanupLocked(now time.Time) {
	if len(rl.limiters) < 1024 {
		return
	}
	for key, v := range rl.limiters {
		if now.Sub(v.lastSeen) > rl.idle {
			delete(rl.limiters, key)
		}
	}
}

func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP(), time.Now()) {
			utils.Zlog.Warn("Rate limit exceeded",
				zap.String("clientIp", c.ClientIP()),
				zap.String("path", c.Request.URL.Path))
			utils.RespondError(c, utils.TooManyRequests())
			return
		}
		c.Next()
	}
}
