package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/identity"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/auth"
	"github.com/erp/backoffice/internal/infrastructure/i18n"
	"github.com/erp/backoffice/internal/infrastructure/logger"
	"github.com/erp/backoffice/internal/infrastructure/xts"
)

// Session context keys
const (
	SessionKey    = "session"
	SessionIDKey  = "session_id"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// TokenValidator validates access tokens.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// SessionLoader opens the session named by a token.
type SessionLoader interface {
	Load(ctx context.Context, id string) (*identity.Session, error)
}

// SessionAuthConfig holds configuration for the session middleware
type SessionAuthConfig struct {
	Tokens   TokenValidator
	Sessions SessionLoader
	Logger   *zap.Logger
}

// SessionAuth authenticates the bearer token, opens its session and puts the
// session, the upstream credentials and the user's language on the request
// context.
func SessionAuth(cfg SessionAuthConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			abortWithError(c, shared.CodeUnauthorized, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(header, BearerPrefix) {
			abortWithError(c, shared.CodeUnauthorized, "Invalid authorization header format")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
		if token == "" {
			abortWithError(c, shared.CodeUnauthorized, "Missing token")
			return
		}

		claims, err := cfg.Tokens.Validate(token)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortWithError(c, shared.CodeSessionExpired, "Token has expired")
				return
			}
			abortWithError(c, shared.CodeUnauthorized, "Token validation failed")
			return
		}

		ctx := c.Request.Context()
		sess, err := cfg.Sessions.Load(ctx, claims.SessionID)
		if err != nil {
			var de *shared.DomainError
			if errors.As(err, &de) {
				abortWithError(c, de.Code, de.Message)
				return
			}
			log.Error("Failed to load session", zap.String("session_id", claims.SessionID), zap.Error(err))
			abortWithError(c, shared.CodeInternal, "Failed to load session")
			return
		}

		ctx = identity.WithSession(ctx, sess)
		ctx = xts.WithCredentials(ctx, sess.Credentials.UserName, sess.Credentials.Password)
		ctx = logger.WithUser(ctx, sess.Credentials.UserName, sess.ID)
		if c.GetHeader("Accept-Language") == "" && sess.Language != "" {
			ctx = i18n.WithLanguage(ctx, i18n.Parse(sess.Language))
		}
		c.Request = c.Request.WithContext(ctx)
		c.Set(SessionKey, sess)
		c.Set(SessionIDKey, sess.ID)
		c.Next()
	}
}

// GetSession returns the session set by SessionAuth.
func GetSession(c *gin.Context) (*identity.Session, bool) {
	if v, ok := c.Get(SessionKey); ok {
		s, ok := v.(*identity.Session)
		return s, ok && s != nil
	}
	return nil, false
}

// SessionKeyFunc keys rate limits by session, falling back to the client IP.
func SessionKeyFunc(c *gin.Context) string {
	if sess, ok := GetSession(c); ok {
		return "session:" + sess.ID
	}
	return "ip:" + c.ClientIP()
}
