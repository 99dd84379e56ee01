package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/homeservices/site/internal/models"
	"github.com/homeservices/site/internal/session"
	"github.com/homeservices/site/pkg/jwt"
	"github.com/homeservices/site/pkg/logger"
	"go.uber.org/zap"
)

const (
	// SessionCookieName is the name of the visitor session cookie
	SessionCookieName = "hs_session"

	// SessionContextKey is the key used to store the session id in context
	SessionContextKey = "session_id"
)

var (
	ErrSessionNotFound = errors.New("session not found in context")
	ErrInvalidSession  = errors.New("invalid session type")
)

// SessionStarter creates and refreshes visitor sessions
type SessionStarter interface {
	Start() (string, *models.ViewState)
	Touch(id string) bool
}

// CookieOptions controls the session cookie attributes
type CookieOptions struct {
	Domain string
	Secure bool
}

// SessionMiddleware resolves the visitor session from the signed cookie.
// A missing, invalid or expired cookie silently starts a fresh session.
func SessionMiddleware(store SessionStarter, tokenManager *jwt.TokenManager, opts CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, refresh := resumeSession(c, store, tokenManager)

		if id == "" {
			id, _ = store.Start()
			refresh = true
		}

		if refresh {
			token, err := tokenManager.GenerateToken(id)
			if err != nil {
				logger.Error("Failed to sign session token", zap.Error(err))
				_ = c.Error(fmt.Errorf("sign session token: %w", err)) //nolint:errcheck
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}
			SetSessionCookie(c, token, int(tokenManager.TTL().Seconds()), opts)
		}

		c.Set(SessionContextKey, id)
		c.Next()
	}
}

// resumeSession returns the id from a valid cookie whose session is still
// held, and whether its cookie should be reissued.
func resumeSession(c *gin.Context, store SessionStarter, tokenManager *jwt.TokenManager) (string, bool) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie == "" {
		return "", false
	}

	claims, err := tokenManager.ValidateToken(cookie)
	if err != nil {
		logger.Debug("Discarding session cookie", zap.Error(err))
		return "", false
	}

	if !session.IsValidID(claims.SessionID) || !store.Touch(claims.SessionID) {
		return "", false
	}

	// sliding expiry: reissue once half the lifetime has passed
	remaining := time.Until(claims.ExpiresAt.Time)
	return claims.SessionID, remaining < tokenManager.TTL()/2
}

// GetSessionID extracts the session id from context
func GetSessionID(c *gin.Context) (string, error) {
	val, exists := c.Get(SessionContextKey)
	if !exists {
		return "", ErrSessionNotFound
	}

	id, ok := val.(string)
	if !ok || id == "" {
		return "", ErrInvalidSession
	}

	return id, nil
}

// SetSessionCookie sets the visitor session cookie
func SetSessionCookie(c *gin.Context, token string, ttlSeconds int, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		token,
		ttlSeconds,
		"/",
		opts.Domain,
		opts.Secure,
		true, // HttpOnly
	)
}
