package auth

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
)

// RequireUser validates Firebase ID tokens on every request. Requests with a
// missing or unverifiable token are rejected with 401; the client decides
// whether that means a redirect to login.
func RequireUser(authClient *auth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
			c.Abort()
			return
		}

		decodedToken, err := authClient.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			// A failed check is treated the same as no session at all.
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(CtxFirebaseUID, decodedToken.UID)
		if email, ok := decodedToken.Claims["email"].(string); ok {
			c.Set(CtxUserEmail, email)
		}

		c.Next()
	}
}

// ProfileEnsurer upserts the profile row for an authenticated user and
// returns its internal id. Implemented by profiles.Repo.
type ProfileEnsurer interface {
	Ensure(ctx context.Context, firebaseUID, email string) (string, error)
}

// WithProfile maps the Firebase UID onto a profile row, creating one on
// first sight, and stores the internal id for downstream handlers. Must run
// after RequireUser.
func WithProfile(profiles ProfileEnsurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := UserFirebaseUID(c)
		if uid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
			c.Abort()
			return
		}

		id, err := profiles.Ensure(c.Request.Context(), uid, UserEmail(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "ensure profile: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(CtxUserDBID, id)
		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header.
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
