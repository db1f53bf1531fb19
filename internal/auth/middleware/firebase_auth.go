package middleware

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/auth"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/logger"
)

// TokenVerifier is satisfied by *firebase auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseAuth validates Firebase ID tokens and puts the caller's identity in context
func FirebaseAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
			return
		}

		decoded, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			logger.FromGin(c).Debug("rejected id token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			return
		}

		auth.SetIdentity(c, identityFromToken(decoded))
		c.Next()
	}
}

func identityFromToken(t *fbauth.Token) auth.Identity {
	id := auth.Identity{UID: t.UID}

	if email, ok := t.Claims["email"].(string); ok {
		id.Email = email
	}
	if name, ok := t.Claims["name"].(string); ok {
		id.FirstName, id.LastName = auth.SplitName(name)
	}
	if picture, ok := t.Claims["picture"].(string); ok {
		id.PictureURL = picture
	}
	if admin, ok := t.Claims["admin"].(bool); ok {
		id.Admin = &admin
	}
	return id
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
