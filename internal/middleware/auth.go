package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/swiftparcel/swiftparcel-backend/internal/services"
)

// TokenVerifier validates an externally-issued bearer token and returns
// its verified claims. Verification failures are terminal for the request.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, idToken string) (email, uid string, err error)
}

func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			c.JSON(401, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// A token already verified this way recently skips the provider
		// round trip.
		digest := tokenDigest(tokenString)
		if email, uid, ok := services.GetVerifiedClaim(c.Request.Context(), digest); ok {
			c.Set("userEmail", email)
			c.Set("userUID", uid)
			c.Next()
			return
		}

		email, uid, err := verifier.VerifyToken(c.Request.Context(), tokenString)
		if err != nil {
			c.JSON(401, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		services.CacheVerifiedClaim(c.Request.Context(), digest, email, uid)

		c.Set("userEmail", email)
		c.Set("userUID", uid)
		c.Next()
	}
}

func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
