package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const (
	ContextUserUID   = "userUID"
	ContextRequestID = "requestID"
)

// AuthMiddleware accepts HMAC signed bearer tokens issued elsewhere. The
// subject claim is the opaque user id the booking core works with.
func AuthMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Invalid authorization header")
			c.Abort()
			return
		}

		token, err := jwt.Parse(
			strings.TrimSpace(parts[1]),
			func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return key, nil
			},
			jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		)
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Invalid token")
			c.Abort()
			return
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || strings.TrimSpace(sub) == "" {
			httperr.Unauthorized(c, "invalid_token_payload", "Token has no subject")
			c.Abort()
			return
		}

		c.Set(ContextUserUID, sub)
		c.Next()
	}
}

// UserUID returns the identity set by AuthMiddleware, or "".
func UserUID(c *gin.Context) string {
	return c.GetString(ContextUserUID)
}
