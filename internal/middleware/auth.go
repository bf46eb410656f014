package middleware

import (
	"net/http"
	"strings"

	"github.com/younger1612/Rd-storev1/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const SubjectKey = "subject"

// JWTAuth validates the Bearer token. The router only mounts it on mutating
// routes, and only when auth enforcement is switched on.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.Response{Success: false, Message: "authentication required"})
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.Response{Success: false, Message: "invalid or expired token"})
			return
		}

		if sub, subErr := claims.GetSubject(); subErr == nil {
			c.Set(SubjectKey, sub)
		}
		c.Next()
	}
}
