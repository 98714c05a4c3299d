package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/page-scheduler/internal/config"
	"github.com/BruksfildServices01/page-scheduler/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextPageSlug = "pageSlug"
)

// AuthMiddleware verifies an HMAC bearer token issued by the account
// service. The pageSlug claim scopes every tenant route.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			unauthorized(c, "invalid_authorization_header")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			unauthorized(c, "invalid_token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			unauthorized(c, "invalid_token_claims")
			return
		}

		slug, _ := claims["pageSlug"].(string)
		if strings.TrimSpace(slug) == "" {
			unauthorized(c, "invalid_token_payload")
			return
		}
		sub, _ := claims.GetSubject()

		c.Set(ContextPageSlug, slug)
		c.Set(ContextUserID, sub)

		c.Next()
	}
}

func unauthorized(c *gin.Context, code string) {
	httperr.Unauthorized(c, code, "Não autorizado.")
	c.Abort()
}
