package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nsvip/anidex-backend/api/controller"
	"github.com/nsvip/anidex-backend/util/tokenutil"
)

// JwtAuthMiddleware 保护管理端路由，要求Bearer访问令牌
func JwtAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			controller.ErrorResponse(c, http.StatusUnauthorized, "NOT_AUTHORIZED", "missing bearer token")
			c.Abort()
			return
		}

		authToken := parts[1]
		authorized, err := tokenutil.IsAuthorized(authToken, secret)
		if !authorized || err != nil {
			controller.ErrorResponse(c, http.StatusUnauthorized, "NOT_AUTHORIZED", "invalid or expired token")
			c.Abort()
			return
		}

		userID, err := tokenutil.ExtractIDFromToken(authToken, secret)
		if err != nil {
			controller.ErrorResponse(c, http.StatusUnauthorized, "NOT_AUTHORIZED", "invalid token payload")
			c.Abort()
			return
		}

		c.Set("x-user-id", userID)
		c.Next()
	}
}
