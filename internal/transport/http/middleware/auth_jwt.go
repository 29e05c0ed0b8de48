package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-gym-api/internal/core/auth"
	resp "go-gym-api/internal/transport/http/response"
)

// AuthJWT guards a group with the access tokens issued at login and puts
// the caller's user id into the context under "userId".
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		c.Set("userId", claims.UID)
		c.Next()
	}
}
