package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/fretops/fretops-api/pkg/helpers"
	"github.com/fretops/fretops-api/pkg/response"
)

// Auth validates the access token and, when Redis is configured, checks that
// an active session exists. It sets userID and userEmail in the Gin context.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			c.Abort()
			response.Error[any](c, http.StatusUnauthorized, "jeton d'accès manquant", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			c.Abort()
			response.Error[any](c, http.StatusUnauthorized, "jeton d'accès invalide", nil)
			return
		}

		c.Set("userID", claims.UserID)

		if rdb != nil {
			key := "user:session:" + claims.UserID
			data, err := rdb.HGetAll(c.Request.Context(), key).Result()
			if err != nil || len(data) == 0 {
				c.Abort()
				response.Error[any](c, http.StatusUnauthorized, "session introuvable", nil)
				return
			}
			c.Set("userEmail", data["email"])
		}

		c.Next()
	}
}
