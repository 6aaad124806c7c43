package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"slotify/utils"
)

const (
	authCachePrefix = "idtoken:"
	authCacheTTL    = 5 * time.Minute
)

// FirebaseAuthMiddleware validates the Firebase ID token on pro-surface
// endpoints, with a short Redis cache so hot sessions skip repeated
// verification round trips. The verified UID lands in the gin context.
func FirebaseAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zap.L()
		ctx := c.Request.Context()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		cacheKey := authCachePrefix + utils.HashToken(tokenString)
		authCache := utils.GetAuthCacheClient()

		if uid, err := authCache.Get(ctx, cacheKey).Result(); err == nil && uid != "" {
			// Sliding expiration on the verification cache.
			if err := authCache.Expire(ctx, cacheKey, authCacheTTL).Err(); err != nil {
				logger.Error("Failed to refresh auth cache TTL", zap.Error(err))
			}
			c.Set("uid", uid)
			c.Next()
			return
		} else if err != nil && err != redis.Nil {
			logger.Error("Error checking auth cache", zap.Error(err))
		}

		token, err := utils.AuthClient.VerifyIDToken(ctx, tokenString)
		if err != nil {
			logger.Warn("ID token verification failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		if err := authCache.Set(ctx, cacheKey, token.UID, authCacheTTL).Err(); err != nil {
			logger.Error("Failed to cache verified token", zap.Error(err))
		}

		c.Set("uid", token.UID)
		c.Next()
	}
}
