package middleware

import (
	"net/http"
	"strings"

	"slotbook/models"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWTAuthProviderMiddleware validates the provider bearer token and, on routes
// carrying :providerID, requires the token subject to be that provider.
func JWTAuthProviderMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		sub, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			logger.Warn("Rejected provider token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}
		providerID, err := models.ParseProviderID(sub)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token subject"})
			return
		}

		if param := c.Param("providerID"); param != "" && !providerID.Matches(param) {
			logger.Warn("Provider token used for another provider",
				zap.String("providerID", providerID.String()), zap.String("target", param))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Token does not grant access to this provider"})
			return
		}

		c.Set("providerID", providerID)
		c.Next()
	}
}
