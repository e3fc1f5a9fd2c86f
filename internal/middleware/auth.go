package middleware

import (
	"net/http"
	"strings"

	"tasktrack/internal/models"
	"tasktrack/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const currentUserKey = "current_user"

// AuthRequired resolves the bearer token to a stored user before any
// task handler runs. Missing header, malformed token, bad signature,
// expiry, and unknown subject all abort with the same body so the
// failure mode is not observable from outside.
func AuthRequired(db *gorm.DB, tokens services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthenticated(c)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, err := tokens.Subject(tokenString)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		var user models.User
		if err := db.Where("username = ?", subject).First(&user).Error; err != nil {
			abortUnauthenticated(c)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"detail": "Not authenticated",
	})
}

// CurrentUser returns the user resolved by AuthRequired.
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}
