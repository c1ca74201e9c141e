package middleware

import (
	"strings"

	"eventboard/internal/entity"
	"eventboard/internal/service"

	"github.com/gin-gonic/gin"
)

const userContextKey = "current_user"

// Identify resolves the bearer token into the current user and attaches it
// to the request context. It never aborts: anonymous requests pass through
// without a user, and each handler enforces its own requirements, so the
// management endpoint can answer with its success:false envelope instead of
// a bare 401.
func Identify(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token := strings.TrimPrefix(authHeader, "Bearer ")
			if user, err := authService.UserFromToken(c.Request.Context(), token); err == nil {
				c.Set(userContextKey, user)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *entity.User {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*entity.User)
	if !ok {
		return nil
	}
	return user
}
